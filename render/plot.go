package render

import (
	"fmt"
	"math"
	"os"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/eicjet"
	"github.com/decibelcooper/eicjet/engine"
	"github.com/decibelcooper/eicjet/hist"
)

// Labels of a plot. YMin and YMax fix the vertical range when they differ.
type Labels struct {
	Title  string
	X, Y   string
	YMin   float64
	YMax   float64
	NTicks int
	LogY   bool
}

func newPlot(l Labels) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y

	n := l.NTicks
	if n == 0 {
		n = 5
	}
	p.X.Tick.Marker = eicjet.PreciseTicks{NSuggestedTicks: n}
	p.Y.Tick.Marker = eicjet.PreciseTicks{NSuggestedTicks: n}
	if l.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if l.YMax > l.YMin {
		p.Y.Min = l.YMin
		p.Y.Max = l.YMax
	}
	return p
}

// Regions overlays one series per region, styled by region and listed in
// the legend in the order given.
func Regions(l Labels, curves []engine.RegionSeries) (*hplot.Plot, error) {
	p := newPlot(l)
	for _, c := range curves {
		st := StyleOf(c.Region)
		s, err := plotter.NewScatter(c.Series)
		if err != nil {
			return nil, fmt.Errorf("could not plot %v: %w", c.Region, err)
		}
		s.GlyphStyle = st.glyph()
		p.Add(s)
		p.Legend.Add(st.Name, s)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// Counts draws a histogram of accumulated counts. An empty histogram is
// drawn on a linear scale since a log axis needs a positive range.
func Counts(l Labels, c *hist.Counts) *hplot.Plot {
	if c.Entries() == 0 {
		l.LogY = false
	}
	p := newPlot(l)
	h := hplot.NewH1D(c.H1D())
	h.Infos.Style = hplot.HInfoSummary
	h.LogY = l.LogY
	p.Add(h)
	return p
}

// Joint draws a 2D count grid as a heat map with a colour bar beside it
// and writes the image as png.
func Joint(l Labels, j *hist.Joint, path string) error {
	max := 0.
	c, r := j.Dims()
	for ix := 0; ix < c; ix++ {
		for iy := 0; iy < r; iy++ {
			max = math.Max(max, j.Z(ix, iy))
		}
	}
	if max == 0 {
		max = 1
	}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(max)
	heatMap := plotter.NewHeatMap(j, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = max

	p := newPlot(l)
	p.Add(heatMap)
	p.X.Min, p.X.Max = j.XAxis.Min, j.XAxis.Max
	p.Y.Min, p.Y.Max = j.YAxis.Min, j.YAxis.Max
	p.Draw(dc0)

	bar := plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	bar.Add(colorBar)
	bar.HideX()
	bar.Y.Padding = 0
	bar.Draw(dc1)

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return w.Close()
}

// Save writes p as both pdf and png next to each other.
func Save(p *plot.Plot, prefix string) error {
	for _, ext := range []string{".pdf", ".png"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+ext); err != nil {
			return fmt.Errorf("could not save plot: %w", err)
		}
	}
	return nil
}
