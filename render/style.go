// Package render draws the per-region series and diagnostic grids produced
// by a run.
package render

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/decibelcooper/eicjet/region"
)

// Style is how one region appears on a combined plot.
type Style struct {
	Name   string
	Color  color.Color
	Marker draw.GlyphDrawer
}

var styles = [len(region.All)]Style{
	region.Central:  {Name: "|eta| < 1.5", Color: color.RGBA{R: 255, A: 255}, Marker: draw.CircleGlyph{}},
	region.Forward:  {Name: "eta > 1.5", Color: color.RGBA{B: 255, A: 255}, Marker: draw.SquareGlyph{}},
	region.Backward: {Name: "eta < -1.5", Color: color.RGBA{G: 160, A: 255}, Marker: draw.TriangleGlyph{}},
}

func StyleOf(id region.ID) Style {
	if !id.Valid() {
		return Style{Name: id.String(), Color: color.Black, Marker: draw.CrossGlyph{}}
	}
	return styles[id]
}

func (s Style) glyph() draw.GlyphStyle {
	return draw.GlyphStyle{Color: s.Color, Radius: vg.Points(3), Shape: s.Marker}
}
