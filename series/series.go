// Package series reduces accumulated bins to (x, y) points, skipping bins
// without enough entries.
package series

import (
	"fmt"

	"github.com/decibelcooper/eicjet/hist"
)

type Point struct {
	X, Y float64
}

// Series is an ordered list of points. It implements plotter.XYer.
type Series []Point

func (s Series) Len() int {
	return len(s)
}

func (s Series) XY(i int) (x, y float64) {
	return s[i].X, s[i].Y
}

// Xs returns the x coordinates in order.
func (s Series) Xs() []float64 {
	xs := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.X
	}
	return xs
}

// Efficiency returns num/den at the center of every bin where both
// histograms have entries.
func Efficiency(den, num *hist.Counts) (Series, error) {
	if den.Axis != num.Axis {
		return nil, fmt.Errorf("efficiency: %w: %v vs %v", hist.ErrAxisMismatch, den.Axis, num.Axis)
	}

	var s Series
	for i := 0; i < den.Len(); i++ {
		d, n := den.Count(i), num.Count(i)
		if d == 0 || n == 0 {
			continue
		}
		s = append(s, Point{X: den.Axis.Center(i), Y: float64(n) / float64(d)})
	}
	return s, nil
}

// Scale returns the mean of every non-empty profile bin.
func Scale(p *hist.Profile) Series {
	var s Series
	for i := 0; i < p.Len(); i++ {
		if mean, ok := p.Mean(i); ok {
			s = append(s, Point{X: p.Axis.Center(i), Y: mean})
		}
	}
	return s
}

// Resolution returns the standard error of every profile bin with at least
// two entries.
func Resolution(p *hist.Profile) Series {
	var s Series
	for i := 0; i < p.Len(); i++ {
		if se, ok := p.StdErr(i); ok {
			s = append(s, Point{X: p.Axis.Center(i), Y: se})
		}
	}
	return s
}
