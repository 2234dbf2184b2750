package hist

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Joint is a 2D histogram of entry counts, kept for diagnostic plots. It
// satisfies gonum's plotter.GridXYZ so it can be drawn as a heat map.
type Joint struct {
	XAxis, YAxis Axis
	h            *hbook.H2D
}

func NewJoint(x, y Axis) *Joint {
	return &Joint{XAxis: x, YAxis: y, h: newH2D(x, y)}
}

func newH2D(x, y Axis) *hbook.H2D {
	return hbook.NewH2D(x.N, x.Min, x.Max, y.N, y.Min, y.Max)
}

func (j *Joint) Fill(x, y float64) bool {
	ix, ok := j.XAxis.Index(x)
	if !ok {
		return false
	}
	iy, ok := j.YAxis.Index(y)
	if !ok {
		return false
	}
	j.h.Fill(j.XAxis.Center(ix), j.YAxis.Center(iy), 1)
	return true
}

func (j *Joint) Count(ix, iy int) int64 {
	return j.h.Binning.Bins[iy*j.h.Binning.Nx+ix].Entries()
}

func (j *Joint) Entries() int64 {
	return j.h.Entries()
}

func (j *Joint) Merge(o *Joint) error {
	if j.XAxis != o.XAxis || j.YAxis != o.YAxis {
		return fmt.Errorf("%w: %v x %v vs %v x %v", ErrAxisMismatch, j.XAxis, j.YAxis, o.XAxis, o.YAxis)
	}
	addH2D(j.h, o.h)
	return nil
}

// addH2D refills dst with the unit-weight entries of src, bin by bin.
// hbook has no 2D sum.
func addH2D(dst, src *hbook.H2D) {
	for i := range src.Binning.Bins {
		b := &src.Binning.Bins[i]
		x, y := b.XYMid()
		for n := b.Entries(); n > 0; n-- {
			dst.Fill(x, y, 1)
		}
	}
}

func (j *Joint) Dims() (c, r int) {
	return j.XAxis.N, j.YAxis.N
}

func (j *Joint) Z(c, r int) float64 {
	return float64(j.Count(c, r))
}

func (j *Joint) X(c int) float64 {
	return j.XAxis.Center(c)
}

func (j *Joint) Y(r int) float64 {
	return j.YAxis.Center(r)
}

// H2D returns a copy of the underlying histogram.
func (j *Joint) H2D() *hbook.H2D {
	h := newH2D(j.XAxis, j.YAxis)
	addH2D(h, j.h)
	return h
}
