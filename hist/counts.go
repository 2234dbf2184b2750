package hist

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Counts is a 1D histogram of entry counts backed by an hbook.H1D with
// the same binning as Axis. Values are gated on Axis before they reach
// the histogram so its outflows stay empty.
type Counts struct {
	Axis Axis
	h    *hbook.H1D
}

func NewCounts(a Axis) *Counts {
	return &Counts{Axis: a, h: hbook.NewH1D(a.N, a.Min, a.Max)}
}

// Fill adds one entry in the bin containing x. It reports whether x landed
// in range.
func (c *Counts) Fill(x float64) bool {
	i, ok := c.Axis.Index(x)
	if !ok {
		return false
	}
	c.add(i, 1)
	return true
}

// add puts n unit-weight entries in bin i. Filling at the bin center keeps
// hbook's bin lookup in step with Axis.Index at the edges.
func (c *Counts) add(i int, n int64) {
	x := c.Axis.Center(i)
	for ; n > 0; n-- {
		c.h.Fill(x, 1)
	}
}

func (c *Counts) Len() int {
	return c.Axis.N
}

func (c *Counts) Count(i int) int64 {
	return c.h.Binning.Bins[i].Entries()
}

// Entries is the total count over all bins.
func (c *Counts) Entries() int64 {
	return c.h.Entries()
}

func (c *Counts) Merge(o *Counts) error {
	if c.Axis != o.Axis {
		return fmt.Errorf("%w: %v vs %v", ErrAxisMismatch, c.Axis, o.Axis)
	}
	c.h = hbook.AddH1D(c.h, o.h)
	return nil
}

// H1D returns a copy of the underlying histogram, for plotting and export.
func (c *Counts) H1D() *hbook.H1D {
	return c.h.Clone()
}
