package hist

import (
	"fmt"
	"math"
)

type profileBin struct {
	n     int64
	sum   float64
	sumSq float64
}

// Profile keeps, per x bin, the number of entries and the running sum and
// sum of squares of y. hbook.P1D bins do not expose the y moments, so the
// sums are kept here.
type Profile struct {
	Axis Axis
	bins []profileBin
}

func NewProfile(a Axis) *Profile {
	return &Profile{Axis: a, bins: make([]profileBin, a.N)}
}

// Fill adds y to the bin containing x. Either value being NaN is a no-op.
func (p *Profile) Fill(x, y float64) bool {
	if math.IsNaN(y) {
		return false
	}
	i, ok := p.Axis.Index(x)
	if !ok {
		return false
	}
	b := &p.bins[i]
	b.n++
	b.sum += y
	b.sumSq += y * y
	return true
}

func (p *Profile) Len() int {
	return p.Axis.N
}

func (p *Profile) Count(i int) int64 {
	return p.bins[i].n
}

// Mean returns the average y in bin i; it needs at least one entry.
func (p *Profile) Mean(i int) (float64, bool) {
	b := p.bins[i]
	if b.n < 1 {
		return 0, false
	}
	return b.sum / float64(b.n), true
}

// StdDev returns the unbiased sample standard deviation of y in bin i; it
// needs at least two entries.
func (p *Profile) StdDev(i int) (float64, bool) {
	b := p.bins[i]
	if b.n < 2 {
		return 0, false
	}
	n := float64(b.n)
	mean := b.sum / n
	variance := (b.sumSq/n - mean*mean) * n / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), true
}

// StdErr returns the standard error on the mean of bin i, StdDev/sqrt(n).
func (p *Profile) StdErr(i int) (float64, bool) {
	sd, ok := p.StdDev(i)
	if !ok {
		return 0, false
	}
	return sd / math.Sqrt(float64(p.bins[i].n)), true
}

func (p *Profile) Merge(o *Profile) error {
	if p.Axis != o.Axis {
		return fmt.Errorf("%w: %v vs %v", ErrAxisMismatch, p.Axis, o.Axis)
	}
	for i, b := range o.bins {
		p.bins[i].n += b.n
		p.bins[i].sum += b.sum
		p.bins[i].sumSq += b.sumSq
	}
	return nil
}

// Counts returns the x projection of the profile.
func (p *Profile) Counts() *Counts {
	c := NewCounts(p.Axis)
	for i, b := range p.bins {
		c.add(i, b.n)
	}
	return c
}
