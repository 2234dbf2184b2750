// Package hist accumulates fixed-range binned counts and profiles.
//
// Bins are half-open, [Min, Max) split into N equal-width buckets. Values
// outside the range are dropped rather than clamped and NaN never fills.
// Accumulators only grow until they are reduced; Merge sums two accumulators
// with identical axes so independent workers can be combined at the end.
package hist

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrAxis         = errors.New("hist: invalid axis")
	ErrAxisMismatch = errors.New("hist: axis mismatch")
)

type Axis struct {
	N   int
	Min float64
	Max float64
}

func (a Axis) Validate() error {
	switch {
	case a.N <= 0:
		return fmt.Errorf("%w: %d bins", ErrAxis, a.N)
	case math.IsNaN(a.Min) || math.IsNaN(a.Max) || math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0):
		return fmt.Errorf("%w: non-finite range [%v, %v)", ErrAxis, a.Min, a.Max)
	case a.Min >= a.Max:
		return fmt.Errorf("%w: inverted range [%v, %v)", ErrAxis, a.Min, a.Max)
	}
	return nil
}

func (a Axis) Width() float64 {
	return (a.Max - a.Min) / float64(a.N)
}

// Index returns the bin containing x.
func (a Axis) Index(x float64) (int, bool) {
	if math.IsNaN(x) || x < a.Min || x >= a.Max {
		return 0, false
	}
	i := int((x - a.Min) / a.Width())
	if i >= a.N {
		// rounding just below Max
		i = a.N - 1
	}
	return i, true
}

func (a Axis) Low(i int) float64 {
	return a.Min + float64(i)*a.Width()
}

func (a Axis) Center(i int) float64 {
	return a.Min + (float64(i)+0.5)*a.Width()
}

func (a Axis) String() string {
	return fmt.Sprintf("%d bins on [%g, %g)", a.N, a.Min, a.Max)
}
