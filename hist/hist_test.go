package hist

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		axis Axis
		ok   bool
	}{
		{"ok", Axis{N: 50, Min: 0, Max: 50}, true},
		{"zero bins", Axis{N: 0, Min: 0, Max: 1}, false},
		{"negative bins", Axis{N: -3, Min: 0, Max: 1}, false},
		{"inverted", Axis{N: 10, Min: 5, Max: 1}, false},
		{"empty", Axis{N: 10, Min: 1, Max: 1}, false},
		{"nan", Axis{N: 10, Min: math.NaN(), Max: 1}, false},
		{"inf", Axis{N: 10, Min: 0, Max: math.Inf(1)}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.axis.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrAxis), "got %v", err)
		})
	}
}

func TestAxisIndexHalfOpen(t *testing.T) {
	a := Axis{N: 4, Min: 0, Max: 2}
	for _, tc := range []struct {
		x  float64
		i  int
		ok bool
	}{
		{0, 0, true},
		{0.49, 0, true},
		{0.5, 1, true},
		{1.99, 3, true},
		{2, 0, false},
		{-0.01, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(-1), 0, false},
	} {
		i, ok := a.Index(tc.x)
		assert.Equal(t, tc.ok, ok, "x=%v", tc.x)
		if tc.ok {
			assert.Equal(t, tc.i, i, "x=%v", tc.x)
		}
	}
	assert.InDelta(t, 0.25, a.Center(0), 1e-12)
	assert.InDelta(t, 1.75, a.Center(3), 1e-12)
	assert.InDelta(t, 1.5, a.Low(3), 1e-12)
}

func TestCountsFillGating(t *testing.T) {
	c := NewCounts(Axis{N: 3, Min: 0, Max: 3})
	assert.True(t, c.Fill(0.5))
	assert.True(t, c.Fill(2.5))
	assert.False(t, c.Fill(math.NaN()))
	assert.False(t, c.Fill(3))
	assert.False(t, c.Fill(-1))
	assert.Equal(t, []int64{1, 0, 1}, []int64{c.Count(0), c.Count(1), c.Count(2)})
	assert.Equal(t, int64(2), c.Entries())
}

func TestCountsMerge(t *testing.T) {
	a := Axis{N: 3, Min: 0, Max: 3}
	c1, c2 := NewCounts(a), NewCounts(a)
	c1.Fill(0.1)
	c2.Fill(0.2)
	c2.Fill(1.2)
	require.NoError(t, c1.Merge(c2))
	assert.Equal(t, int64(2), c1.Count(0))
	assert.Equal(t, int64(1), c1.Count(1))

	err := c1.Merge(NewCounts(Axis{N: 4, Min: 0, Max: 3}))
	assert.True(t, errors.Is(err, ErrAxisMismatch))
}

func TestCountsH1D(t *testing.T) {
	c := NewCounts(Axis{N: 3, Min: 0, Max: 3})
	for _, x := range []float64{0.5, 0.7, 2.1} {
		c.Fill(x)
	}
	h := c.H1D()
	require.Equal(t, 3, h.Len())
	_, y0 := h.XY(0)
	_, y1 := h.XY(1)
	_, y2 := h.XY(2)
	assert.Equal(t, []float64{2, 0, 1}, []float64{y0, y1, y2})
}

func TestCountsBinsLikeH1D(t *testing.T) {
	a := Axis{N: 3, Min: 0, Max: 30}
	c := NewCounts(a)
	for _, x := range []float64{1, 2, 3, 4, 5, 25, 26, 27, 30, -1} {
		c.Fill(x)
	}
	assert.Equal(t, []int64{5, 0, 3}, []int64{c.Count(0), c.Count(1), c.Count(2)})
	assert.Equal(t, int64(8), c.Entries())

	o := NewCounts(a)
	o.Fill(15)
	require.NoError(t, c.Merge(o))
	assert.Equal(t, []int64{5, 1, 3}, []int64{c.Count(0), c.Count(1), c.Count(2)})
	assert.Equal(t, int64(9), c.Entries())

	h := c.H1D()
	assert.Equal(t, int64(9), h.Entries())
	assert.Equal(t, int64(1), h.Binning.Bins[1].Entries())
	assert.Equal(t, int64(0), h.Binning.Underflow().Entries())
	assert.Equal(t, int64(0), h.Binning.Overflow().Entries())

	h.Fill(15, 1)
	assert.Equal(t, int64(1), c.Count(1), "H1D returns a copy")
}

func TestProfileStatistics(t *testing.T) {
	p := NewProfile(Axis{N: 3, Min: 0, Max: 3})
	for _, y := range []float64{1, 2, 3, 4} {
		p.Fill(0.5, y)
	}
	p.Fill(1.5, 7)

	mean, ok := p.Mean(0)
	require.True(t, ok)
	assert.InDelta(t, 2.5, mean, 1e-12)

	sd, ok := p.StdDev(0)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt(5./3.), sd, 1e-12)

	se, ok := p.StdErr(0)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt(5./3.)/2, se, 1e-12)

	mean, ok = p.Mean(1)
	require.True(t, ok)
	assert.InDelta(t, 7, mean, 1e-12)
	_, ok = p.StdErr(1)
	assert.False(t, ok, "a single entry has no spread")

	_, ok = p.Mean(2)
	assert.False(t, ok)
}

func TestProfileConstantHasZeroSpread(t *testing.T) {
	p := NewProfile(Axis{N: 1, Min: 0, Max: 1})
	for i := 0; i < 10; i++ {
		p.Fill(0.5, 0.1)
	}
	se, ok := p.StdErr(0)
	require.True(t, ok)
	assert.False(t, math.IsNaN(se))
	assert.InDelta(t, 0, se, 1e-9)
}

func TestProfileNaNNeverFills(t *testing.T) {
	p := NewProfile(Axis{N: 2, Min: 0, Max: 2})
	assert.False(t, p.Fill(math.NaN(), 1))
	assert.False(t, p.Fill(0.5, math.NaN()))
	assert.False(t, p.Fill(math.NaN(), math.NaN()))
	assert.Equal(t, int64(0), p.Count(0))
	assert.Equal(t, int64(0), p.Count(1))
}

func TestProfileMerge(t *testing.T) {
	a := Axis{N: 2, Min: 0, Max: 2}
	whole, left, right := NewProfile(a), NewProfile(a), NewProfile(a)
	ys := []float64{0.3, -0.1, 0.25, 0.4, 0.05, -0.2}
	for i, y := range ys {
		x := float64(i%2) + 0.5
		whole.Fill(x, y)
		if i < 3 {
			left.Fill(x, y)
		} else {
			right.Fill(x, y)
		}
	}
	require.NoError(t, left.Merge(right))
	for i := 0; i < a.N; i++ {
		assert.Equal(t, whole.Count(i), left.Count(i))
		wm, _ := whole.Mean(i)
		lm, _ := left.Mean(i)
		assert.InDelta(t, wm, lm, 1e-12)
		ws, _ := whole.StdErr(i)
		ls, _ := left.StdErr(i)
		assert.InDelta(t, ws, ls, 1e-12)
	}

	assert.Error(t, whole.Merge(NewProfile(Axis{N: 2, Min: 0, Max: 3})))
}

func TestProfileCounts(t *testing.T) {
	p := NewProfile(Axis{N: 3, Min: 0, Max: 3})
	p.Fill(0.5, 1)
	p.Fill(0.5, 2)
	p.Fill(2.5, 3)
	c := p.Counts()
	assert.Equal(t, int64(2), c.Count(0))
	assert.Equal(t, int64(0), c.Count(1))
	assert.Equal(t, int64(1), c.Count(2))
}

func TestJoint(t *testing.T) {
	j := NewJoint(Axis{N: 2, Min: 0, Max: 2}, Axis{N: 3, Min: 0, Max: 3})
	assert.True(t, j.Fill(0.5, 2.5))
	assert.True(t, j.Fill(1.5, 0.5))
	assert.True(t, j.Fill(1.5, 0.5))
	assert.False(t, j.Fill(math.NaN(), 0.5))
	assert.False(t, j.Fill(0.5, math.NaN()))
	assert.False(t, j.Fill(0.5, 3))

	assert.Equal(t, int64(1), j.Count(0, 2))
	assert.Equal(t, int64(2), j.Count(1, 0))
	assert.Equal(t, int64(3), j.Entries())

	c, r := j.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)
	assert.InDelta(t, 2, j.Z(1, 0), 1e-12)
	assert.InDelta(t, 1.5, j.X(1), 1e-12)
	assert.InDelta(t, 2.5, j.Y(2), 1e-12)

	o := NewJoint(j.XAxis, j.YAxis)
	o.Fill(0.5, 2.5)
	require.NoError(t, j.Merge(o))
	assert.Equal(t, int64(2), j.Count(0, 2))
	assert.Error(t, j.Merge(NewJoint(j.YAxis, j.XAxis)))

	h := j.H2D()
	assert.InDelta(t, 4, h.SumW(), 1e-12)
	assert.Equal(t, int64(4), h.Entries())
	assert.Equal(t, int64(2), h.Bin(0.5, 2.5).Entries())
	assert.Equal(t, int64(0), h.Bin(0.5, 0.5).Entries())
	assert.Equal(t, int64(2), h.Bin(1.5, 0.5).Entries())
	assert.Equal(t, int64(4), j.Entries())
}
