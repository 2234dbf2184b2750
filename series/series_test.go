package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/decibelcooper/eicjet/hist"
)

var _ plotter.XYer = Series(nil)

func fillCounts(c *hist.Counts, perBin []int) {
	for i, n := range perBin {
		for k := 0; k < n; k++ {
			c.Fill(c.Axis.Center(i))
		}
	}
}

func TestEfficiencySkipsEmptyBins(t *testing.T) {
	a := hist.Axis{N: 3, Min: 0, Max: 30}
	den, num := hist.NewCounts(a), hist.NewCounts(a)
	fillCounts(den, []int{5, 0, 3})
	fillCounts(num, []int{4, 0, 3})

	s, err := Efficiency(den, num)
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, []float64{5, 25}, s.Xs())
	assert.InDelta(t, 0.8, s[0].Y, 1e-12)
	assert.InDelta(t, 1, s[1].Y, 1e-12)
}

func TestEfficiencyNeedsBothCounts(t *testing.T) {
	a := hist.Axis{N: 4, Min: 0, Max: 4}
	den, num := hist.NewCounts(a), hist.NewCounts(a)
	fillCounts(den, []int{2, 3, 0, 6})
	// bin 2 is malformed: matched without truth
	fillCounts(num, []int{1, 0, 2, 3})

	s, err := Efficiency(den, num)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 3.5}, s.Xs())
}

func TestEfficiencyBounded(t *testing.T) {
	a := hist.Axis{N: 10, Min: 0, Max: 50}
	den, num := hist.NewCounts(a), hist.NewCounts(a)
	dens := []int{10, 7, 0, 1, 4, 9, 12, 3, 2, 8}
	nums := []int{10, 3, 0, 0, 4, 1, 11, 2, 2, 5}
	fillCounts(den, dens)
	fillCounts(num, nums)

	s, err := Efficiency(den, num)
	require.NoError(t, err)
	require.NotEmpty(t, s)
	for _, p := range s {
		assert.GreaterOrEqual(t, p.Y, 0.)
		assert.LessOrEqual(t, p.Y, 1.)
	}
}

func TestEfficiencyAxisMismatch(t *testing.T) {
	_, err := Efficiency(hist.NewCounts(hist.Axis{N: 2, Min: 0, Max: 1}), hist.NewCounts(hist.Axis{N: 3, Min: 0, Max: 1}))
	assert.True(t, errors.Is(err, hist.ErrAxisMismatch))
}

func TestScaleAndResolution(t *testing.T) {
	p := hist.NewProfile(hist.Axis{N: 3, Min: 0, Max: 3})
	for _, y := range []float64{0.1, 0.2, 0.3, 0.2, 0.2} {
		p.Fill(0.5, y)
	}
	for _, y := range []float64{-0.1, 0.1, 0, 0.05, -0.05} {
		p.Fill(1.5, y)
	}

	scale := Scale(p)
	require.Len(t, scale, 2)
	assert.Equal(t, []float64{0.5, 1.5}, scale.Xs())
	assert.InDelta(t, 0.2, scale[0].Y, 1e-12)
	assert.InDelta(t, 0, scale[1].Y, 1e-12)

	res := Resolution(p)
	require.Len(t, res, 2)
	for _, pt := range res {
		assert.Greater(t, pt.Y, 0.)
	}
}

func TestResolutionSkipsSingleEntryBins(t *testing.T) {
	p := hist.NewProfile(hist.Axis{N: 3, Min: 0, Max: 3})
	p.Fill(0.5, 1)
	p.Fill(1.5, 1)
	p.Fill(1.5, 3)
	p.Fill(2.5, 2)

	assert.Len(t, Scale(p), 3)
	res := Resolution(p)
	require.Len(t, res, 1)
	assert.Equal(t, 1.5, res[0].X)
	assert.InDelta(t, 1, res[0].Y, 1e-12)
}

func TestSeriesOmitsEmptyMiddleBin(t *testing.T) {
	p := hist.NewProfile(hist.Axis{N: 3, Min: 0, Max: 3})
	for i, n := range []int{5, 0, 3} {
		for k := 0; k < n; k++ {
			p.Fill(p.Axis.Center(i), float64(k))
		}
	}
	s := Scale(p)
	assert.Equal(t, []float64{0.5, 2.5}, s.Xs())
	assert.NotContains(t, s.Xs(), 1.5)
}

func TestEmptySeries(t *testing.T) {
	p := hist.NewProfile(hist.Axis{N: 5, Min: 0, Max: 1})
	assert.Empty(t, Scale(p))
	assert.Empty(t, Resolution(p))
	assert.Equal(t, 0, Scale(p).Len())
}
