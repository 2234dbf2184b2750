package eicjet

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks on round multiples of a power of ten,
// aiming for NSuggestedTicks labels, with unlabeled minor ticks between
// them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}
	if !(max > min) || math.IsInf(max-min, 0) {
		return nil
	}

	majorMult, tens := t.majorStep(max - min)
	majorDelta := float64(majorMult) * tens

	prec := 1 - int(math.Floor(math.Log10(majorDelta)))

	var ticks []plot.Tick
	for val := math.Floor(min/majorDelta) * majorDelta; val <= max; val += majorDelta {
		if val < min {
			continue
		}
		v := round(val, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	nMajor := len(ticks)

	minorDelta := majorDelta / 2
	switch majorMult {
	case 3, 6:
		minorDelta = majorDelta / 3
	case 5:
		minorDelta = majorDelta / 5
	}
	for val := math.Floor(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if val < min || hasTick(ticks[:nMajor], val, minorDelta) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

// majorStep returns the major tick spacing as mult*tens.
func (t PreciseTicks) majorStep(span float64) (mult int, tens float64) {
	tens = math.Pow10(int(math.Floor(math.Log10(span))))
	n := span / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = span / tens
	}

	mult = int(n / float64(t.NSuggestedTicks-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, tens
}

func hasTick(ticks []plot.Tick, val, delta float64) bool {
	for _, t := range ticks {
		if math.Abs(t.Value-val) < delta/1e3 {
			return true
		}
	}
	return false
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}
	if x == 0 {
		return 0
	}
	return x / pow
}
