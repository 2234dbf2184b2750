package match

import (
	"math"

	"github.com/decibelcooper/eicjet/jet"
)

// Unmatched is the Result index when no truth jet qualified.
const Unmatched = -1

// Accept reports whether an already associated pair lies within radius r.
func Accept(p jet.Pair, r float64) bool {
	d := PairDistance(p)
	if d == Invalid {
		return false
	}
	return d <= r*r
}

// Result is the outcome of a nearest-neighbour search.
type Result struct {
	Index    int
	Truth    jet.Record
	Distance float64
}

func (r Result) Matched() bool {
	return r.Index != Unmatched
}

// R returns the eta-phi distance (not squared), or NaN when unmatched.
func (r Result) R() float64 {
	if !r.Matched() {
		return math.NaN()
	}
	return math.Sqrt(r.Distance)
}

// Pair returns the matched pair for reco.
func (r Result) Pair(reco jet.Record) jet.Pair {
	return jet.Pair{Truth: r.Truth, Reco: reco}
}

// Matcher finds the nearest truth jet for reconstructed jets.
//
// Truth jets with pt below MinTruthPt never take part in the search. A zero
// MinTruthPt disables the floor.
type Matcher struct {
	Radius     float64
	MinTruthPt float64
}

func (m Matcher) eligible(truth jet.Record) bool {
	if m.MinTruthPt <= 0 {
		return true
	}
	// a NaN pt cannot pass a floor
	return truth.Pt >= m.MinTruthPt
}

// Nearest returns the closest eligible truth jet within Radius of reco. On
// equal distances the earliest candidate is kept.
func (m Matcher) Nearest(reco jet.Record, truth []jet.Record) Result {
	best := Result{Index: Unmatched, Truth: jet.Missing, Distance: Invalid}
	r2 := m.Radius * m.Radius
	for i, cand := range truth {
		if !m.eligible(cand) {
			continue
		}

		d := Distance(cand.Eta, cand.Phi, reco.Eta, reco.Phi)
		if d < r2 && d < best.Distance {
			best = Result{Index: i, Truth: cand, Distance: d}
		}
	}
	return best
}

// Associate runs Nearest for every reco jet, in order. A truth jet may be
// the best match of several reco jets.
func (m Matcher) Associate(reco, truth []jet.Record) []Result {
	results := make([]Result, len(reco))
	for i, r := range reco {
		results[i] = m.Nearest(r, truth)
	}
	return results
}
