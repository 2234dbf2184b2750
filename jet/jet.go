// Package jet holds the per-event jet records handed to the matching engine.
package jet

import (
	"context"
	"math"
)

// Record is one truth or reconstructed jet. Any field may be NaN when the
// quantity is unavailable for the event.
type Record struct {
	Pt     float64
	Energy float64
	Eta    float64
	Phi    float64
}

// Missing is a record with every field unavailable.
var Missing = Record{
	Pt:     math.NaN(),
	Energy: math.NaN(),
	Eta:    math.NaN(),
	Phi:    math.NaN(),
}

// HasAngles reports whether both eta and phi are available.
func (r Record) HasAngles() bool {
	return !math.IsNaN(r.Eta) && !math.IsNaN(r.Phi)
}

// Pair is a truth jet and a candidate reconstructed jet.
type Pair struct {
	Truth Record
	Reco  Record
}

// Event is what one event contributes. Pairs are already associated by the
// producer; Truth and Reco are flat lists to be matched by nearest
// neighbour. Either or both may be empty.
type Event struct {
	Number int64
	Pairs  []Pair
	Truth  []Record
	Reco   []Record
}

// Source is a finite sequence of events. Scan may be called once per run and
// stops at the first error returned by fn.
type Source interface {
	Scan(ctx context.Context, fn func(Event) error) error
}

// Events is an in-memory Source.
type Events []Event

func (evts Events) Scan(ctx context.Context, fn func(Event) error) error {
	for _, evt := range evts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(evt); err != nil {
			return err
		}
	}
	return nil
}
