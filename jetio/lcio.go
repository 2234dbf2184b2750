package jetio

import (
	"context"
	"fmt"
	"io"
	"math"

	"go-hep.org/x/hep/lcio"

	"github.com/decibelcooper/eicjet/jet"
)

// LCIOSource reads unassociated truth and reco jet collections from an
// LCIO file. Each event yields flat lists to be matched by nearest
// neighbour.
type LCIOSource struct {
	Path  string
	Truth string
	Reco  string
}

func (src *LCIOSource) Scan(ctx context.Context, fn func(jet.Event) error) error {
	r, err := lcio.Open(src.Path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", src.Path, err)
	}
	defer r.Close()

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lcEvt := r.Event()

		truth, err := collection(&lcEvt, src.Truth)
		if err != nil {
			return fmt.Errorf("event %d in %q: %w", lcEvt.EventNumber, src.Path, err)
		}
		reco, err := collection(&lcEvt, src.Reco)
		if err != nil {
			return fmt.Errorf("event %d in %q: %w", lcEvt.EventNumber, src.Path, err)
		}

		err = fn(jet.Event{
			Number: int64(lcEvt.EventNumber),
			Truth:  truth,
			Reco:   reco,
		})
		if err != nil {
			return err
		}
	}

	err = r.Err()
	if err != nil && err != io.EOF {
		return fmt.Errorf("could not read %q: %w", src.Path, err)
	}
	return nil
}

// collection converts the named jet collection. A missing collection is an
// empty one.
func collection(evt *lcio.Event, name string) ([]jet.Record, error) {
	if !evt.Has(name) {
		return nil, nil
	}
	coll, ok := evt.Get(name).(*lcio.RecParticleContainer)
	if !ok {
		return nil, fmt.Errorf("collection %q is not a reconstructed particle collection", name)
	}
	recs := make([]jet.Record, len(coll.Parts))
	for i := range coll.Parts {
		recs[i] = FromMomentum(coll.Parts[i].P, coll.Parts[i].Energy)
	}
	return recs, nil
}

// FromMomentum builds a jet record from a three-momentum and energy.
// A null momentum has no direction, leaving eta and phi NaN.
func FromMomentum(p [3]float32, energy float32) jet.Record {
	px, py, pz := float64(p[0]), float64(p[1]), float64(p[2])
	rec := jet.Record{
		Pt:     math.Hypot(px, py),
		Energy: float64(energy),
		Eta:    math.NaN(),
		Phi:    math.NaN(),
	}
	pMag := math.Sqrt(px*px + py*py + pz*pz)
	if pMag == 0 {
		return rec
	}
	rec.Eta = math.Atanh(pz / pMag)
	rec.Phi = math.Atan2(py, px)
	return rec
}
