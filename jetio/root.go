package jetio

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/eicjet/jet"
)

// ntupleRow is one row of a truth-jet evaluation ntuple: a truth jet and
// the reco jet associated with it by the evaluator, NaN when there is none.
type ntupleRow struct {
	Event float32

	GE   float32
	GPt  float32
	GEta float32
	GPhi float32

	E   float32
	Pt  float32
	Eta float32
	Phi float32
}

func (row *ntupleRow) pair() jet.Pair {
	return jet.Pair{
		Truth: jet.Record{
			Pt:     float64(row.GPt),
			Energy: float64(row.GE),
			Eta:    float64(row.GEta),
			Phi:    float64(row.GPhi),
		},
		Reco: jet.Record{
			Pt:     float64(row.Pt),
			Energy: float64(row.E),
			Eta:    float64(row.Eta),
			Phi:    float64(row.Phi),
		},
	}
}

// ROOTSource reads associated truth/reco pairs from a flat ntuple.
// Consecutive rows sharing the Event branch value form one event; with no
// Event branch every row is its own event.
type ROOTSource struct {
	Path  string
	Tree  string
	Event string
}

func (src *ROOTSource) Scan(ctx context.Context, fn func(jet.Event) error) error {
	f, err := groot.Open(src.Path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", src.Path, err)
	}
	defer f.Close()

	obj, err := f.Get(src.Tree)
	if err != nil {
		return fmt.Errorf("could not find tree %q in %q: %w", src.Tree, src.Path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return fmt.Errorf("%q in %q is not a tree", src.Tree, src.Path)
	}

	var row ntupleRow
	rvars := []rtree.ReadVar{
		{Name: "ge", Value: &row.GE},
		{Name: "gpt", Value: &row.GPt},
		{Name: "geta", Value: &row.GEta},
		{Name: "gphi", Value: &row.GPhi},
		{Name: "e", Value: &row.E},
		{Name: "pt", Value: &row.Pt},
		{Name: "eta", Value: &row.Eta},
		{Name: "phi", Value: &row.Phi},
	}
	if src.Event != "" {
		rvars = append(rvars, rtree.ReadVar{Name: src.Event, Value: &row.Event})
	}

	r, err := rtree.NewReader(tree, rvars)
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", src.Path, err)
	}
	defer r.Close()

	var (
		evt     jet.Event
		pending bool
	)
	flush := func() error {
		if !pending {
			return nil
		}
		pending = false
		return fn(evt)
	}

	err = r.Read(func(rctx rtree.RCtx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		number := rctx.Entry
		if src.Event != "" {
			number = int64(row.Event)
		}
		if pending && (src.Event == "" || number != evt.Number) {
			if err := flush(); err != nil {
				return err
			}
		}
		if !pending {
			evt = jet.Event{Number: number}
			pending = true
		}
		evt.Pairs = append(evt.Pairs, row.pair())
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read %q: %w", src.Path, err)
	}
	return flush()
}
