package engine

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/decibelcooper/eicjet/jet"
	"github.com/decibelcooper/eicjet/match"
	"github.com/decibelcooper/eicjet/region"
)

type worker struct {
	e       *Engine
	name    string
	src     jet.Source
	router  region.Router
	gate    bool // apply the region eta window as a fill cut
	metrics *region.Set[*Metrics]
	summary Summary
}

func (e *Engine) newWorker(in Input) (*worker, error) {
	router, err := region.NewRouter(e.cfg.Routing, e.regions, in.Region)
	if err != nil {
		return nil, err
	}
	if in.Source == nil {
		return nil, fmt.Errorf("nil source")
	}
	return &worker{
		e:       e,
		name:    in.Name,
		src:     in.Source,
		router:  router,
		gate:    e.cfg.Routing == region.ModeSource,
		metrics: region.NewSet(e.regions, func(region.ID) *Metrics { return NewMetrics(e.axes) }),
	}, nil
}

func (w *worker) run(ctx context.Context) error {
	err := w.src.Scan(ctx, func(evt jet.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.e.every > 0 && w.summary.Events%w.e.every == 0 {
			w.e.logger.Debug("processing event",
				zap.String("input", w.name),
				zap.Int64("event", evt.Number),
			)
		}
		return w.event(evt)
	})
	if err != nil {
		return fmt.Errorf("input %q: %w", w.name, err)
	}
	return nil
}

func (w *worker) event(evt jet.Event) error {
	w.summary.Events++
	for _, p := range evt.Pairs {
		if err := w.pair(p); err != nil {
			return err
		}
	}
	if len(evt.Truth) > 0 || len(evt.Reco) > 0 {
		return w.nearest(evt.Truth, evt.Reco)
	}
	return nil
}

// pair handles an already associated truth/reco pair.
func (w *worker) pair(p jet.Pair) error {
	w.summary.Pairs++
	w.summary.TruthJets++
	w.summary.RecoJets++

	m, ok := w.truth(p.Truth)
	if !ok {
		return nil
	}
	if !match.Accept(p, w.e.matcher.Radius) {
		w.summary.Drops.NoMatch++
		return nil
	}
	return w.matched(m, p, match.PairDistance(p), true)
}

// nearest matches every reco jet of an event to its closest truth jet.
func (w *worker) nearest(truth, reco []jet.Record) error {
	w.summary.TruthJets += int64(len(truth))
	w.summary.RecoJets += int64(len(reco))

	accepted := make([]*Metrics, len(truth))
	for i, t := range truth {
		if m, ok := w.truth(t); ok {
			accepted[i] = m
		}
	}

	counted := make([]bool, len(truth))
	for _, r := range reco {
		res := w.e.matcher.Nearest(r, truth)
		if !res.Matched() {
			w.summary.Drops.NoMatch++
			continue
		}
		m := accepted[res.Index]
		if m == nil {
			w.summary.Drops.RejectedTruth++
			continue
		}
		if err := w.matched(m, res.Pair(r), res.Distance, !counted[res.Index]); err != nil {
			return err
		}
		if !math.IsNaN(r.Energy) {
			counted[res.Index] = true
		}
	}
	return nil
}

// truth applies the truth-side cuts, routes the jet and fills the
// efficiency denominator. Records are checked for NaN before anything else.
func (w *worker) truth(t jet.Record) (*Metrics, bool) {
	drops := &w.summary.Drops
	if math.IsNaN(t.Energy) || !t.HasAngles() {
		drops.InvalidInput++
		return nil, false
	}
	if floor := w.e.matcher.MinTruthPt; floor > 0 && !(t.Pt >= floor) {
		drops.BelowPtFloor++
		return nil, false
	}

	id, ok := w.router.Assign(t)
	if !ok {
		drops.Unroutable++
		return nil, false
	}
	if w.gate {
		if rc := w.e.regions[id]; rc.HasWindow() && !rc.Contains(t.Eta) {
			drops.OutsideWindow++
			return nil, false
		}
	}

	m, err := w.metrics.Get(id)
	if err != nil {
		drops.Unroutable++
		return nil, false
	}
	if m.TruthEnergy.Fill(t.Energy) {
		m.Truth++
	}
	return m, true
}

// matched fills the matched-pair quantities. The efficiency numerator is
// only filled when countTruth is set so a truth jet counts at most once.
func (w *worker) matched(m *Metrics, p jet.Pair, dist float64, countTruth bool) error {
	truth, reco := p.Truth, p.Reco
	w.summary.Matched++

	m.EtaScale.Fill(truth.Eta, reco.Eta-truth.Eta)
	m.EtaJoint.Fill(truth.Eta, reco.Eta)
	m.PhiScale.Fill(truth.Phi, match.DeltaPhi(reco.Phi, truth.Phi))
	m.PhiJoint.Fill(truth.Phi, reco.Phi)

	if math.IsNaN(reco.Energy) {
		w.summary.Drops.InvalidInput++
	} else {
		if countTruth && m.MatchedEnergy.Fill(truth.Energy) {
			m.Matched++
		}
		if truth.Energy != 0 {
			m.EnergyScale.Fill(truth.Energy, (reco.Energy-truth.Energy)/truth.Energy)
		} else {
			w.summary.Drops.InvalidInput++
		}
		m.EnergyJoint.Fill(truth.Energy, reco.Energy)
	}

	if w.e.sink == nil {
		return nil
	}
	err := w.e.sink.Write(MatchRecord{
		RecoPt:      reco.Pt,
		RecoEnergy:  reco.Energy,
		TruthPt:     truth.Pt,
		TruthEnergy: truth.Energy,
		DR:          math.Sqrt(dist),
	})
	if err != nil {
		return fmt.Errorf("could not write matched pair: %w", err)
	}
	return nil
}
