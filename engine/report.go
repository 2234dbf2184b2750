package engine

import (
	"go.uber.org/zap"

	"github.com/decibelcooper/eicjet/region"
	"github.com/decibelcooper/eicjet/series"
)

// Drops counts records left out of the accumulation, by reason.
type Drops struct {
	// NaN in a coordinate a computation needed, or a zero truth energy
	// under the relative energy residual.
	InvalidInput int64
	// No reco jet within the matching radius.
	NoMatch int64
	// Truth eta outside every enabled window.
	Unroutable int64
	// Truth pt below the configured floor.
	BelowPtFloor int64
	// Outside the region window when routing by source.
	OutsideWindow int64
	// Reco jet whose nearest truth jet failed the truth-side cuts.
	RejectedTruth int64
}

func (d Drops) Total() int64 {
	return d.InvalidInput + d.NoMatch + d.Unroutable + d.BelowPtFloor + d.OutsideWindow + d.RejectedTruth
}

type Summary struct {
	Events    int64
	Pairs     int64
	TruthJets int64
	RecoJets  int64
	Matched   int64
	Drops     Drops
}

func (s *Summary) add(o Summary) {
	s.Events += o.Events
	s.Pairs += o.Pairs
	s.TruthJets += o.TruthJets
	s.RecoJets += o.RecoJets
	s.Matched += o.Matched
	s.Drops.InvalidInput += o.Drops.InvalidInput
	s.Drops.NoMatch += o.Drops.NoMatch
	s.Drops.Unroutable += o.Drops.Unroutable
	s.Drops.BelowPtFloor += o.Drops.BelowPtFloor
	s.Drops.OutsideWindow += o.Drops.OutsideWindow
	s.Drops.RejectedTruth += o.Drops.RejectedTruth
}

// Report is the outcome of a run: the raw accumulators and derived series of
// every enabled region, and the run totals.
type Report struct {
	Summary Summary
	Metrics *region.Set[*Metrics]
	Results *region.Set[*Results]
}

func newReport(sum Summary, metrics *region.Set[*Metrics]) (*Report, error) {
	rep := &Report{Summary: sum, Metrics: metrics}

	var reduced [len(region.All)]*Results
	err := metrics.ForEach(func(id region.ID, m *Metrics) error {
		res, err := m.Reduce()
		if err != nil {
			return err
		}
		reduced[id] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	var cfgs region.Configs
	for _, id := range metrics.IDs() {
		cfgs[id].Enabled = true
	}
	rep.Results = region.NewSet(cfgs, func(id region.ID) *Results { return reduced[id] })
	return rep, nil
}

// Region returns the results of one region. A disabled region is an error
// wrapping region.ErrDisabled.
func (r *Report) Region(id region.ID) (*Results, error) {
	return r.Results.Get(id)
}

// RegionSeries is one region's contribution to a combined plot.
type RegionSeries struct {
	Region region.ID
	Series series.Series
}

// Combined picks one series from every enabled region, in region order.
func (r *Report) Combined(pick func(*Results) series.Series) []RegionSeries {
	var out []RegionSeries
	r.Results.ForEach(func(id region.ID, res *Results) error {
		out = append(out, RegionSeries{Region: id, Series: pick(res)})
		return nil
	})
	return out
}

// Efficiency is the overall matched/truth ratio over all regions, counting
// only jets inside the energy domain.
func (r *Report) Efficiency() float64 {
	var truth, matched int64
	r.Results.ForEach(func(_ region.ID, res *Results) error {
		truth += res.Truth
		matched += res.Matched
		return nil
	})
	if truth == 0 {
		return 0
	}
	return float64(matched) / float64(truth)
}

func (r *Report) log(logger *zap.Logger) {
	s := r.Summary
	logger.Info("run complete",
		zap.Int64("events", s.Events),
		zap.Int64("pairs", s.Pairs),
		zap.Int64("truth_jets", s.TruthJets),
		zap.Int64("reco_jets", s.RecoJets),
		zap.Int64("matched", s.Matched),
		zap.Int64("dropped_invalid", s.Drops.InvalidInput),
		zap.Int64("dropped_no_match", s.Drops.NoMatch),
		zap.Int64("dropped_unroutable", s.Drops.Unroutable),
		zap.Int64("dropped_below_pt", s.Drops.BelowPtFloor),
		zap.Int64("dropped_outside_window", s.Drops.OutsideWindow),
		zap.Int64("dropped_rejected_truth", s.Drops.RejectedTruth),
	)
	r.Results.ForEach(func(id region.ID, res *Results) error {
		logger.Info("region",
			zap.Stringer("region", id),
			zap.Int64("truth", res.Truth),
			zap.Int64("matched", res.Matched),
			zap.Int("efficiency_points", res.Efficiency.Len()),
			zap.Int("energy_scale_points", res.EnergyScale.Len()),
			zap.Int("energy_resolution_points", res.EnergyResolution.Len()),
		)
		return nil
	})
}
