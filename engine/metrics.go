package engine

import (
	"fmt"

	"github.com/decibelcooper/eicjet/hist"
	"github.com/decibelcooper/eicjet/series"
)

// Axes is the binning shared by every region.
type Axes struct {
	Energy hist.Axis
	Eta    hist.Axis
	Phi    hist.Axis
}

// Metrics is the set of accumulators kept for one region.
type Metrics struct {
	// Efficiency denominator and numerator, binned in truth energy.
	TruthEnergy   *hist.Counts
	MatchedEnergy *hist.Counts

	// (recoE - truthE)/truthE vs truth energy.
	EnergyScale *hist.Profile
	// recoEta - truthEta vs truth eta.
	EtaScale *hist.Profile
	// wrapped recoPhi - truthPhi vs truth phi.
	PhiScale *hist.Profile

	// truth vs reco, diagnostic only.
	EnergyJoint *hist.Joint
	EtaJoint    *hist.Joint
	PhiJoint    *hist.Joint

	Truth   int64
	Matched int64
}

func NewMetrics(axes Axes) *Metrics {
	return &Metrics{
		TruthEnergy:   hist.NewCounts(axes.Energy),
		MatchedEnergy: hist.NewCounts(axes.Energy),
		EnergyScale:   hist.NewProfile(axes.Energy),
		EtaScale:      hist.NewProfile(axes.Eta),
		PhiScale:      hist.NewProfile(axes.Phi),
		EnergyJoint:   hist.NewJoint(axes.Energy, axes.Energy),
		EtaJoint:      hist.NewJoint(axes.Eta, axes.Eta),
		PhiJoint:      hist.NewJoint(axes.Phi, axes.Phi),
	}
}

// Merge adds the contents of o, which must share the same axes.
func (m *Metrics) Merge(o *Metrics) error {
	for _, err := range []error{
		m.TruthEnergy.Merge(o.TruthEnergy),
		m.MatchedEnergy.Merge(o.MatchedEnergy),
		m.EnergyScale.Merge(o.EnergyScale),
		m.EtaScale.Merge(o.EtaScale),
		m.PhiScale.Merge(o.PhiScale),
		m.EnergyJoint.Merge(o.EnergyJoint),
		m.EtaJoint.Merge(o.EtaJoint),
		m.PhiJoint.Merge(o.PhiJoint),
	} {
		if err != nil {
			return fmt.Errorf("could not merge metrics: %w", err)
		}
	}
	m.Truth += o.Truth
	m.Matched += o.Matched
	return nil
}

// Results are the series derived from one region's Metrics.
type Results struct {
	Efficiency series.Series

	EnergyScale      series.Series
	EnergyResolution series.Series

	EtaScale      series.Series
	EtaResolution series.Series

	PhiScale      series.Series
	PhiResolution series.Series

	Truth   int64
	Matched int64
}

// Reduce derives the output series.
func (m *Metrics) Reduce() (*Results, error) {
	eff, err := series.Efficiency(m.TruthEnergy, m.MatchedEnergy)
	if err != nil {
		return nil, err
	}
	return &Results{
		Efficiency:       eff,
		EnergyScale:      series.Scale(m.EnergyScale),
		EnergyResolution: series.Resolution(m.EnergyScale),
		EtaScale:         series.Scale(m.EtaScale),
		EtaResolution:    series.Resolution(m.EtaScale),
		PhiScale:         series.Scale(m.PhiScale),
		PhiResolution:    series.Resolution(m.PhiScale),
		Truth:            m.Truth,
		Matched:          m.Matched,
	}, nil
}
