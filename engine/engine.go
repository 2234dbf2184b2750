// Package engine matches truth and reconstructed jets event by event and
// accumulates per-region efficiency, scale and resolution.
//
// Each input is consumed by its own worker into private accumulators, which
// are merged once every input is exhausted. A run with a single input is a
// plain sequential loop.
package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/eicjet/config"
	"github.com/decibelcooper/eicjet/jet"
	"github.com/decibelcooper/eicjet/match"
	"github.com/decibelcooper/eicjet/region"
)

// MatchRecord is the flat tuple written for every matched pair.
type MatchRecord struct {
	RecoPt      float64
	RecoEnergy  float64
	TruthPt     float64
	TruthEnergy float64
	DR          float64
}

// Sink receives matched pairs as they are found.
type Sink interface {
	Write(MatchRecord) error
}

// Input is an event source. Region is the region its records belong to when
// routing by source and is ignored when routing by eta.
type Input struct {
	Name   string
	Region region.ID
	Source jet.Source
}

type Engine struct {
	cfg     config.Config
	regions region.Configs
	axes    Axes
	matcher match.Matcher

	logger *zap.Logger
	sink   Sink
	// progress logging period, in events
	every int64
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSink makes the engine write every matched pair to sink. Writes are
// serialized across workers.
func WithSink(sink Sink) Option {
	return func(e *Engine) {
		e.sink = &lockedSink{sink: sink}
	}
}

// WithProgress logs a debug line every n events per input.
func WithProgress(n int64) Option {
	return func(e *Engine) {
		e.every = n
	}
}

// New checks cfg and prepares an engine. An invalid configuration is
// returned as an error wrapping config.ErrInvalid.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	regions, err := cfg.RegionConfigs()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		regions: regions,
		axes: Axes{
			Energy: cfg.EnergyAxis(),
			Eta:    cfg.Eta.Axis(),
			Phi:    cfg.Phi.Axis(),
		},
		matcher: match.Matcher{Radius: cfg.MatchRadius, MinTruthPt: cfg.MinTruthPt},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Axes() Axes {
	return e.axes
}

func (e *Engine) Regions() region.Configs {
	return e.regions
}

// Run consumes every input and reduces the merged accumulators.
func (e *Engine) Run(ctx context.Context, inputs ...Input) (*Report, error) {
	workers := make([]*worker, len(inputs))
	for i, in := range inputs {
		w, err := e.newWorker(in)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in.Name, err)
		}
		workers[i] = w
	}

	if len(workers) == 1 {
		if err := workers[0].run(ctx); err != nil {
			return nil, err
		}
	} else {
		grp, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			grp.Go(func() error {
				return w.run(ctx)
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, err
		}
	}

	metrics := region.NewSet(e.regions, func(region.ID) *Metrics { return NewMetrics(e.axes) })
	var sum Summary
	for _, w := range workers {
		err := metrics.ForEach(func(id region.ID, m *Metrics) error {
			wm, err := w.metrics.Get(id)
			if err != nil {
				return err
			}
			return m.Merge(wm)
		})
		if err != nil {
			return nil, err
		}
		sum.add(w.summary)
	}

	rep, err := newReport(sum, metrics)
	if err != nil {
		return nil, err
	}
	rep.log(e.logger)
	return rep, nil
}

type lockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func (s *lockedSink) Write(rec MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Write(rec)
}
