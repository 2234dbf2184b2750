package region

import (
	"fmt"

	"github.com/decibelcooper/eicjet/jet"
)

// Router picks the region a truth jet belongs to.
type Router interface {
	Assign(truth jet.Record) (ID, bool)
}

type Mode string

const (
	// ModeEta routes each record by its truth eta.
	ModeEta Mode = "eta"
	// ModeSource routes every record of an input to that input's region.
	ModeSource Mode = "source"
)

func (m Mode) Valid() bool {
	return m == ModeEta || m == ModeSource
}

// EtaRouter assigns a record to the enabled region whose window contains its
// truth eta. Windows must not overlap.
type EtaRouter struct {
	cfgs Configs
}

func NewEtaRouter(cfgs Configs) (*EtaRouter, error) {
	if err := cfgs.CheckWindows(); err != nil {
		return nil, err
	}
	return &EtaRouter{cfgs: cfgs}, nil
}

func (r *EtaRouter) Assign(truth jet.Record) (ID, bool) {
	for _, id := range All {
		c := r.cfgs[id]
		if c.Enabled && c.Contains(truth.Eta) {
			return id, true
		}
	}
	return 0, false
}

// SourceRouter sends everything to one region.
type SourceRouter struct {
	ID ID
}

func (r SourceRouter) Assign(jet.Record) (ID, bool) {
	return r.ID, true
}

// NewRouter returns the router for records read from an input belonging to
// src. src is ignored in ModeEta.
func NewRouter(mode Mode, cfgs Configs, src ID) (Router, error) {
	switch mode {
	case ModeEta:
		return NewEtaRouter(cfgs)
	case ModeSource:
		if !src.Valid() {
			return nil, fmt.Errorf("region: invalid source region %d", int(src))
		}
		if !cfgs[src].Enabled {
			return nil, fmt.Errorf("%w: %v", ErrDisabled, src)
		}
		return SourceRouter{ID: src}, nil
	}
	return nil, fmt.Errorf("region: unknown routing mode %q", mode)
}
