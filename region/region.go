// Package region partitions jets into detector regions by pseudorapidity or
// by the input they came from.
package region

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type ID int

const (
	Central ID = iota
	Forward
	Backward
)

// All lists the regions in reporting order.
var All = [...]ID{Central, Forward, Backward}

func (id ID) String() string {
	switch id {
	case Central:
		return "Central"
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	}
	return fmt.Sprintf("Region(%d)", int(id))
}

func (id ID) Valid() bool {
	return id >= Central && id <= Backward
}

// Parse accepts a region name, case-insensitively.
func Parse(name string) (ID, error) {
	for _, id := range All {
		if strings.EqualFold(name, id.String()) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("region: unknown region %q", name)
}

var (
	ErrDisabled = errors.New("region: disabled")
	ErrOverlap  = errors.New("region: overlapping eta windows")
)

// Config is the physics side of a region: whether it is processed and its
// [EtaMin, EtaMax) acceptance.
type Config struct {
	Enabled bool
	EtaMin  float64
	EtaMax  float64
}

// Contains reports whether eta lies in the half-open window.
func (c Config) Contains(eta float64) bool {
	if math.IsNaN(eta) {
		return false
	}
	return eta >= c.EtaMin && eta < c.EtaMax
}

// HasWindow reports whether the window is non-empty.
func (c Config) HasWindow() bool {
	return c.EtaMin < c.EtaMax
}

// Configs holds one Config per region, indexed by ID.
type Configs [len(All)]Config

func (cs Configs) Enabled() []ID {
	var ids []ID
	for _, id := range All {
		if cs[id].Enabled {
			ids = append(ids, id)
		}
	}
	return ids
}

// CheckWindows returns ErrOverlap if two enabled windows intersect.
func (cs Configs) CheckWindows() error {
	ids := cs.Enabled()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			ca, cb := cs[a], cs[b]
			if ca.EtaMin < cb.EtaMax && cb.EtaMin < ca.EtaMax {
				return fmt.Errorf("%w: %v [%g, %g) and %v [%g, %g)", ErrOverlap,
					a, ca.EtaMin, ca.EtaMax, b, cb.EtaMin, cb.EtaMax)
			}
		}
	}
	return nil
}
