// Package config loads and checks the run configuration of the jet
// performance engine.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/eicjet/hist"
	"github.com/decibelcooper/eicjet/region"
)

// ErrInvalid wraps every configuration problem. An invalid configuration is
// fatal and is reported before any event is read.
var ErrInvalid = errors.New("invalid configuration")

type AxisConfig struct {
	NumBins int     `yaml:"numBins" validate:"gt=0"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max" validate:"gtfield=Min"`
}

func (a AxisConfig) Axis() hist.Axis {
	return hist.Axis{N: a.NumBins, Min: a.Min, Max: a.Max}
}

type RegionConfig struct {
	// Name is optional; unnamed entries are taken in Central, Forward,
	// Backward order.
	Name    string   `yaml:"name,omitempty"`
	Enabled bool     `yaml:"enabled"`
	EtaMin  float64  `yaml:"etaMin"`
	EtaMax  float64  `yaml:"etaMax"`
	Files   []string `yaml:"files,omitempty"`
}

type Config struct {
	NumBins     int         `yaml:"numBins" validate:"gt=0"`
	DomainMin   float64     `yaml:"domainMin"`
	DomainMax   float64     `yaml:"domainMax" validate:"gtfield=DomainMin"`
	MatchRadius float64     `yaml:"matchRadius" validate:"gt=0"`
	MinTruthPt  float64     `yaml:"minTruthPt" validate:"gte=0"`
	Routing     region.Mode `yaml:"routing" validate:"oneof=eta source"`

	Eta AxisConfig `yaml:"eta"`
	Phi AxisConfig `yaml:"phi"`

	Regions []RegionConfig `yaml:"regions" validate:"min=1,max=3,dive"`
}

const phiMargin = 0.1

// Default mirrors the binning and cuts of the original analysis macros.
func Default() Config {
	return Config{
		NumBins:     50,
		DomainMin:   0,
		DomainMax:   50,
		MatchRadius: 0.5,
		Routing:     region.ModeEta,
		Eta:         AxisConfig{NumBins: 15, Min: -1.7, Max: 4},
		Phi:         AxisConfig{NumBins: 15, Min: -math.Pi - phiMargin, Max: math.Pi + phiMargin},
		Regions: []RegionConfig{
			{Name: "central", Enabled: true, EtaMin: -1.5, EtaMax: 1.5},
			{Name: "forward", Enabled: true, EtaMin: 1.5, EtaMax: 4},
			{Name: "backward", Enabled: true, EtaMin: -4, EtaMax: -1.5},
		},
	}
}

// Load reads a YAML configuration file on top of Default and validates it.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Decode for an in-memory document.
func Parse(data []byte) (Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML document on top of Default. Unknown keys are errors.
// A document that sets regions replaces the default regions entirely.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	cfg.Regions = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if cfg.Regions == nil {
		cfg.Regions = Default().Regions
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and the cross-field rules: at least one
// region enabled, each region named once, and in eta routing, non-empty,
// non-overlapping windows.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.EnergyAxis().Validate(); err != nil {
		return fmt.Errorf("%w: energy axis: %v", ErrInvalid, err)
	}
	if err := c.Eta.Axis().Validate(); err != nil {
		return fmt.Errorf("%w: eta axis: %v", ErrInvalid, err)
	}
	if err := c.Phi.Axis().Validate(); err != nil {
		return fmt.Errorf("%w: phi axis: %v", ErrInvalid, err)
	}

	cfgs, err := c.RegionConfigs()
	if err != nil {
		return err
	}
	enabled := cfgs.Enabled()
	if len(enabled) == 0 {
		return fmt.Errorf("%w: no region enabled", ErrInvalid)
	}
	if c.Routing == region.ModeEta {
		for _, id := range enabled {
			if !cfgs[id].HasWindow() {
				return fmt.Errorf("%w: %v eta window [%g, %g) is empty", ErrInvalid,
					id, cfgs[id].EtaMin, cfgs[id].EtaMax)
			}
		}
		if err := cfgs.CheckWindows(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}

// RegionIDs resolves the region of each entry of Regions.
func (c Config) RegionIDs() ([]region.ID, error) {
	ids := make([]region.ID, len(c.Regions))
	var seen [len(region.All)]bool
	for i, rc := range c.Regions {
		id := region.ID(i)
		if rc.Name != "" {
			var err error
			id, err = region.Parse(rc.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
			}
		}
		if !id.Valid() {
			return nil, fmt.Errorf("%w: too many regions", ErrInvalid)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: region %v configured twice", ErrInvalid, id)
		}
		seen[id] = true
		ids[i] = id
	}
	return ids, nil
}

// RegionConfigs returns the per-region settings. Regions not listed are
// disabled.
func (c Config) RegionConfigs() (region.Configs, error) {
	var cfgs region.Configs
	ids, err := c.RegionIDs()
	if err != nil {
		return cfgs, err
	}
	for i, id := range ids {
		rc := c.Regions[i]
		cfgs[id] = region.Config{Enabled: rc.Enabled, EtaMin: rc.EtaMin, EtaMax: rc.EtaMax}
	}
	return cfgs, nil
}

// Files returns the input file lists of each enabled region, for source
// routing.
func (c Config) Files() (map[region.ID][]string, error) {
	ids, err := c.RegionIDs()
	if err != nil {
		return nil, err
	}
	files := make(map[region.ID][]string)
	for i, id := range ids {
		if c.Regions[i].Enabled && len(c.Regions[i].Files) > 0 {
			files[id] = c.Regions[i].Files
		}
	}
	return files, nil
}

func (c Config) EnergyAxis() hist.Axis {
	return hist.Axis{N: c.NumBins, Min: c.DomainMin, Max: c.DomainMax}
}

// SetRegion enables or disables a region, adding it if absent.
func (c *Config) SetRegion(id region.ID, rc RegionConfig) error {
	ids, err := c.RegionIDs()
	if err != nil {
		return err
	}
	rc.Name = id.String()
	for i, got := range ids {
		if got == id {
			c.Regions[i] = rc
			return nil
		}
	}
	for i := range c.Regions {
		c.Regions[i].Name = ids[i].String()
	}
	c.Regions = append(c.Regions, rc)
	return nil
}
