package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/eicjet/hist"
	"github.com/decibelcooper/eicjet/region"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, hist.Axis{N: 50, Min: 0, Max: 50}, cfg.EnergyAxis())

	cfgs, err := cfg.RegionConfigs()
	require.NoError(t, err)
	assert.Equal(t, []region.ID{region.Central, region.Forward, region.Backward}, cfgs.Enabled())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
numBins: 20
domainMin: 0
domainMax: 40
matchRadius: 0.1
minTruthPt: 5
regions:
  - enabled: true
    etaMin: -1.5
    etaMax: 1.5
  - enabled: true
    etaMin: 1.5
    etaMax: 3
`))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.NumBins)
	assert.Equal(t, 0.1, cfg.MatchRadius)
	assert.Equal(t, 5., cfg.MinTruthPt)
	assert.Equal(t, region.ModeEta, cfg.Routing)
	assert.Equal(t, Default().Eta, cfg.Eta)

	cfgs, err := cfg.RegionConfigs()
	require.NoError(t, err)
	assert.Equal(t, region.Config{Enabled: true, EtaMin: 1.5, EtaMax: 3}, cfgs[region.Forward])
	assert.False(t, cfgs[region.Backward].Enabled)
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseNamedRegions(t *testing.T) {
	cfg, err := Parse([]byte(`
routing: source
regions:
  - name: backward
    enabled: true
    files: [a.root, b.root]
  - name: Central
    enabled: true
    files: [c.root]
`))
	require.NoError(t, err)

	files, err := cfg.Files()
	require.NoError(t, err)
	assert.Equal(t, map[region.ID][]string{
		region.Backward: {"a.root", "b.root"},
		region.Central:  {"c.root"},
	}, files)
}

func TestInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"zero bins", "numBins: 0"},
		{"negative bins", "numBins: -4"},
		{"inverted domain", "domainMin: 10\ndomainMax: 5"},
		{"zero radius", "matchRadius: 0"},
		{"negative pt floor", "minTruthPt: -1"},
		{"unknown routing", "routing: phi"},
		{"unknown key", "nbins: 3"},
		{"no region enabled", "regions:\n  - enabled: false\n    etaMin: 0\n    etaMax: 1"},
		{"empty window", "regions:\n  - enabled: true\n    etaMin: 1\n    etaMax: 1"},
		{"overlap", "regions:\n  - {enabled: true, etaMin: -1, etaMax: 1}\n  - {enabled: true, etaMin: 0.5, etaMax: 2}"},
		{"duplicate region", "regions:\n  - {name: forward, enabled: true, etaMin: 0, etaMax: 1}\n  - {name: forward, enabled: true, etaMin: 1, etaMax: 2}"},
		{"unknown region", "regions:\n  - {name: barrel, enabled: true, etaMin: 0, etaMax: 1}"},
		{"bad eta axis", "eta: {numBins: 0, min: 0, max: 1}"},
		{"not yaml", "numBins: [1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestSourceRoutingAllowsOpenWindows(t *testing.T) {
	_, err := Parse([]byte("routing: source\nregions:\n  - {enabled: true}\n  - {enabled: true}"))
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("numBins: 10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.NumBins)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetRegion(t *testing.T) {
	cfg := Default()
	cfg.Regions = cfg.Regions[:1]
	require.NoError(t, cfg.SetRegion(region.Forward, RegionConfig{Enabled: true, EtaMin: 1.5, EtaMax: 3}))
	require.NoError(t, cfg.SetRegion(region.Central, RegionConfig{Enabled: false}))

	cfgs, err := cfg.RegionConfigs()
	require.NoError(t, err)
	assert.Equal(t, []region.ID{region.Forward}, cfgs.Enabled())
	require.NoError(t, cfg.Validate())
}
