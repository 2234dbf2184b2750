package eicjet

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/decibelcooper/eicjet/config"
	"github.com/decibelcooper/eicjet/engine"
	"github.com/decibelcooper/eicjet/jetio"
	"github.com/decibelcooper/eicjet/region"
)

// RunFlags are the command-line settings shared by the jet commands. Flags
// given explicitly override the configuration file.
type RunFlags struct {
	fs *flag.FlagSet

	Config   *string
	NumBins  *int
	Min      *float64
	Max      *float64
	Radius   *float64
	MinPt    *float64
	Routing  *string
	Disable  *string
	Verbose  *bool
	Progress *int64
	Files    RegionFlags

	Tree  *string
	Event *string
	Truth *string
	Reco  *string
}

func NewRunFlags(fs *flag.FlagSet) *RunFlags {
	def := config.Default()
	opts := jetio.DefaultOptions()
	f := &RunFlags{
		fs:       fs,
		Config:   fs.String("config", "", "YAML configuration file"),
		NumBins:  fs.Int("nbins", def.NumBins, "number of truth energy bins"),
		Min:      fs.Float64("min", def.DomainMin, "lower edge of the truth energy domain"),
		Max:      fs.Float64("max", def.DomainMax, "upper edge of the truth energy domain"),
		Radius:   fs.Float64("radius", def.MatchRadius, "matching radius in eta-phi"),
		MinPt:    fs.Float64("minpt", def.MinTruthPt, "minimum truth jet transverse momentum"),
		Routing:  fs.String("routing", string(def.Routing), "region routing: eta or source"),
		Disable:  fs.String("disable", "", "comma-separated regions to skip"),
		Verbose:  fs.Bool("v", false, "log progress"),
		Progress: fs.Int64("progress", 1000, "events between progress messages with -v"),
		Tree:     fs.String("tree", opts.Tree, "ntuple name in ROOT inputs"),
		Event:    fs.String("event", opts.Event, "event number branch in ROOT inputs"),
		Truth:    fs.String("truth", opts.TruthCollection, "truth jet collection in LCIO inputs"),
		Reco:     fs.String("reco", opts.RecoCollection, "reco jet collection in LCIO inputs"),
	}
	fs.Var(&f.Files, "files", "region=file input for source routing, repeatable")
	return f
}

func (f *RunFlags) set() map[string]bool {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// Load reads the configuration file, if any, and applies explicit flags.
func (f *RunFlags) Load() (config.Config, error) {
	cfg := config.Default()
	if *f.Config != "" {
		var err error
		if cfg, err = config.Load(*f.Config); err != nil {
			return cfg, err
		}
	}

	set := f.set()
	if set["nbins"] {
		cfg.NumBins = *f.NumBins
	}
	if set["min"] {
		cfg.DomainMin = *f.Min
	}
	if set["max"] {
		cfg.DomainMax = *f.Max
	}
	if set["radius"] {
		cfg.MatchRadius = *f.Radius
	}
	if set["minpt"] {
		cfg.MinTruthPt = *f.MinPt
	}
	if set["routing"] {
		cfg.Routing = region.Mode(*f.Routing)
	}

	ids, err := cfg.RegionIDs()
	if err != nil {
		return cfg, err
	}
	rcs := make(map[region.ID]config.RegionConfig, len(ids))
	for i, id := range ids {
		rcs[id] = cfg.Regions[i]
	}
	update := func(id region.ID, fn func(*config.RegionConfig)) error {
		rc, ok := rcs[id]
		if !ok {
			rc = config.RegionConfig{Enabled: true}
		}
		fn(&rc)
		rcs[id] = rc
		return cfg.SetRegion(id, rc)
	}

	if *f.Disable != "" {
		for _, name := range strings.Split(*f.Disable, ",") {
			id, err := region.Parse(strings.TrimSpace(name))
			if err != nil {
				return cfg, err
			}
			if err := update(id, func(rc *config.RegionConfig) { rc.Enabled = false }); err != nil {
				return cfg, err
			}
		}
	}
	if f.Files.IsSet() {
		for _, id := range region.All {
			files, ok := f.Files.Values[id]
			if !ok {
				continue
			}
			if err := update(id, func(rc *config.RegionConfig) { rc.Files = files }); err != nil {
				return cfg, err
			}
		}
	}

	return cfg, cfg.Validate()
}

func (f *RunFlags) Options() jetio.Options {
	return jetio.Options{
		Tree:            *f.Tree,
		Event:           *f.Event,
		TruthCollection: *f.Truth,
		RecoCollection:  *f.Reco,
	}
}

// Logger builds the run logger, at debug level with -v.
func (f *RunFlags) Logger() (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !*f.Verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zcfg.Build()
}

// EngineOptions returns the logger and progress options for engine.New.
func (f *RunFlags) EngineOptions(logger *zap.Logger) []engine.Option {
	opts := []engine.Option{engine.WithLogger(logger)}
	if *f.Verbose {
		opts = append(opts, engine.WithProgress(*f.Progress))
	}
	return opts
}

// Expand replaces file lists (.txt, .list) by the paths they contain.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".list":
			files, err := jetio.ReadFileList(path)
			if err != nil {
				return nil, err
			}
			out = append(out, files...)
		default:
			out = append(out, path)
		}
	}
	return out, nil
}

// Inputs builds the inputs of a run. With source routing every enabled
// region reads its own files and args must be empty; with eta routing
// every file in args is an input of its own.
func Inputs(cfg config.Config, args []string, opts jetio.Options) ([]engine.Input, error) {
	if cfg.Routing == region.ModeSource {
		if len(args) > 0 {
			return nil, fmt.Errorf("source routing takes inputs from region files, not arguments")
		}
		files, err := cfg.Files()
		if err != nil {
			return nil, err
		}
		var inputs []engine.Input
		for _, id := range region.All {
			paths, err := Expand(files[id])
			if err != nil {
				return nil, err
			}
			if len(paths) == 0 {
				continue
			}
			src, err := jetio.OpenAll(paths, opts)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, engine.Input{Name: id.String(), Region: id, Source: src})
		}
		if len(inputs) == 0 {
			return nil, fmt.Errorf("no region has input files")
		}
		return inputs, nil
	}

	paths, err := Expand(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	inputs := make([]engine.Input, len(paths))
	for i, path := range paths {
		src, err := jetio.Open(path, opts)
		if err != nil {
			return nil, err
		}
		inputs[i] = engine.Input{Name: path, Source: src}
	}
	return inputs, nil
}
