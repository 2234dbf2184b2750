package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"

	"github.com/decibelcooper/eicjet"
	"github.com/decibelcooper/eicjet/engine"
	"github.com/decibelcooper/eicjet/hist"
	"github.com/decibelcooper/eicjet/region"
	"github.com/decibelcooper/eicjet/render"
	"github.com/decibelcooper/eicjet/series"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <truth-jet-files>...

Plots the energy, eta and phi scale and resolution of matched jets in each
region, and optionally the truth versus reco grids.

options:
`,
	)
	flag.PrintDefaults()
}

type figure struct {
	name   string
	labels render.Labels
	pick   func(*engine.Results) series.Series
}

var figures = []figure{
	{"escale", render.Labels{X: "E_truth (GeV)", Y: "<(E_reco - E_truth)/E_truth>"},
		func(r *engine.Results) series.Series { return r.EnergyScale }},
	{"eres", render.Labels{X: "E_truth (GeV)", Y: "sigma(E_reco - E_truth)/E_truth"},
		func(r *engine.Results) series.Series { return r.EnergyResolution }},
	{"etascale", render.Labels{X: "eta_truth", Y: "<eta_reco - eta_truth>"},
		func(r *engine.Results) series.Series { return r.EtaScale }},
	{"etares", render.Labels{X: "eta_truth", Y: "sigma(eta_reco - eta_truth)"},
		func(r *engine.Results) series.Series { return r.EtaResolution }},
	{"phiscale", render.Labels{X: "phi_truth", Y: "<phi_reco - phi_truth>"},
		func(r *engine.Results) series.Series { return r.PhiScale }},
	{"phires", render.Labels{X: "phi_truth", Y: "sigma(phi_reco - phi_truth)"},
		func(r *engine.Results) series.Series { return r.PhiResolution }},
}

func main() {
	log.SetPrefix("jetres: ")
	log.SetFlags(0)

	run := eicjet.NewRunFlags(flag.CommandLine)
	var (
		title      = flag.String("title", "", "plot title prefix")
		prefix     = flag.String("prefix", "jetres", "output file prefix")
		joints     = flag.Bool("joints", false, "also draw truth versus reco grids per region")
		cpuProfile = flag.Bool("cpuprofile", false, "write a CPU profile")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := run.Load()
	if err != nil {
		log.Fatal(err)
	}
	inputs, err := eicjet.Inputs(cfg, flag.Args(), run.Options())
	if err != nil {
		printUsage()
		log.Fatal(err)
	}

	logger, err := run.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	e, err := engine.New(cfg, run.EngineOptions(logger)...)
	if err != nil {
		log.Fatal(err)
	}
	rep, err := e.Run(context.Background(), inputs...)
	if err != nil {
		log.Fatal(err)
	}

	for _, fig := range figures {
		labels := fig.labels
		labels.Title = strings.TrimSpace(*title + " " + fig.name)
		p, err := render.Regions(labels, rep.Combined(fig.pick))
		if err != nil {
			log.Fatal(err)
		}
		if err := render.Save(p.Plot, *prefix+"_"+fig.name); err != nil {
			log.Fatal(err)
		}
	}

	if *joints {
		err := rep.Metrics.ForEach(func(id region.ID, m *engine.Metrics) error {
			name := strings.ToLower(id.String())
			for _, g := range []struct {
				quantity, x, y string
				j              *hist.Joint
			}{
				{"energy", "E_truth (GeV)", "E_reco (GeV)", m.EnergyJoint},
				{"eta", "eta_truth", "eta_reco", m.EtaJoint},
				{"phi", "phi_truth", "phi_reco", m.PhiJoint},
			} {
				path := fmt.Sprintf("%s_%s_%s.png", *prefix, name, g.quantity)
				labels := render.Labels{Title: render.StyleOf(id).Name, X: g.x, Y: g.y}
				if err := render.Joint(labels, g.j, path); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}
