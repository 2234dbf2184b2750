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
	"github.com/decibelcooper/eicjet/jetio"
	"github.com/decibelcooper/eicjet/region"
	"github.com/decibelcooper/eicjet/render"
	"github.com/decibelcooper/eicjet/series"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <truth-jet-files>...

Plots the jet matching efficiency versus truth jet energy in each region.
Inputs are ROOT ntuples of associated truth/reco jets or LCIO files of
truth and reco jet collections; .txt and .list files are file lists. With
-routing source, inputs come from -files instead.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("jeteff: ")
	log.SetFlags(0)

	run := eicjet.NewRunFlags(flag.CommandLine)
	var (
		title      = flag.String("title", "", "plot title")
		prefix     = flag.String("prefix", "jeteff", "output file prefix")
		yoda       = flag.String("yoda", "", "also write histograms to this YODA file")
		truthPlot  = flag.Bool("spectrum", false, "also plot the truth energy spectrum per region")
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

	p, err := render.Regions(render.Labels{
		Title: *title,
		X:     "E_truth (GeV)",
		Y:     "efficiency",
		YMin:  0,
		YMax:  1.05,
	}, rep.Combined(func(res *engine.Results) series.Series { return res.Efficiency }))
	if err != nil {
		log.Fatal(err)
	}
	if err := render.Save(p.Plot, *prefix); err != nil {
		log.Fatal(err)
	}

	if *truthPlot {
		err := rep.Metrics.ForEach(func(id region.ID, m *engine.Metrics) error {
			p := render.Counts(render.Labels{Title: render.StyleOf(id).Name, X: "E_truth (GeV)", LogY: true}, m.TruthEnergy)
			return render.Save(p.Plot, fmt.Sprintf("%s_truth_%s", *prefix, id))
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if *yoda != "" {
		if err := writeYODA(*yoda, rep); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("overall efficiency %.3f (%d events, %d matched pairs)",
		rep.Efficiency(), rep.Summary.Events, rep.Summary.Matched)
}

func writeYODA(path string, rep *engine.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = rep.Metrics.ForEach(func(id region.ID, m *engine.Metrics) error {
		return jetio.WriteYODA(f, strings.ToLower(id.String()), m)
	})
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
