package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	"github.com/decibelcooper/eicjet"
	"github.com/decibelcooper/eicjet/engine"
	"github.com/decibelcooper/eicjet/jetio"
	"github.com/decibelcooper/eicjet/region"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <jet-files>...

Matches every reco jet to its nearest truth jet within the matching radius
and writes one row per matched pair (recoPt, recoEnergy, truthPt,
truthEnergy, dR) to a ROOT tree. LCIO inputs are matched by nearest
neighbour; ROOT ntuples carry pairs already associated.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("jetmatch: ")
	log.SetFlags(0)

	run := eicjet.NewRunFlags(flag.CommandLine)
	var (
		output     = flag.String("output", "matched.root", "output ROOT file")
		treeName   = flag.String("outtree", jetio.MatchTree, "output tree name")
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

	tw, err := jetio.CreateTree(*output, *treeName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, err := engine.New(cfg, append(run.EngineOptions(logger), engine.WithSink(tw))...)
	if err != nil {
		log.Fatal(err)
	}
	rep, runErr := e.Run(ctx, inputs...)
	if err := tw.Close(); err != nil {
		log.Fatal(err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}

	s := rep.Summary
	log.Printf("%d events, %d truth jets, %d reco jets, %d matched pairs written to %s",
		s.Events, s.TruthJets, s.RecoJets, s.Matched, *output)
	rep.Results.ForEach(func(id region.ID, res *engine.Results) error {
		log.Printf("%-8v truth %6d matched %6d", id, res.Truth, res.Matched)
		return nil
	})
}
