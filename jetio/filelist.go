// Package jetio reads jet records from simulation output and writes matched
// pairs as flat trees.
package jetio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/eicjet/jet"
)

// ReadFileList returns the paths listed one per line in path. Blank lines
// and lines starting with '#' are skipped; relative entries are kept as
// written.
func ReadFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file list: %w", err)
	}
	defer f.Close()

	var files []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read file list %q: %w", path, err)
	}
	return files, nil
}

// Options select what is read from each input format.
type Options struct {
	// Tree and branch names of ROOT ntuples.
	Tree  string
	Event string

	// Collections of jets in LCIO files.
	TruthCollection string
	RecoCollection  string
}

func DefaultOptions() Options {
	return Options{
		Tree:            "ntp_truthjet",
		Event:           "event",
		TruthCollection: "TruthJets",
		RecoCollection:  "Jets",
	}
}

// Open returns the source reading path, chosen by file extension.
func Open(path string, opts Options) (jet.Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".root":
		return &ROOTSource{Path: path, Tree: opts.Tree, Event: opts.Event}, nil
	case ".slcio":
		return &LCIOSource{Path: path, Truth: opts.TruthCollection, Reco: opts.RecoCollection}, nil
	default:
		return nil, fmt.Errorf("unknown input format %q for %q", ext, path)
	}
}

// OpenAll returns one source scanning every path in order.
func OpenAll(paths []string, opts Options) (jet.Source, error) {
	var chain Chain
	for _, path := range paths {
		src, err := Open(path, opts)
		if err != nil {
			return nil, err
		}
		chain = append(chain, src)
	}
	return chain, nil
}

// Chain scans its sources one after the other.
type Chain []jet.Source

func (c Chain) Scan(ctx context.Context, fn func(jet.Event) error) error {
	for _, src := range c {
		if err := src.Scan(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}
