package jetio

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/eicjet/engine"
)

// MatchTree is the name of the tree of matched pairs.
const MatchTree = "RecoJetTree"

// TreeWriter writes matched pairs as rows of a flat ROOT tree. It
// implements engine.Sink.
type TreeWriter struct {
	f   *riofs.File
	w   rtree.Writer
	row engine.MatchRecord
}

// CreateTree creates path and a tree named name with one float64 branch
// per matched-pair field.
func CreateTree(path, name string) (*TreeWriter, error) {
	f, err := groot.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create %q: %w", path, err)
	}

	tw := &TreeWriter{f: f}
	wvars := []rtree.WriteVar{
		{Name: "recoPt", Value: &tw.row.RecoPt},
		{Name: "recoEnergy", Value: &tw.row.RecoEnergy},
		{Name: "truthPt", Value: &tw.row.TruthPt},
		{Name: "truthEnergy", Value: &tw.row.TruthEnergy},
		{Name: "dR", Value: &tw.row.DR},
	}
	tw.w, err = rtree.NewWriter(f, name, wvars)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not create tree %q: %w", name, err)
	}
	return tw, nil
}

func (tw *TreeWriter) Write(rec engine.MatchRecord) error {
	tw.row = rec
	_, err := tw.w.Write()
	return err
}

// Close flushes the tree and closes the file.
func (tw *TreeWriter) Close() error {
	if err := tw.w.Close(); err != nil {
		tw.f.Close()
		return fmt.Errorf("could not close tree: %w", err)
	}
	if err := tw.f.Close(); err != nil {
		return fmt.Errorf("could not close file: %w", err)
	}
	return nil
}
