package jetio

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/eicjet/engine"
)

type yodaObject interface {
	Annotation() hbook.Annotation
	MarshalYODA() ([]byte, error)
}

// WriteYODA writes the energy histograms and joint grids of one region's
// metrics as YODA objects named /<dir>/<quantity>.
func WriteYODA(w io.Writer, dir string, m *engine.Metrics) error {
	objs := []struct {
		name string
		obj  yodaObject
	}{
		{"truthEnergy", m.TruthEnergy.H1D()},
		{"matchedEnergy", m.MatchedEnergy.H1D()},
		{"energyJoint", m.EnergyJoint.H2D()},
		{"etaJoint", m.EtaJoint.H2D()},
		{"phiJoint", m.PhiJoint.H2D()},
	}
	for _, o := range objs {
		o.obj.Annotation()["name"] = "/" + dir + "/" + o.name
		raw, err := o.obj.MarshalYODA()
		if err != nil {
			return fmt.Errorf("could not marshal %s: %w", o.name, err)
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}
	}
	return nil
}
