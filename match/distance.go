// Package match associates reconstructed jets with truth jets in eta-phi
// space.
package match

import (
	"math"

	"github.com/decibelcooper/eicjet/jet"
)

// Invalid is returned by Distance when a coordinate is missing. It is larger
// than the square of any usable matching radius, so ordinary comparisons
// against a cut reject it.
const Invalid = 9999.

// DeltaPhi returns a - b wrapped into (-pi, pi].
func DeltaPhi(a, b float64) float64 {
	dPhi := math.Remainder(a-b, 2*math.Pi)
	if dPhi <= -math.Pi {
		dPhi += 2 * math.Pi
	}
	return dPhi
}

// Distance returns the squared eta-phi separation dEta^2 + dPhi^2 between a
// truth and a reco direction, or Invalid if any input is NaN.
func Distance(truthEta, truthPhi, recoEta, recoPhi float64) float64 {
	if math.IsNaN(truthEta) || math.IsNaN(truthPhi) || math.IsNaN(recoEta) || math.IsNaN(recoPhi) {
		return Invalid
	}

	dEta := truthEta - recoEta
	dPhi := DeltaPhi(truthPhi, recoPhi)
	return dEta*dEta + dPhi*dPhi
}

// PairDistance is Distance applied to a pair.
func PairDistance(p jet.Pair) float64 {
	return Distance(p.Truth.Eta, p.Truth.Phi, p.Reco.Eta, p.Reco.Phi)
}
