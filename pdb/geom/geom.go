// Distances between coordinates. We need these for residue contacts,
// CONECT sanity checks and the C-alpha distance matrix.

package geom

import (
	"math"

	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
)

// Brokendist is returned when one of the coordinates was never read
const Brokendist = -99

// Error is a constant error type
type Error string

func (e Error) Error() string { return string(e) }

// Dist2 gives the squared distance. Cheaper when only comparing.
func Dist2(x1, x2 cmmn.Xyz) float64 {
	d := x1.Sub(x2)
	return d.Dot(d)
}

// Dist is the plain euclidean distance
func Dist(x1, x2 cmmn.Xyz) float64 {
	return math.Sqrt(Dist2(x1, x2))
}

// CheckedDist is like Dist, but refuses coordinates that were
// marked broken while reading.
func CheckedDist(x1, x2 cmmn.Xyz) (float64, error) {
	if !x1.Ok() || !x2.Ok() {
		return Brokendist, Error("broken coordinate")
	}
	return Dist(x1, x2), nil
}

// Within says if two points are no further apart than cutoff.
func Within(x1, x2 cmmn.Xyz, cutoff float64) bool {
	return Dist2(x1, x2) <= cutoff*cutoff
}

// Angle takes three points and returns the angle at the middle one
func Angle(a, b, c cmmn.Xyz) (float64, error) {
	x1 := a.Sub(b)
	x2 := c.Sub(b)
	cosalpha := x1.Dot(x2) / (math.Sqrt(x1.Dot(x1)) * math.Sqrt(x2.Dot(x2)))
	if cosalpha > 1 && cosalpha < 1.01 { // numerical noise
		return 0.0, nil
	}
	if cosalpha < -1 && cosalpha > -1.01 {
		return math.Pi, nil
	}
	if math.IsNaN(cosalpha) || cosalpha < -1 || cosalpha > 1 {
		return math.NaN(), Error("Broken angle")
	}
	return math.Acos(cosalpha), nil
}
