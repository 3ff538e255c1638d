package earth

import (
	"math"

	"github.com/istellartech/OpenTsiolkovsky/linalg"
)

// Gravity is the WGS84/EGM96 J2 gravity model. Use NewGravity: the zero
// value has a zero C̄₂₀ coefficient and so gives point-mass gravity only.
type Gravity struct {
	barC20 float64
}

// NewGravity returns the standard WGS84/EGM96 J2 gravity model.
func NewGravity() Gravity {
	return Gravity{barC20: NormalizedC20}
}

// AccelerationECI returns the gravitational acceleration vector at ECI
// position r, in m/s². Degenerate positions (r ≈ 0) return the zero
// vector; positions closer to the centre than the polar radius use the
// polar radius as their distance.
func (g Gravity) AccelerationECI(r linalg.Vector3) linalg.Vector3 {
	rho := r.Norm()
	if rho < 1e-10 {
		return linalg.Vector3{}
	}

	a := SemiMajorAxis
	b := PolarRadius()
	effectiveRho := rho
	if rho < b {
		effectiveRho = b
	}

	irx := r.X / rho
	iry := r.Y / rho
	irz := r.Z / rho

	barP20 := math.Sqrt(5) * (3*irz*irz - 1) * 0.5
	barP20d := math.Sqrt(5) * 3 * irz

	aOverR2 := (a / effectiveRho) * (a / effectiveRho)

	gr := -GM / (effectiveRho * effectiveRho) *
		(1 + g.barC20*aOverR2*(3*barP20+irz*barP20d))
	gzExtra := GM / (effectiveRho * effectiveRho) * aOverR2 * g.barC20 * barP20d

	return linalg.Vector3{
		X: gr * irx,
		Y: gr * iry,
		Z: gr*irz + gzExtra,
	}
}
