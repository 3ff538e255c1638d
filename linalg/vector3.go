// Package linalg provides the small 3-vector and 3x3-matrix algebra used
// throughout the flight dynamics engine: Vector3/Matrix3 values, angle
// utilities, and the elementary rotation builders used to compose DCMs.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 1 / deg2rad
)

const equalityε = 1e-12

// Vector3 is an ordered triple of double-precision reals. Values, never shared.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 builds a Vector3 from its three components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the inner product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean norm of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns v normalized to unit length, or the zero vector if v is
// (numerically) zero.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if floats.EqualWithinAbs(n, 0, equalityε) {
		return Vector3{}
	}
	return v.Scale(1 / n)
}

// Sign returns the sign of x: -1 for negative, +1 otherwise (zero counts
// as positive).
func Sign(x float64) float64 {
	if floats.EqualWithinAbs(x, 0, equalityε) {
		return 1
	}
	return x / math.Abs(x)
}

// Deg2rad converts degrees to radians, wrapping into [0, 2π) for inputs of
// -360 or more; inputs below -360 give a negative result.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, wrapping into [0, 360) for inputs of
// -2π or more; inputs below -2π give a negative result.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

// DegToRad is an unconstrained degrees->radians conversion (no wrapping),
// used on the hot dynamics path where the sign of the angle matters.
func DegToRad(a float64) float64 {
	return a * deg2rad
}

// RadToDeg is an unconstrained radians->degrees conversion (no wrapping).
func RadToDeg(a float64) float64 {
	return a * rad2deg
}
