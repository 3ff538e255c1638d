package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix3 is a dense 3x3 matrix stored in row-major order. A value, never
// shared. M stays a plain array so callers can index it directly, but
// composition (Mul, MulVec, Transpose) and elementary-rotation construction
// are computed through gonum.org/v1/gonum/mat, the same way the teacher's
// R1/R2/R3/MxV33 build elementary rotations on mat64.Dense.
type Matrix3 struct {
	M [3][3]float64
}

// dense copies m into a gonum Dense for composition.
func (m Matrix3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m.M[0][0], m.M[0][1], m.M[0][2],
		m.M[1][0], m.M[1][1], m.M[1][2],
		m.M[2][0], m.M[2][1], m.M[2][2],
	})
}

// fromDense copies a gonum Matrix back into a Matrix3 value.
func fromDense(d mat.Matrix) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = d.At(i, j)
		}
	}
	return r
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return fromDense(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}))
}

// NewMatrix3 builds a Matrix3 from nine row-major values.
func NewMatrix3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Matrix3 {
	return Matrix3{M: [3][3]float64{
		{m00, m01, m02},
		{m10, m11, m12},
		{m20, m21, m22},
	}}
}

// MulVec returns m·v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	var r mat.VecDense
	r.MulVec(m.dense(), mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return Vector3{r.AtVec(0), r.AtVec(1), r.AtVec(2)}
}

// Mul returns m·o.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var r mat.Dense
	r.Mul(m.dense(), o.dense())
	return fromDense(&r)
}

// Transpose returns mᵀ.
func (m Matrix3) Transpose() Matrix3 {
	return fromDense(m.dense().T())
}

// FrobeniusNorm returns the Frobenius norm of m. This is a plain scalar
// reduction over already-resolved elements, not a composition step, so it
// is computed directly rather than routed through gonum/mat.
func (m Matrix3) FrobeniusNorm() float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m.M[i][j] * m.M[i][j]
		}
	}
	return math.Sqrt(s)
}

// RotX returns the elementary rotation matrix about the X axis by angle x (rad).
func RotX(x float64) Matrix3 {
	s, c := math.Sincos(x)
	return fromDense(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}))
}

// RotY returns the elementary rotation matrix about the Y axis by angle x (rad).
func RotY(x float64) Matrix3 {
	s, c := math.Sincos(x)
	return fromDense(mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}))
}

// RotZ returns the elementary rotation matrix about the Z axis by angle x (rad).
func RotZ(x float64) Matrix3 {
	s, c := math.Sincos(x)
	return fromDense(mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}))
}

// Skew returns the skew-symmetric cross-product matrix of v, such that
// Skew(v).MulVec(w) == v.Cross(w).
func Skew(v Vector3) Matrix3 {
	return fromDense(mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	}))
}
