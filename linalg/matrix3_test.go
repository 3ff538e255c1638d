package linalg

import (
	"math"
	"testing"
)

func TestElementaryRotationsAreOrthogonal(t *testing.T) {
	θ := math.Pi / 3.0
	for _, r := range []Matrix3{RotX(θ), RotY(θ), RotZ(θ)} {
		prod := r.Mul(r.Transpose())
		diff := prod.M
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(diff[i][j]-want) > 1e-12 {
					t.Fatalf("rot*rotT not identity at (%d,%d): %f", i, j, diff[i][j])
				}
			}
		}
	}
}

func TestElementaryRotationStructure(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := RotX(x)
	r2 := RotY(x)
	r3 := RotZ(x)
	if r1.M[0][0] != r2.M[1][1] || r1.M[0][0] != r3.M[2][2] || r3.M[2][2] != 1 {
		t.Fatal("expected R1[0,0] = R2[1,1] = R3[2,2] = 1")
	}
	if r1.M[1][1] != c || r1.M[1][2] != s || r1.M[2][1] != -s {
		t.Fatal("R1 sin/cos placement wrong")
	}
	if r2.M[0][0] != c || r2.M[2][0] != s || r2.M[0][2] != -s {
		t.Fatal("R2 sin/cos placement wrong")
	}
	if r3.M[0][0] != c || r3.M[0][1] != s || r3.M[1][0] != -s {
		t.Fatal("R3 sin/cos placement wrong")
	}
}

func TestSkewMatchesCross(t *testing.T) {
	v := NewVector3(1, 2, 3)
	w := NewVector3(4, -1, 2)
	if !vectorsEqual(Skew(v).MulVec(w), v.Cross(w)) {
		t.Fatal("Skew(v)*w != v x w")
	}
}

func TestIdentity3(t *testing.T) {
	id := Identity3()
	v := NewVector3(1, 2, 3)
	if !vectorsEqual(id.MulVec(v), v) {
		t.Fatal("identity matrix did not preserve vector")
	}
}
