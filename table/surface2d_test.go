package table

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func unitSurface() Surface2D {
	// A single 2x2 cell with distinct corner values, so the triangular
	// split is exercised rather than masked by symmetry.
	x := []float64{0, 1}
	y := []float64{0, 1}
	z := [][]float64{
		{0, 10}, // z(0,0)=0, z(0,1)=10
		{20, 30}, // z(1,0)=20, z(1,1)=30
	}
	return NewSurface2D(x, y, z)
}

func TestSurface2DReproducesCornersExactly(t *testing.T) {
	s := unitSurface()
	cases := []struct {
		xv, yv, want float64
	}{
		{0, 0, 0},
		{1, 0, 20},
		{0, 1, 10},
		{1, 1, 30},
	}
	for _, c := range cases {
		if v := s.At(c.xv, c.yv); !floats.EqualWithinAbs(v, c.want, 1e-9) {
			t.Fatalf("At(%f,%f) got %f want %f", c.xv, c.yv, v, c.want)
		}
	}
}

func TestSurface2DLowerTriangleIsPlanar(t *testing.T) {
	s := unitSurface()
	// dMach<0.5, dAlpha<0.5: plane anchored at (0,0).
	got := s.At(0.25, 0.25)
	want := 0.0 + (20.0-0.0)*0.25 + (10.0-0.0)*0.25
	if !floats.EqualWithinAbs(got, want, 1e-9) {
		t.Fatalf("got %f want %f", got, want)
	}
}

func TestSurface2DUpperTriangleIsPlanar(t *testing.T) {
	s := unitSurface()
	// dMach>=0.5, dAlpha>=0.5: plane anchored at (1,1).
	got := s.At(0.75, 0.75)
	want := 30.0 + (30.0-10.0)*(-0.25) + (30.0-20.0)*(-0.25)
	if !floats.EqualWithinAbs(got, want, 1e-9) {
		t.Fatalf("got %f want %f", got, want)
	}
}

func TestSurface2DClampsOutsideGrid(t *testing.T) {
	s := unitSurface()
	inside := s.At(0, 0)
	outside := s.At(-100, -100)
	if !floats.EqualWithinAbs(inside, outside, 1e-9) {
		t.Fatalf("clamped lookup should match corner: %f vs %f", inside, outside)
	}
}

func TestSurface2DPanicsOnUndersizedGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on undersized grid")
		}
	}()
	NewSurface2D([]float64{0}, []float64{0, 1}, [][]float64{{0, 1}})
}

func TestSurface2DPanicsOnNonAscendingX(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-ascending x grid")
		}
	}()
	NewSurface2D([]float64{1, 0}, []float64{0, 1}, [][]float64{{0, 1}, {2, 3}})
}

func TestSurface2DPanicsOnNonAscendingY(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-ascending y grid")
		}
	}()
	NewSurface2D([]float64{0, 1}, []float64{1, 0}, [][]float64{{0, 1}, {2, 3}})
}
