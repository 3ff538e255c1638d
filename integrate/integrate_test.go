package integrate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func exponentialDecay(_ float64, y []float64) []float64 {
	return []float64{-y[0]}
}

func harmonicOscillator(_ float64, y []float64) []float64 {
	return []float64{y[1], -y[0]}
}

func TestRK4ExponentialDecay(t *testing.T) {
	r := RK4{Step: 0.01}
	_, y := r.AdvanceTo(0, []float64{1.0}, 1.0, exponentialDecay)
	want := math.Exp(-1.0)
	if !floats.EqualWithinAbs(y[0], want, 1e-4) {
		t.Fatalf("got %f want %f", y[0], want)
	}
}

func TestRK4HarmonicOscillatorQuarterPeriod(t *testing.T) {
	r := RK4{Step: 0.001}
	_, y := r.AdvanceTo(0, []float64{1.0, 0.0}, math.Pi/2, harmonicOscillator)
	if !floats.EqualWithinAbs(y[0], 0.0, 1e-3) {
		t.Fatalf("x got %f want ~0", y[0])
	}
	if !floats.EqualWithinAbs(y[1], -1.0, 1e-3) {
		t.Fatalf("v got %f want ~-1", y[1])
	}
}

func TestRK4StepsExactlyToTarget(t *testing.T) {
	r := RK4{Step: 0.3}
	tEnd, _ := r.AdvanceTo(0, []float64{1.0}, 1.0, exponentialDecay)
	if !floats.EqualWithinAbs(tEnd, 1.0, 1e-12) {
		t.Fatalf("got t=%f want exactly 1.0", tEnd)
	}
}

func TestDP54ExponentialDecayWithinTolerance(t *testing.T) {
	d := NewDP54()
	tEnd, y, _ := d.AdvanceTo(0, []float64{1.0}, 0, 1.0, exponentialDecay)
	want := math.Exp(-1.0)
	if !floats.EqualWithinAbs(y[0], want, 1e-6) {
		t.Fatalf("got %f want %f", y[0], want)
	}
	if !floats.EqualWithinAbs(tEnd, 1.0, 1e-9) {
		t.Fatalf("got t=%f want 1.0", tEnd)
	}
}

func TestDP54ReturnsStepSizeForWarmStart(t *testing.T) {
	d := NewDP54()
	_, _, h := d.AdvanceTo(0, []float64{1.0}, 0, 1.0, exponentialDecay)
	if h < d.HMin || h > d.HMax {
		t.Fatalf("returned step size %f out of bounds [%f, %f]", h, d.HMin, d.HMax)
	}
}

func TestDP54ScaledErrorNormNeverExceedsOneExceptAntiStall(t *testing.T) {
	d := NewDP54()
	y := []float64{1.0}
	// A step the default 1e-9 tolerances accept; h = 0.1 would be
	// rejected (scaled error about 4).
	h := 0.05
	for i := 0; i < 20; i++ {
		y5, err := dp54Step(float64(i)*h, y, h, exponentialDecay)
		norm := d.scaledErrorNorm(y, y5, err)
		if norm > 1.0 && h > d.HMin*dp54AntiStallTolerance {
			t.Fatalf("accepted step with scaled error norm %f > 1", norm)
		}
		y = y5
	}
}

func TestDP54HarmonicOscillatorQuarterPeriod(t *testing.T) {
	d := NewDP54()
	_, y, _ := d.AdvanceTo(0, []float64{1.0, 0.0}, 0, math.Pi/2, harmonicOscillator)
	if !floats.EqualWithinAbs(y[0], 0.0, 1e-6) {
		t.Fatalf("x got %f want ~0", y[0])
	}
	if !floats.EqualWithinAbs(y[1], -1.0, 1e-6) {
		t.Fatalf("v got %f want ~-1", y[1])
	}
}
