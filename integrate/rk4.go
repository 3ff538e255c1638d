// Package integrate provides the two ODE integrators the simulator
// drives the dynamics function with: a classical fixed-step RK4 and an
// adaptive embedded Dormand-Prince 5(4) with error-driven step control. Both are
// plain values — the integrator choice is a construction-time tag, never
// a virtual dispatch, since the step function is called millions of
// times per run.
package integrate

// System is the ODE right-hand side: dy/dt = f(t, y).
type System func(t float64, y []float64) []float64

// RK4 is the classical fixed-step 4th-order Runge-Kutta integrator.
type RK4 struct {
	Step float64 // s; if <= 0, callers should derive a default (see NewRK4Step)
}

// NewRK4Step returns the default RK4 step size given the output step:
// half the output step, floored at 1e-6 s.
func NewRK4Step(outputStepSec float64) float64 {
	h := outputStepSec / 2
	if h < 1e-6 {
		h = 1e-6
	}
	return h
}

// step performs one classical RK4 step of size h.
func step(t float64, y []float64, h float64, f System) []float64 {
	n := len(y)
	k1 := f(t, y)

	y1 := make([]float64, n)
	for i := range y {
		y1[i] = y[i] + 0.5*h*k1[i]
	}
	k2 := f(t+0.5*h, y1)

	y2 := make([]float64, n)
	for i := range y {
		y2[i] = y[i] + 0.5*h*k2[i]
	}
	k3 := f(t+0.5*h, y2)

	y3 := make([]float64, n)
	for i := range y {
		y3[i] = y[i] + h*k3[i]
	}
	k4 := f(t+h, y3)

	out := make([]float64, n)
	for i := range y {
		out[i] = y[i] + h*(k1[i]+2*k2[i]+2*k3[i]+k4[i])/6
	}
	return out
}

// AdvanceTo integrates from (t, y) to target using repeated fixed steps
// of at most r.Step, the final step shortened to land exactly on target.
func (r RK4) AdvanceTo(t float64, y []float64, target float64, f System) (float64, []float64) {
	h := r.Step
	if h <= 0 {
		h = NewRK4Step(0.2) // conservative fallback; callers should set Step explicitly
	}
	for t < target {
		remaining := target - t
		stepSize := h
		if stepSize > remaining {
			stepSize = remaining
		}
		y = step(t, y, stepSize, f)
		t += stepSize
	}
	return t, y
}
