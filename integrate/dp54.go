package integrate

import "math"

// DP54 is an embedded 7-stage FSAL Dormand-Prince 5(4) integrator with
// adaptive step-size control driven by the current step's error estimate.
type DP54 struct {
	AbsTol float64
	RelTol float64
	HMin   float64
	HMax   float64
}

// NewDP54 returns a DP54 with the standard default tolerances and step
// bounds.
func NewDP54() DP54 {
	return DP54{AbsTol: 1e-9, RelTol: 1e-9, HMin: 1e-6, HMax: 10}
}

const (
	dp54SafetyFactor       = 0.9
	dp54StepExponent       = 1.0 / 5.0
	dp54AcceptFactorMin    = 0.2
	dp54AcceptFactorMax    = 5.0
	dp54RejectFactorMin    = 0.2
	dp54RejectFactorMax    = 0.5
	dp54AntiStallTolerance = 1.01
)

// dp54Step performs one DP54 step of size h, returning the 5th-order
// solution and the embedded error estimate (y5 - y4).
func dp54Step(t float64, y []float64, h float64, f System) (y5, err []float64) {
	const (
		c2, c3, c4, c5, c6, c7 = 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1.0, 1.0

		a21             = 1.0 / 5.0
		a31, a32        = 3.0 / 40.0, 9.0 / 40.0
		a41, a42, a43   = 44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0
		a51, a52        = 19372.0 / 6561.0, -25360.0 / 2187.0
		a53, a54        = 64448.0 / 6561.0, -212.0 / 729.0
		a61, a62        = 9017.0 / 3168.0, -355.0 / 33.0
		a63, a64, a65   = 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0
		a71, a72        = 35.0 / 384.0, 0.0
		a73, a74        = 500.0 / 1113.0, 125.0 / 192.0
		a75, a76        = -2187.0 / 6784.0, 11.0 / 84.0

		b1, b2, b3 = 35.0 / 384.0, 0.0, 500.0 / 1113.0
		b4, b5, b6 = 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0

		bs1, bs2, bs3 = 5179.0 / 57600.0, 0.0, 7571.0 / 16695.0
		bs4, bs5      = 393.0 / 640.0, -92097.0 / 339200.0
		bs6, bs7      = 187.0 / 2100.0, 1.0 / 40.0
	)

	n := len(y)
	yt := make([]float64, n)

	k1 := f(t, y)

	for i := range y {
		yt[i] = y[i] + h*a21*k1[i]
	}
	k2 := f(t+c2*h, yt)

	yt = make([]float64, n)
	for i := range y {
		yt[i] = y[i] + h*(a31*k1[i]+a32*k2[i])
	}
	k3 := f(t+c3*h, yt)

	yt = make([]float64, n)
	for i := range y {
		yt[i] = y[i] + h*(a41*k1[i]+a42*k2[i]+a43*k3[i])
	}
	k4 := f(t+c4*h, yt)

	yt = make([]float64, n)
	for i := range y {
		yt[i] = y[i] + h*(a51*k1[i]+a52*k2[i]+a53*k3[i]+a54*k4[i])
	}
	k5 := f(t+c5*h, yt)

	yt = make([]float64, n)
	for i := range y {
		yt[i] = y[i] + h*(a61*k1[i]+a62*k2[i]+a63*k3[i]+a64*k4[i]+a65*k5[i])
	}
	k6 := f(t+c6*h, yt)

	yt = make([]float64, n)
	for i := range y {
		yt[i] = y[i] + h*(a71*k1[i]+a72*k2[i]+a73*k3[i]+a74*k4[i]+a75*k5[i]+a76*k6[i])
	}
	k7 := f(t+c7*h, yt)

	y5 = make([]float64, n)
	for i := range y {
		y5[i] = y[i] + h*(b1*k1[i]+b2*k2[i]+b3*k3[i]+b4*k4[i]+b5*k5[i]+b6*k6[i])
	}

	y4 := make([]float64, n)
	for i := range y {
		y4[i] = y[i] + h*(bs1*k1[i]+bs2*k2[i]+bs3*k3[i]+bs4*k4[i]+bs5*k5[i]+bs6*k6[i]+bs7*k7[i])
	}

	err = make([]float64, n)
	for i := range y {
		err[i] = y5[i] - y4[i]
	}
	return y5, err
}

func (d DP54) scaledErrorNorm(y, y5, err []float64) float64 {
	var maxErr float64
	for i := range y {
		sc := d.AbsTol + d.RelTol*math.Max(math.Abs(y5[i]), math.Abs(y[i]))
		e := math.Abs(err[i] / sc)
		if e > maxErr {
			maxErr = e
		}
	}
	return maxErr
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AdvanceTo integrates from (t, y) to target with adaptive steps seeded
// by h, clipping the final step to land exactly on target. Returns the
// new time, state, and the step size to seed the next call with.
func (d DP54) AdvanceTo(t float64, y []float64, target float64, h float64, f System) (newT float64, newY []float64, newH float64) {
	if h <= 0 {
		h = clamp((target-t)/10, d.HMin, d.HMax)
	}
	for t < target-1e-12 {
		if t+h > target {
			h = target - t
		}
		y5, err := dp54Step(t, y, h, f)
		maxErr := d.scaledErrorNorm(y, y5, err)

		if maxErr <= 1.0 {
			t += h
			y = y5
			factor := clamp(dp54SafetyFactor*math.Pow(1.0/maxErr, dp54StepExponent), dp54AcceptFactorMin, dp54AcceptFactorMax)
			h = clamp(h*factor, d.HMin, d.HMax)
		} else {
			hTried := h
			factor := clamp(dp54SafetyFactor*math.Pow(1.0/maxErr, dp54StepExponent), dp54RejectFactorMin, dp54RejectFactorMax)
			h = clamp(h*factor, d.HMin, d.HMax)
			if h <= d.HMin*dp54AntiStallTolerance {
				t += hTried
				y = y5
			}
		}
	}
	return t, y, h
}
