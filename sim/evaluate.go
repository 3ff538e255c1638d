package sim

import (
	"math"

	"github.com/istellartech/OpenTsiolkovsky/coords"
	"github.com/istellartech/OpenTsiolkovsky/earth"
	"github.com/istellartech/OpenTsiolkovsky/linalg"
	"github.com/istellartech/OpenTsiolkovsky/stage"
	"github.com/istellartech/OpenTsiolkovsky/vehicle"
)

// stepData is every physically meaningful quantity derived from one
// (t, y) state evaluation: the dynamics derivative plus everything the
// trajectory and telemetry samples need, computed exactly once per
// evaluation so the two views can never drift apart.
type stepData struct {
	t      float64
	mass   float64
	posECI linalg.Vector3
	velECI linalg.Vector3

	llh          coords.LLH
	altitude     float64
	atmosphere   earth.Conditions
	dcmEciToNed  linalg.Matrix3
	velNED       linalg.Vector3
	windSpeedMps float64
	windDirDeg   float64
	velWindNED   linalg.Vector3
	velAirNED    linalg.Vector3
	speedAir     float64
	mach         float64
	dynamicPressure float64

	stageIndex int // 0-based
	stageLocal float64
	burning    bool

	attitudeAzDeg, attitudeElDeg float64
	dcmNedToBody                 linalg.Matrix3
	dcmEciToBody                 linalg.Matrix3
	angleOfAttackDeg             float64
	sideslipDeg                  float64

	gravityECI linalg.Vector3
	forceGravity linalg.Vector3
	forceThrust  linalg.Vector3
	forceAero    linalg.Vector3
	thrustBody   linalg.Vector3
	aeroBody     linalg.Vector3
	thrustN      float64
	dragN        float64
	ispSec       float64
	massFlowRate float64
	accelerationECI  linalg.Vector3
	accelerationBody linalg.Vector3
}

// evaluate computes every derived quantity at (t, y) and the dynamics
// derivative in one pass, grounded on the reference dynamics/
// update_derived_quantities/compute_thrust_force/compute_aerodynamic_forces
// functions.
func (s *Simulator) evaluate(t float64, y []float64) (stepData, []float64) {
	var d stepData
	d.t = t
	d.mass = y[0]
	d.posECI = linalg.NewVector3(y[1], y[2], y[3])
	d.velECI = linalg.NewVector3(y[4], y[5], y[6])

	posECEF := coords.PosEciToEcef(d.posECI, t)
	d.llh = coords.PosEcefToLLH(posECEF)
	d.altitude = d.llh.Alt

	d.atmosphere = s.atmosphere.ConditionsWithVariation(d.altitude, s.densityVariationPct)

	d.dcmEciToNed = coords.DCMEciToNed(d.llh, t)
	d.velNED = coords.VelEciToEcefNedFrame(d.posECI, d.velECI, d.dcmEciToNed)

	d.windSpeedMps, d.windDirDeg = s.rocket.Wind(d.altitude)
	d.velWindNED = coords.VelWindNedFrame(d.windSpeedMps, d.windDirDeg)
	d.velAirNED = d.velNED.Sub(d.velWindNED)
	d.speedAir = d.velAirNED.Norm()

	if d.atmosphere.SpeedOfSound > 0 {
		d.mach = d.speedAir / d.atmosphere.SpeedOfSound
	}
	d.dynamicPressure = 0.5 * d.atmosphere.Density * d.speedAir * d.speedAir

	d.stageIndex = stage.ActiveIndex(s.stageRuntime, t)
	rt := s.stageRuntime[d.stageIndex]
	d.stageLocal = stage.LocalTime(rt, t)
	d.burning = t >= rt.BurnStartSec && t < rt.ForcedCutoffSec

	d.attitudeAzDeg, d.attitudeElDeg = s.rocket.Attitude(t)
	d.dcmNedToBody = coords.DCMNedToBody(linalg.DegToRad(d.attitudeAzDeg), linalg.DegToRad(d.attitudeElDeg))
	d.dcmEciToBody = d.dcmNedToBody.Mul(d.dcmEciToNed)

	d.gravityECI = s.gravity.AccelerationECI(d.posECI)
	d.forceGravity = d.gravityECI.Scale(d.mass)

	if d.burning {
		tVac := s.rocket.ThrustVac(d.stageIndex, d.stageLocal)
		isp := s.rocket.IspVac(d.stageIndex, d.stageLocal)
		d.ispSec = isp
		if tVac > 0 && isp > 0 {
			d.massFlowRate = tVac / (isp * earth.StandardGravity)
		}
		exitArea := s.rocket.ExitAreaM2(d.stageIndex)
		effectiveThrust := tVac - exitArea*d.atmosphere.Pressure
		d.thrustN = effectiveThrust
		d.thrustBody = linalg.NewVector3(effectiveThrust, 0, 0)
		d.forceThrust = d.dcmEciToBody.Transpose().MulVec(d.thrustBody)
	}

	stageCfg := s.rocket.StageConfig(d.stageIndex)
	speed := d.velECI.Norm()
	if speed >= 0.1 && d.speedAir >= 0.1 {
		velAirBody := coords.VelAirBodyFrame(d.dcmNedToBody, d.velNED, d.velWindNED)
		alpha, beta, _ := coords.AngleOfAttack(velAirBody)
		d.angleOfAttackDeg = linalg.RadToDeg(alpha)
		d.sideslipDeg = linalg.RadToDeg(beta)

		if stageCfg.FreeFlightMode == vehicle.FreeFlightBallistic && !d.burning {
			bc := stageCfg.Aero.BallisticCoefficient
			if bc > 0 {
				accelMag := d.dynamicPressure / bc
				dirNED := d.velAirNED.Unit()
				forceNED := dirNED.Scale(-d.mass * accelMag)
				d.forceAero = d.dcmEciToNed.Transpose().MulVec(forceNED)
				d.aeroBody = d.dcmNedToBody.MulVec(forceNED)
				d.dragN = d.mass * accelMag
			}
		} else {
			aRef := s.rocket.ReferenceAreaM2(d.stageIndex)
			ca := s.rocket.CA(d.stageIndex, d.mach)
			cnAlpha := s.rocket.CN(d.stageIndex, d.mach, math.Abs(d.angleOfAttackDeg))
			cnBeta := s.rocket.CN(d.stageIndex, d.mach, math.Abs(d.sideslipDeg))

			dragBody := linalg.NewVector3(-ca*d.dynamicPressure*aRef, 0, 0)
			normalBody := linalg.NewVector3(0, 0, -linalg.Sign(alpha)*cnAlpha*d.dynamicPressure*aRef)
			sideBody := linalg.NewVector3(0, -linalg.Sign(beta)*cnBeta*d.dynamicPressure*aRef, 0)
			d.aeroBody = dragBody.Add(normalBody).Add(sideBody)

			d.forceAero = d.dcmEciToBody.Transpose().MulVec(d.aeroBody)
			d.dragN = -dragBody.X
		}
	}

	var accel linalg.Vector3
	if d.mass > 0 {
		total := d.forceGravity.Add(d.forceThrust).Add(d.forceAero)
		accel = total.Scale(1 / d.mass)
	} else {
		accel = d.gravityECI
		d.massFlowRate = 0
	}
	d.accelerationECI = accel
	d.accelerationBody = d.dcmEciToBody.MulVec(accel)

	derivative := []float64{
		-d.massFlowRate,
		d.velECI.X, d.velECI.Y, d.velECI.Z,
		accel.X, accel.Y, accel.Z,
	}
	return d, derivative
}

// dynamics is the ODE right-hand side handed to the integrators.
func (s *Simulator) dynamics(t float64, y []float64) []float64 {
	_, derivative := s.evaluate(t, y)
	return derivative
}
