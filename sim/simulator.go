package sim

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"

	"github.com/istellartech/OpenTsiolkovsky/coords"
	"github.com/istellartech/OpenTsiolkovsky/earth"
	"github.com/istellartech/OpenTsiolkovsky/integrate"
	"github.com/istellartech/OpenTsiolkovsky/linalg"
	"github.com/istellartech/OpenTsiolkovsky/stage"
	"github.com/istellartech/OpenTsiolkovsky/vehicle"
)

// groundImpactEpsilon keeps the end-of-run loop condition from spinning
// on floating-point noise at t ≈ end_time.
const groundImpactEpsilon = 1e-9

// Simulator owns the authoritative mutable state for one run: the
// current (time, position, velocity, mass, stage) plus the environment
// and vehicle models it was constructed from. It is single-use per run
// but cheap to reconstruct; it is not thread-safe, though the read-only
// Rocket it wraps is safe to share across concurrently-executing
// simulators for parameter sweeps.
type Simulator struct {
	rocket       vehicle.Rocket
	atmosphere   earth.Atmosphere
	gravity      earth.Gravity
	stageRuntime []stage.Runtime

	endTimeSec          float64
	outputStepSec       float64
	densityVariationPct float64

	method integrate.System
	rk4    integrate.RK4
	dp54   integrate.DP54
	useDP  bool
	dp54H  float64

	state      SimulationState
	trajectory []SimulationState
	telemetry  []TelemetryRow
	warnings   []string

	launchLLH coords.LLH
	logger    kitlog.Logger
}

// NewSimulator constructs a Simulator from a resolved Rocket and builds
// its stage runtime schedule. Configuration validation happens in
// vehicle.NewRocket, not here, and the returned error is always nil. A
// Rocket with no stages (which vehicle.NewRocket rejects) makes it panic.
func NewSimulator(rocket vehicle.Rocket) (*Simulator, error) {
	cfg := rocket.Config()

	sources := make([]stage.StageSource, rocket.StageCount())
	for i := 0; i < rocket.StageCount(); i++ {
		sc := rocket.StageConfig(i)
		sources[i] = stage.StageSource{
			MassInitialKg:        sc.MassInitialKg,
			BurnStartSec:         sc.Thrust.BurnStartSec,
			BurnEndSec:           sc.Thrust.BurnEndSec,
			ForcedCutoffSec:      sc.Thrust.ForcedCutoffSec,
			FollowingStageExists: sc.Stage.FollowingStageExists,
			SeparationTimeSec:    sc.Stage.SeparationTimeSec,
		}
	}
	runtimes := stage.Build(sources, cfg.CalculateCondition.EndTimeSec)

	launchLLH := coords.LLH{
		LatDeg: cfg.Launch.PositionLLHDegDegM[0],
		LonDeg: cfg.Launch.PositionLLHDegDegM[1],
		Alt:    cfg.Launch.PositionLLHDegDegM[2],
	}
	velNED := linalg.NewVector3(
		cfg.Launch.VelocityNEDMps[0],
		cfg.Launch.VelocityNEDMps[1],
		cfg.Launch.VelocityNEDMps[2],
	)

	posECI := coords.PosEciInit(launchLLH)
	velECI := coords.VelEciInit(velNED, launchLLH)

	s := &Simulator{
		rocket:              rocket,
		atmosphere:          earth.NewAtmosphere(),
		gravity:             earth.NewGravity(),
		stageRuntime:        runtimes,
		endTimeSec:          cfg.CalculateCondition.EndTimeSec,
		outputStepSec:       cfg.CalculateCondition.OutputStepSec,
		densityVariationPct: cfg.CalculateCondition.AirDensityVariationPct,
		launchLLH:           launchLLH,
		logger:              scopedLogger(cfg.Name),
	}

	switch cfg.CalculateCondition.Integrator.Method {
	case vehicle.MethodRK45:
		s.useDP = true
		s.dp54 = integrate.NewDP54()
	default:
		step := cfg.CalculateCondition.Integrator.RK4StepSec
		if step <= 0 {
			step = integrate.NewRK4Step(s.outputStepSec)
		}
		s.rk4 = integrate.RK4{Step: step}
	}

	s.state = SimulationState{
		TimeSec:  0,
		Position: posECI,
		Velocity: velECI,
		MassKg:   runtimes[0].StackMassKg,
		Stage:    1,
		AltitudeM: launchLLH.Alt,
	}

	return s, nil
}

// Warnings returns the non-fatal numerical warnings accumulated during
// the run. The only warning recorded is mass reaching zero or below.
func (s *Simulator) Warnings() []string { return s.warnings }

// Trajectory returns the recorded trajectory samples after Run.
func (s *Simulator) Trajectory() []SimulationState { return s.trajectory }

// Telemetry returns the recorded C++-compatible telemetry rows after Run.
func (s *Simulator) Telemetry() []TelemetryRow { return s.telemetry }

func (s *Simulator) stateVector() []float64 {
	return []float64{
		s.state.MassKg,
		s.state.Position.X, s.state.Position.Y, s.state.Position.Z,
		s.state.Velocity.X, s.state.Velocity.Y, s.state.Velocity.Z,
	}
}

func (s *Simulator) applyStateVector(t float64, y []float64) {
	s.state.TimeSec = t
	s.state.MassKg = y[0]
	s.state.Position = linalg.NewVector3(y[1], y[2], y[3])
	s.state.Velocity = linalg.NewVector3(y[4], y[5], y[6])
}

// advanceTo integrates from the current state to target using the
// configured integrator.
func (s *Simulator) advanceTo(target float64) {
	t := s.state.TimeSec
	y := s.stateVector()
	if s.useDP {
		var newT float64
		var newY []float64
		newT, newY, s.dp54H = s.dp54.AdvanceTo(t, y, target, s.dp54H, s.dynamics)
		s.applyStateVector(newT, newY)
		return
	}
	newT, newY := s.rk4.AdvanceTo(t, y, target, s.dynamics)
	s.applyStateVector(newT, newY)
}

// updateDerived recomputes every derived SimulationState/telemetry field
// from the current state vector, applies a stage transition (stage
// ordinal and stack mass) when the active stage has advanced, warns when
// mass is zero or below, and records the trajectory and telemetry sample.
func (s *Simulator) updateDerived() {
	y := s.stateVector()
	d, _ := s.evaluate(s.state.TimeSec, y)

	newStageIndex := d.stageIndex
	if newStageIndex+1 > s.state.Stage {
		s.state.MassKg = s.stageRuntime[newStageIndex].StackMassKg
		s.state.Stage = newStageIndex + 1
		y[0] = s.state.MassKg
		d, _ = s.evaluate(s.state.TimeSec, y)
	}

	if d.mass <= 0 {
		s.warn(fmt.Sprintf("mass reached %.3f kg at t=%.3f s; returning gravity-only acceleration", d.mass, d.t))
	}

	s.state.AltitudeM = d.altitude
	s.state.SpeedMps = d.velECI.Norm()
	s.state.Mach = d.mach
	s.state.DynamicPressurePa = d.dynamicPressure
	s.state.ThrustN = d.thrustN
	s.state.DragN = d.dragN
	s.state.AngleOfAttackDeg = d.angleOfAttackDeg
	s.state.SideslipDeg = d.sideslipDeg
	s.state.AttitudeAzimuthDeg = d.attitudeAzDeg
	s.state.AttitudeElevationDeg = d.attitudeElDeg
	s.state.AccelerationECI = d.accelerationECI
	s.state.AccelerationBody = d.accelerationBody

	s.trajectory = append(s.trajectory, s.state)
	s.telemetry = append(s.telemetry, s.captureTelemetry(d))
}

func (s *Simulator) warn(msg string) {
	s.warnings = append(s.warnings, msg)
	s.logger.Log("level", "warn", "msg", msg)
}

func (s *Simulator) captureTelemetry(d stepData) TelemetryRow {
	downrange := coords.DistanceSurface(s.launchLLH, d.llh)
	isPowered := d.burning
	isSeparated := s.state.Stage > 1

	var lossGravity, lossThrust float64
	if isPowered {
		flightPathSin := 0.0
		if d.velNED.Norm() > 1e-9 {
			flightPathSin = -d.velNED.Z / d.velNED.Norm()
		}
		gravityNED := d.dcmEciToNed.MulVec(d.gravityECI)
		lossGravity = gravityNED.Z * flightPathSin
		exitArea := s.rocket.ExitAreaM2(d.stageIndex)
		if d.mass > 0 {
			lossThrust = d.atmosphere.Pressure * exitArea / d.mass
		}
	}
	var lossAero float64
	if d.mass > 0 {
		lossAero = d.dragN / d.mass
	}

	kineticEnergy := 0.5 * d.mass * d.velNED.Dot(d.velNED)

	return TelemetryRow{
		TimeSec:      d.t,
		MassKg:       d.mass,
		ThrustN:      d.thrustN,
		LatDeg:       d.llh.LatDeg,
		LonDeg:       d.llh.LonDeg,
		AltM:         d.altitude,
		PositionECI:  d.posECI,
		VelocityECI:  d.velECI,
		VelocityNED:  d.velNED,
		IspSec:       d.ispSec,
		Mach:         d.mach,
		AttAzDeg:     d.attitudeAzDeg,
		AttElDeg:     d.attitudeElDeg,
		AoAAlphaDeg:  d.angleOfAttackDeg,
		AoABetaDeg:   d.sideslipDeg,
		DynamicPressurePa: d.dynamicPressure,
		AeroBody:     d.aeroBody,
		ThrustBody:   d.thrustBody,
		WindSpeedMps: d.windSpeedMps,
		WindDirDeg:   d.windDirDeg,
		DownrangeM:   downrange,
		DCMBodyToECI: d.dcmEciToBody.Transpose(),
		InertialSpeedMps: d.velECI.Norm(),
		KineticEnergyNEDJ: kineticEnergy,
		LossGravity:  lossGravity,
		LossAero:     lossAero,
		LossThrust:   lossThrust,
		IsPowered:    isPowered,
		IsSeparated:  isSeparated,
	}
}

// Run executes the full simulation from t=0 to end_time or ground impact,
// whichever comes first, returning the termination reason.
func (s *Simulator) Run() TerminationReason {
	s.trajectory = s.trajectory[:0]
	s.telemetry = s.telemetry[:0]

	s.updateDerived()

	if s.outputStepSec <= 0 || !finite(s.outputStepSec) {
		return TerminationEndTimeReached
	}

	nextOutput := math.Min(s.outputStepSec, s.endTimeSec)

	for s.state.TimeSec+groundImpactEpsilon < s.endTimeSec {
		r := s.state.Position
		v := s.state.Velocity
		rNorm := r.Norm()
		var radialVelocity float64
		if rNorm > 1e-9 {
			radialVelocity = v.Dot(r) / rNorm
		}
		if s.state.AltitudeM > 0 && radialVelocity < 0 &&
			s.state.AltitudeM+radialVelocity*s.outputStepSec <= 0 {
			s.logger.Log("event", "ground_impact_precheck", "t", s.state.TimeSec)
			return TerminationGroundImpact
		}

		s.advanceTo(nextOutput)
		s.updateDerived()

		if s.state.AltitudeM <= 0 {
			return TerminationGroundImpact
		}

		nextOutput = math.Min(nextOutput+s.outputStepSec, s.endTimeSec)
	}
	return TerminationEndTimeReached
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
