// Package sim implements the flight dynamics engine proper: the dynamics
// function, the multi-stage state machine, and the output scheduler that
// drives the integrators and emits trajectory and telemetry samples.
package sim

import (
	"github.com/istellartech/OpenTsiolkovsky/coords"
	"github.com/istellartech/OpenTsiolkovsky/linalg"
)

// SimulationState is the observable state at one sampled time point. All
// derived fields are a pure function of (time, position, velocity, mass,
// stage, vehicle model, environment models), recomputed from the state
// at each recorded sample.
type SimulationState struct {
	TimeSec  float64
	Position linalg.Vector3 // ECI, m
	Velocity linalg.Vector3 // ECI, m/s
	MassKg   float64
	Stage    int // 1-based, monotone non-decreasing

	AltitudeM            float64
	SpeedMps             float64
	Mach                 float64
	DynamicPressurePa    float64
	ThrustN              float64
	DragN                float64
	AngleOfAttackDeg     float64
	SideslipDeg          float64
	AttitudeAzimuthDeg   float64
	AttitudeElevationDeg float64
	AccelerationECI      linalg.Vector3
	AccelerationBody     linalg.Vector3
}

// TelemetryRow is the wider, C++-compatible telemetry schema used for
// cross-validation against the reference implementation.
type TelemetryRow struct {
	TimeSec      float64
	MassKg       float64
	ThrustN      float64
	LatDeg       float64
	LonDeg       float64
	AltM         float64
	PositionECI  linalg.Vector3
	VelocityECI  linalg.Vector3
	VelocityNED  linalg.Vector3
	IspSec       float64
	Mach         float64
	AttAzDeg     float64
	AttElDeg     float64
	AttRollDeg   float64
	AoAAlphaDeg  float64
	AoABetaDeg   float64
	AoAGammaDeg  float64
	DynamicPressurePa float64
	AeroBody     linalg.Vector3
	ThrustBody   linalg.Vector3
	WindSpeedMps float64
	WindDirDeg   float64
	DownrangeM   float64
	ImpactPointLLH coords.LLH // reserved; zero until impact prediction is implemented
	DCMBodyToECI linalg.Matrix3
	InertialSpeedMps float64
	KineticEnergyNEDJ float64
	LossGravity  float64
	LossAero     float64
	LossThrust   float64
	IsPowered    bool
	IsSeparated  bool
}

// TerminationReason is why a run ended: normal scheduler termination, not
// an error.
type TerminationReason int

const (
	TerminationEndTimeReached TerminationReason = iota
	TerminationGroundImpact
)

func (r TerminationReason) String() string {
	switch r {
	case TerminationEndTimeReached:
		return "end_time_reached"
	case TerminationGroundImpact:
		return "ground_impact"
	default:
		return "unknown"
	}
}
