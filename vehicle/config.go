// Package vehicle models the launch vehicle: its per-stage configuration,
// the resolved tabular datasets (thrust, Isp, aero coefficients, attitude,
// wind), and the small non-virtual query methods the dynamics function
// calls on every integration substep.
package vehicle

import "github.com/istellartech/OpenTsiolkovsky/table"

// CalculateCondition holds the run-level integration and reporting
// parameters.
type CalculateCondition struct {
	EndTimeSec              float64
	OutputStepSec           float64
	AirDensityVariationPct  float64 // percent, [-100, 100]
	Integrator              IntegratorSelector
}

// IntegratorMethod selects between the fixed-step and adaptive
// integrators.
type IntegratorMethod int

const (
	MethodRK4 IntegratorMethod = iota
	MethodRK45
)

// IntegratorSelector names the integrator and its optional fixed step.
type IntegratorSelector struct {
	Method     IntegratorMethod
	RK4StepSec float64 // 0 means "unset": derive from OutputStepSec
}

// LaunchCondition is the initial state of the vehicle at mission time t=0.
type LaunchCondition struct {
	PositionLLHDegDegM [3]float64 // lat deg, lon deg, alt m
	VelocityNEDMps     [3]float64
	LaunchTimeUTC      [6]int // y, m, d, h, min, sec
}

// ThrustConfig describes a stage's propulsion: constant thrust/Isp unless
// the corresponding table is populated.
type ThrustConfig struct {
	ThrustTable          *table.TimeSeries
	ThrustCoefficient    float64
	ConstThrustVac       float64
	IspTable             *table.TimeSeries
	IspCoefficient       float64
	ConstIspVac          float64
	BurnStartSec         float64 // relative to stage ignition
	BurnEndSec           float64
	ForcedCutoffSec      float64
	ThroatDiameterM      float64
	NozzleExpansionRatio float64
}

// AeroConfig describes a stage's aerodynamic properties.
type AeroConfig struct {
	BodyDiameterM          float64
	NormalMultiplier       float64
	ConstNormalCoefficient float64
	CNTable                *table.TimeSeries // 1D Mach fallback
	CNSurface              *table.Surface2D  // 2D Mach x |angle| table
	AxialMultiplier        float64
	ConstAxialCoefficient  float64
	CATable                *table.TimeSeries
	BallisticCoefficient   float64 // kg/m^2; used when FreeFlightMode == FreeFlightBallistic
}

// AttitudeConfig describes a stage's prescribed constant attitude. Only
// the first stage's constants are used, and only when no attitude series
// is passed to NewRocket.
type AttitudeConfig struct {
	ConstAzimuthDeg   float64
	ConstElevationDeg float64
}

// StageTransitionConfig describes how a stage hands off to the next.
type StageTransitionConfig struct {
	FollowingStageExists bool
	SeparationTimeSec    float64 // relative to stage ignition
}

// PowerFlightMode is the stage's powered-flight selector as read from
// configuration. The dynamics do not consult it: thrust is applied
// whenever the stage is inside its burn window.
type PowerFlightMode int

const (
	PoweredFlight PowerFlightMode = iota
	UnpoweredFlight
)

// FreeFlightMode selects the unpowered aerodynamic force model.
type FreeFlightMode int

const (
	FreeFlightCoefficient FreeFlightMode = iota
	FreeFlightNone
	FreeFlightBallistic
)

// StageConfig is the immutable per-stage record.
type StageConfig struct {
	PowerFlightMode PowerFlightMode
	FreeFlightMode  FreeFlightMode
	MassInitialKg   float64
	Thrust          ThrustConfig
	Aero            AeroConfig
	Attitude        AttitudeConfig
	Stage           StageTransitionConfig
}

// WindConfig describes the wind profile: either a constant speed/direction
// or an altitude-indexed profile (carried on the resolved Rocket, not
// here, since profile ingestion is an external-collaborator concern).
type WindConfig struct {
	ConstWindSpeedMps float64
	ConstWindDirDeg   float64
}

// RocketConfig is the vehicle-level configuration: name, run conditions,
// launch state, ordered stages, and wind.
type RocketConfig struct {
	Name                string
	CalculateCondition  CalculateCondition
	Launch              LaunchCondition
	Stages              []StageConfig
	Wind                WindConfig
}

// StageCount returns the number of configured stages.
func (c RocketConfig) StageCount() int { return len(c.Stages) }

// Stage returns the configuration for stage index i (0-based).
func (c RocketConfig) Stage(i int) StageConfig { return c.Stages[i] }

// PrimaryStage returns the first stage's configuration, used as the
// attitude fallback when no attitude table is present.
func (c RocketConfig) PrimaryStage() StageConfig {
	if len(c.Stages) == 0 {
		panic("vehicle: RocketConfig must contain at least one stage")
	}
	return c.Stages[0]
}
