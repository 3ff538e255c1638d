package vehicle

import (
	"math"

	"github.com/istellartech/OpenTsiolkovsky/table"
)

// AttitudeSample is one (time, azimuth_deg, elevation_deg) attitude
// command, interpolated on the mission clock.
type AttitudeSample struct {
	TimeSec      float64
	AzimuthDeg   float64
	ElevationDeg float64
}

// WindSample is one (altitude, speed, direction) wind observation.
type WindSample struct {
	AltitudeM     float64
	SpeedMps      float64
	DirectionDeg  float64
}

// Rocket is a RocketConfig plus the resolved tabular datasets: attitude
// and wind are mission-clock/altitude-indexed series shared across
// stages; thrust, Isp, CA, and CN tables live per-stage inside
// StageConfig's Thrust/Aero sub-records.
type Rocket struct {
	config   RocketConfig
	attitude []AttitudeSample // nil => use PrimaryStage's constants
	wind     []WindSample     // nil => use config.Wind constant
}

// NewRocket validates config and resolves it into a queryable Rocket.
// Construction failures are reported via error, not panic, since a bad
// configuration is an expected, recoverable caller mistake.
func NewRocket(config RocketConfig, attitude []AttitudeSample, wind []WindSample) (Rocket, error) {
	if err := validate(config); err != nil {
		return Rocket{}, err
	}
	return Rocket{config: config, attitude: attitude, wind: wind}, nil
}

// Config returns the resolved configuration.
func (r Rocket) Config() RocketConfig { return r.config }

// StageCount returns the number of stages.
func (r Rocket) StageCount() int { return r.config.StageCount() }

// StageConfig returns the configuration for stage index i (0-based).
func (r Rocket) StageConfig(i int) StageConfig { return r.config.Stage(i) }

// ThrustVac returns vacuum thrust (N) for stage i at stage-local time tau.
func (r Rocket) ThrustVac(i int, tau float64) float64 {
	th := r.config.Stage(i).Thrust
	if th.ThrustTable != nil {
		return th.ThrustTable.At(tau) * th.ThrustCoefficient
	}
	return th.ConstThrustVac
}

// IspVac returns vacuum specific impulse (s) for stage i at stage-local
// time tau.
func (r Rocket) IspVac(i int, tau float64) float64 {
	th := r.config.Stage(i).Thrust
	if th.IspTable != nil {
		return th.IspTable.At(tau) * th.IspCoefficient
	}
	return th.ConstIspVac
}

// CA returns the axial force coefficient for stage i at Mach m.
func (r Rocket) CA(i int, m float64) float64 {
	aero := r.config.Stage(i).Aero
	if aero.CATable != nil {
		return aero.CATable.At(m) * aero.AxialMultiplier
	}
	return aero.ConstAxialCoefficient * aero.AxialMultiplier
}

// CN returns the normal force coefficient for stage i at Mach m and
// absolute angle-of-attack angleDeg. When a 2D surface is present it is
// queried directly (angle clamped non-negative); otherwise the 1D table
// (or constant) is treated as a per-radian derivative, matching the
// legacy cross-check convention.
func (r Rocket) CN(i int, m, angleDeg float64) float64 {
	aero := r.config.Stage(i).Aero
	if angleDeg < 0 {
		angleDeg = 0
	}
	if aero.CNSurface != nil {
		return aero.CNSurface.At(m, angleDeg) * aero.NormalMultiplier
	}
	angleRad := angleDeg * math.Pi / 180
	if aero.CNTable != nil {
		return aero.CNTable.At(m) * angleRad * aero.NormalMultiplier
	}
	return aero.ConstNormalCoefficient * angleRad * aero.NormalMultiplier
}

// Attitude returns (azimuth_deg, elevation_deg) on the mission clock t.
// Falls back to the primary stage's constant attitude when no attitude
// series was resolved.
func (r Rocket) Attitude(t float64) (azimuthDeg, elevationDeg float64) {
	if len(r.attitude) == 0 {
		primary := r.config.PrimaryStage().Attitude
		return primary.ConstAzimuthDeg, primary.ConstElevationDeg
	}
	times := make([]float64, len(r.attitude))
	az := make([]float64, len(r.attitude))
	el := make([]float64, len(r.attitude))
	for i, s := range r.attitude {
		times[i], az[i], el[i] = s.TimeSec, s.AzimuthDeg, s.ElevationDeg
	}
	azSeries := table.NewTimeSeries(times, az)
	elSeries := table.NewTimeSeries(times, el)
	return azSeries.At(t), elSeries.At(t)
}

// Wind returns (speed_mps, direction_deg) at the given altitude. Falls
// back to the configured constant wind when no profile was resolved.
func (r Rocket) Wind(altitude float64) (speedMps, directionDeg float64) {
	if len(r.wind) == 0 {
		return r.config.Wind.ConstWindSpeedMps, r.config.Wind.ConstWindDirDeg
	}
	alts := make([]float64, len(r.wind))
	speeds := make([]float64, len(r.wind))
	dirs := make([]float64, len(r.wind))
	for i, s := range r.wind {
		alts[i], speeds[i], dirs[i] = s.AltitudeM, s.SpeedMps, s.DirectionDeg
	}
	speedSeries := table.NewTimeSeries(alts, speeds)
	dirSeries := table.NewTimeSeries(alts, dirs)
	return speedSeries.At(altitude), dirSeries.At(altitude)
}

// ExitAreaM2 returns the nozzle exit area for stage i, used to compute
// the back-pressure correction on vacuum thrust.
func (r Rocket) ExitAreaM2(i int) float64 {
	th := r.config.Stage(i).Thrust
	return math.Pi * (th.ThroatDiameterM * th.ThroatDiameterM / 4) * th.NozzleExpansionRatio
}

// ReferenceAreaM2 returns the aerodynamic reference area for stage i.
func (r Rocket) ReferenceAreaM2(i int) float64 {
	d := r.config.Stage(i).Aero.BodyDiameterM
	return math.Pi * (d / 2) * (d / 2)
}

// StackMass returns the sum of initial masses of stage i and every later
// stage.
func (r Rocket) StackMass(i int) float64 {
	var m float64
	for k := i; k < r.StageCount(); k++ {
		m += r.config.Stage(k).MassInitialKg
	}
	return m
}
