// Package configio loads a rocket configuration (and its associated
// thrust, Isp, aero, attitude, and wind tables) from a JSON, YAML, or TOML
// file into a ready-to-run vehicle.Rocket. It is the one genuinely
// config-file-shaped edge of this module: vehicle, stage, integrate, and
// sim never import it, and it never leaks viper or file-path concerns
// back into the engine.
package configio

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/istellartech/OpenTsiolkovsky/vehicle"
)

type rawLaunch struct {
	PositionLLH [3]float64 `mapstructure:"position_llh"`
	VelocityNED [3]float64 `mapstructure:"velocity_ned"`
	LaunchTime  [6]int     `mapstructure:"launch_time"`
}

type rawIntegrator struct {
	Method     string  `mapstructure:"method"`
	RK4StepSec float64 `mapstructure:"rk4_step"`
}

type rawCalculateCondition struct {
	EndTimeSec             float64       `mapstructure:"end_time"`
	OutputStepSec          float64       `mapstructure:"time_step"`
	AirDensityVariationPct float64       `mapstructure:"air_density_variation"`
	Integrator             rawIntegrator `mapstructure:"integrator"`
}

type rawThrust struct {
	IspFileExists        bool    `mapstructure:"isp_file_exists"`
	IspFileName          string  `mapstructure:"isp_file_name"`
	IspCoefficient       float64 `mapstructure:"isp_coefficient"`
	ConstIspVac          float64 `mapstructure:"const_isp_vac"`
	ThrustFileExists     bool    `mapstructure:"thrust_file_exists"`
	ThrustFileName       string  `mapstructure:"thrust_file_name"`
	ThrustCoefficient    float64 `mapstructure:"thrust_coefficient"`
	ConstThrustVac       float64 `mapstructure:"const_thrust_vac"`
	BurnStartSec         float64 `mapstructure:"burn_start_time"`
	BurnEndSec           float64 `mapstructure:"burn_end_time"`
	ForcedCutoffSec      float64 `mapstructure:"forced_cutoff_time"`
	ThroatDiameterM      float64 `mapstructure:"throat_diameter"`
	NozzleExpansionRatio float64 `mapstructure:"nozzle_expansion_ratio"`
}

type rawAero struct {
	BodyDiameterM          float64 `mapstructure:"body_diameter"`
	CNFileExists           bool    `mapstructure:"cn_file_exists"`
	CNFileName             string  `mapstructure:"cn_file_name"`
	NormalMultiplier       float64 `mapstructure:"normal_multiplier"`
	ConstNormalCoefficient float64 `mapstructure:"const_normal_coefficient"`
	CAFileExists           bool    `mapstructure:"ca_file_exists"`
	CAFileName             string  `mapstructure:"ca_file_name"`
	AxialMultiplier        float64 `mapstructure:"axial_multiplier"`
	ConstAxialCoefficient  float64 `mapstructure:"const_axial_coefficient"`
	BallisticCoefficient   float64 `mapstructure:"ballistic_coefficient"`
}

type rawAttitude struct {
	ConstAzimuthDeg   float64 `mapstructure:"const_azimuth"`
	ConstElevationDeg float64 `mapstructure:"const_elevation"`
}

type rawStageTransition struct {
	FollowingStageExists bool    `mapstructure:"following_stage_exists"`
	SeparationTimeSec    float64 `mapstructure:"separation_time"`
}

type rawStage struct {
	PowerFlightMode int                `mapstructure:"power_flight_mode"`
	FreeFlightMode  int                `mapstructure:"free_flight_mode"`
	MassInitialKg   float64            `mapstructure:"mass_initial"`
	Thrust          rawThrust          `mapstructure:"thrust"`
	Aero            rawAero            `mapstructure:"aero"`
	Attitude        rawAttitude        `mapstructure:"attitude"`
	Stage           rawStageTransition `mapstructure:"stage"`
}

type rawWind struct {
	ConstWindSpeedMps float64 `mapstructure:"const_wind_speed"`
	ConstWindDirDeg   float64 `mapstructure:"const_wind_direction"`
	ProfileFileExists bool    `mapstructure:"file_exists"`
	ProfileFileName   string  `mapstructure:"file_name"`
}

type rawAttitudeProfile struct {
	FileExists bool   `mapstructure:"file_exists"`
	FileName   string `mapstructure:"file_name"`
}

type rawRocketConfig struct {
	Name                string                `mapstructure:"name"`
	CalculateCondition  rawCalculateCondition `mapstructure:"calculate_condition"`
	Launch              rawLaunch             `mapstructure:"launch"`
	Stages              []rawStage            `mapstructure:"stages"`
	Wind                rawWind               `mapstructure:"wind"`
	AttitudeProfile     rawAttitudeProfile    `mapstructure:"attitude_profile"`
}

// LoadRocketConfig reads path (any format viper can detect from its
// extension: JSON, YAML, TOML) and resolves it, along with any CSV tables
// it references, into a validated vehicle.Rocket. Table and profile file
// names are resolved relative to path's directory.
func LoadRocketConfig(path string) (vehicle.Rocket, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return vehicle.Rocket{}, errors.Wrapf(err, "configio: reading %s", path)
	}

	var raw rawRocketConfig
	if err := v.Unmarshal(&raw); err != nil {
		return vehicle.Rocket{}, errors.Wrap(err, "configio: decoding rocket configuration")
	}

	baseDir := filepath.Dir(path)

	cfg := vehicle.RocketConfig{
		Name: raw.Name,
		CalculateCondition: vehicle.CalculateCondition{
			EndTimeSec:             raw.CalculateCondition.EndTimeSec,
			OutputStepSec:          raw.CalculateCondition.OutputStepSec,
			AirDensityVariationPct: raw.CalculateCondition.AirDensityVariationPct,
			Integrator: vehicle.IntegratorSelector{
				Method:     parseIntegratorMethod(raw.CalculateCondition.Integrator.Method),
				RK4StepSec: raw.CalculateCondition.Integrator.RK4StepSec,
			},
		},
		Launch: vehicle.LaunchCondition{
			PositionLLHDegDegM: raw.Launch.PositionLLH,
			VelocityNEDMps:     raw.Launch.VelocityNED,
			LaunchTimeUTC:      raw.Launch.LaunchTime,
		},
		Wind: vehicle.WindConfig{
			ConstWindSpeedMps: raw.Wind.ConstWindSpeedMps,
			ConstWindDirDeg:   raw.Wind.ConstWindDirDeg,
		},
	}

	cfg.Stages = make([]vehicle.StageConfig, len(raw.Stages))
	for i, rs := range raw.Stages {
		sc, err := resolveStage(baseDir, i, rs)
		if err != nil {
			return vehicle.Rocket{}, err
		}
		cfg.Stages[i] = sc
	}

	var attitude []vehicle.AttitudeSample
	if raw.AttitudeProfile.FileExists {
		var err error
		attitude, err = loadAttitudeCSV(filepath.Join(baseDir, raw.AttitudeProfile.FileName))
		if err != nil {
			return vehicle.Rocket{}, errors.Wrap(err, "configio: attitude profile")
		}
	}

	var wind []vehicle.WindSample
	if raw.Wind.ProfileFileExists {
		var err error
		wind, err = loadWindCSV(filepath.Join(baseDir, raw.Wind.ProfileFileName))
		if err != nil {
			return vehicle.Rocket{}, errors.Wrap(err, "configio: wind profile")
		}
	}

	return vehicle.NewRocket(cfg, attitude, wind)
}

func resolveStage(baseDir string, i int, rs rawStage) (vehicle.StageConfig, error) {
	sc := vehicle.StageConfig{
		PowerFlightMode: vehicle.PowerFlightMode(rs.PowerFlightMode),
		FreeFlightMode:  vehicle.FreeFlightMode(rs.FreeFlightMode),
		MassInitialKg:   rs.MassInitialKg,
		Thrust: vehicle.ThrustConfig{
			ThrustCoefficient:    rs.Thrust.ThrustCoefficient,
			ConstThrustVac:       rs.Thrust.ConstThrustVac,
			IspCoefficient:       rs.Thrust.IspCoefficient,
			ConstIspVac:          rs.Thrust.ConstIspVac,
			BurnStartSec:         rs.Thrust.BurnStartSec,
			BurnEndSec:           rs.Thrust.BurnEndSec,
			ForcedCutoffSec:      rs.Thrust.ForcedCutoffSec,
			ThroatDiameterM:      rs.Thrust.ThroatDiameterM,
			NozzleExpansionRatio: rs.Thrust.NozzleExpansionRatio,
		},
		Aero: vehicle.AeroConfig{
			BodyDiameterM:          rs.Aero.BodyDiameterM,
			NormalMultiplier:       rs.Aero.NormalMultiplier,
			ConstNormalCoefficient: rs.Aero.ConstNormalCoefficient,
			AxialMultiplier:        rs.Aero.AxialMultiplier,
			ConstAxialCoefficient:  rs.Aero.ConstAxialCoefficient,
			BallisticCoefficient:   rs.Aero.BallisticCoefficient,
		},
		Attitude: vehicle.AttitudeConfig{
			ConstAzimuthDeg:   rs.Attitude.ConstAzimuthDeg,
			ConstElevationDeg: rs.Attitude.ConstElevationDeg,
		},
		Stage: vehicle.StageTransitionConfig{
			FollowingStageExists: rs.Stage.FollowingStageExists,
			SeparationTimeSec:    rs.Stage.SeparationTimeSec,
		},
	}

	if rs.Thrust.ThrustFileExists {
		ts, err := loadTimeSeriesCSV(filepath.Join(baseDir, rs.Thrust.ThrustFileName))
		if err != nil {
			return vehicle.StageConfig{}, errors.Wrapf(err, "configio: stage %d thrust table", i)
		}
		sc.Thrust.ThrustTable = &ts
	}
	if rs.Thrust.IspFileExists {
		ts, err := loadTimeSeriesCSV(filepath.Join(baseDir, rs.Thrust.IspFileName))
		if err != nil {
			return vehicle.StageConfig{}, errors.Wrapf(err, "configio: stage %d isp table", i)
		}
		sc.Thrust.IspTable = &ts
	}
	if rs.Aero.CAFileExists {
		ts, err := loadTimeSeriesCSV(filepath.Join(baseDir, rs.Aero.CAFileName))
		if err != nil {
			return vehicle.StageConfig{}, errors.Wrapf(err, "configio: stage %d CA table", i)
		}
		sc.Aero.CATable = &ts
	}
	if rs.Aero.CNFileExists {
		full := filepath.Join(baseDir, rs.Aero.CNFileName)
		surf, isSurface, err := loadCNTableCSV(full)
		if err != nil {
			return vehicle.StageConfig{}, errors.Wrapf(err, "configio: stage %d CN table", i)
		}
		if isSurface {
			sc.Aero.CNSurface = &surf.surface
		} else {
			sc.Aero.CNTable = &surf.series
		}
	}

	return sc, nil
}

func parseIntegratorMethod(s string) vehicle.IntegratorMethod {
	if strings.EqualFold(s, "rk45") {
		return vehicle.MethodRK45
	}
	return vehicle.MethodRK4
}
