package vehicle

import (
	"testing"

	"github.com/istellartech/OpenTsiolkovsky/table"
	"gonum.org/v1/gonum/floats"
)

func singleStageConfig() RocketConfig {
	return RocketConfig{
		Name: "test-vehicle",
		CalculateCondition: CalculateCondition{
			EndTimeSec:    120,
			OutputStepSec: 0.1,
		},
		Launch: LaunchCondition{
			PositionLLHDegDegM: [3]float64{0, 0, 0},
		},
		Stages: []StageConfig{
			{
				MassInitialKg: 5000,
				Thrust: ThrustConfig{
					ConstThrustVac:  1.0e6,
					ConstIspVac:     300,
					BurnStartSec:    0,
					BurnEndSec:      60,
					ForcedCutoffSec: 60,
				},
				Aero: AeroConfig{
					BodyDiameterM: 1,
				},
				Attitude: AttitudeConfig{
					ConstAzimuthDeg:   0,
					ConstElevationDeg: 90,
				},
				Stage: StageTransitionConfig{
					FollowingStageExists: false,
				},
			},
		},
		Wind: WindConfig{},
	}
}

func twoStageConfig() RocketConfig {
	cfg := singleStageConfig()
	cfg.Stages[0].Stage = StageTransitionConfig{FollowingStageExists: true, SeparationTimeSec: 6.5}
	cfg.Stages[0].Thrust.BurnEndSec = 6
	cfg.Stages[0].Thrust.ForcedCutoffSec = 6
	cfg.Stages[0].MassInitialKg = 1000
	cfg.Stages = append(cfg.Stages, StageConfig{
		MassInitialKg: 200,
		Thrust: ThrustConfig{
			ConstThrustVac:  60000,
			ConstIspVac:     270,
			BurnStartSec:    0,
			BurnEndSec:      30,
			ForcedCutoffSec: 30,
		},
		Aero: AeroConfig{BodyDiameterM: 1},
		Stage: StageTransitionConfig{FollowingStageExists: false},
	})
	return cfg
}

func TestNewRocketRejectsEmptyStages(t *testing.T) {
	cfg := singleStageConfig()
	cfg.Stages = nil
	if _, err := NewRocket(cfg, nil, nil); err == nil {
		t.Fatal("expected error for empty stages")
	}
}

func TestNewRocketRejectsBadBurnWindow(t *testing.T) {
	cfg := singleStageConfig()
	cfg.Stages[0].Thrust.BurnEndSec = cfg.Stages[0].Thrust.BurnStartSec
	if _, err := NewRocket(cfg, nil, nil); err == nil {
		t.Fatal("expected error for burn_end <= burn_start")
	}
}

func TestThrustVacConstant(t *testing.T) {
	r, err := NewRocket(singleStageConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := r.ThrustVac(0, 10); v != 1.0e6 {
		t.Fatalf("got %f want 1e6", v)
	}
}

func TestThrustVacTable(t *testing.T) {
	cfg := singleStageConfig()
	ts := table.NewTimeSeries([]float64{0, 10}, []float64{100, 200})
	cfg.Stages[0].Thrust.ThrustTable = &ts
	cfg.Stages[0].Thrust.ThrustCoefficient = 2.0
	r, err := NewRocket(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := r.ThrustVac(0, 5); !floats.EqualWithinAbs(v, 300, 1e-9) {
		t.Fatalf("got %f want 300", v)
	}
}

func TestCNFallsBackToPerRadianDerivative(t *testing.T) {
	cfg := singleStageConfig()
	cfg.Stages[0].Aero.ConstNormalCoefficient = 1.0
	cfg.Stages[0].Aero.NormalMultiplier = 1.0
	r, err := NewRocket(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := r.CN(0, 1.0, 90)
	want := 1.0 * (90.0 * 3.141592653589793 / 180.0)
	if !floats.EqualWithinAbs(got, want, 1e-9) {
		t.Fatalf("got %f want %f", got, want)
	}
}

func TestCNSurfaceTakesPrecedenceOverTable(t *testing.T) {
	cfg := singleStageConfig()
	surf := table.NewSurface2D([]float64{0, 2}, []float64{0, 10}, [][]float64{{1, 2}, {3, 4}})
	cfg.Stages[0].Aero.CNSurface = &surf
	cfg.Stages[0].Aero.NormalMultiplier = 1.0
	r, err := NewRocket(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := r.CN(0, 0, 0); v != 1 {
		t.Fatalf("got %f want 1 (surface corner)", v)
	}
}

func TestAttitudeFallsBackToPrimaryStageConstants(t *testing.T) {
	r, err := NewRocket(singleStageConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	az, el := r.Attitude(50)
	if az != 0 || el != 90 {
		t.Fatalf("got az=%f el=%f want az=0 el=90", az, el)
	}
}

func TestWindFallsBackToConstant(t *testing.T) {
	cfg := singleStageConfig()
	cfg.Wind = WindConfig{ConstWindSpeedMps: 5, ConstWindDirDeg: 270}
	r, err := NewRocket(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	speed, dir := r.Wind(1000)
	if speed != 5 || dir != 270 {
		t.Fatalf("got speed=%f dir=%f want speed=5 dir=270", speed, dir)
	}
}

func TestStackMassSumsFromIndexOnward(t *testing.T) {
	r, err := NewRocket(twoStageConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := r.StackMass(0); v != 1200 {
		t.Fatalf("got %f want 1200", v)
	}
	if v := r.StackMass(1); v != 200 {
		t.Fatalf("got %f want 200", v)
	}
}
