package stage

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestBuildSingleStageSpansFullMission(t *testing.T) {
	stages := []StageSource{
		{MassInitialKg: 5000, BurnStartSec: 0, BurnEndSec: 60, ForcedCutoffSec: 60},
	}
	rts := Build(stages, 120)
	if len(rts) != 1 {
		t.Fatalf("got %d runtimes want 1", len(rts))
	}
	if rts[0].StartTimeSec != 0 {
		t.Fatalf("start_time got %f want 0", rts[0].StartTimeSec)
	}
	if rts[0].SeparationTimeSec != 120 {
		t.Fatalf("separation_time got %f want 120 (end_time)", rts[0].SeparationTimeSec)
	}
	if rts[0].StackMassKg != 5000 {
		t.Fatalf("stack_mass got %f want 5000", rts[0].StackMassKg)
	}
}

func TestBuildTwoStageSeparationChaining(t *testing.T) {
	stages := []StageSource{
		{MassInitialKg: 1000, BurnStartSec: 0, BurnEndSec: 6, ForcedCutoffSec: 6, FollowingStageExists: true, SeparationTimeSec: 6.5},
		{MassInitialKg: 200, BurnStartSec: 0, BurnEndSec: 30, ForcedCutoffSec: 30},
	}
	rts := Build(stages, 200)
	if len(rts) != 2 {
		t.Fatalf("got %d runtimes want 2", len(rts))
	}
	if rts[0].SeparationTimeSec != 6.5 {
		t.Fatalf("stage0 separation got %f want 6.5", rts[0].SeparationTimeSec)
	}
	if rts[1].StartTimeSec != 6.5 {
		t.Fatalf("stage1 start_time got %f want 6.5 (prior separation)", rts[1].StartTimeSec)
	}
	if rts[0].StackMassKg != 1200 {
		t.Fatalf("stage0 stack_mass got %f want 1200", rts[0].StackMassKg)
	}
	if rts[1].StackMassKg != 200 {
		t.Fatalf("stage1 stack_mass got %f want 200", rts[1].StackMassKg)
	}
	for i := 1; i < len(rts); i++ {
		if rts[i].SeparationTimeSec < rts[i-1].SeparationTimeSec {
			t.Fatal("separation_time must be non-decreasing with stage index")
		}
	}
}

func TestBuildClipsBurnEndAndForcedCutoffToSeparation(t *testing.T) {
	stages := []StageSource{
		{MassInitialKg: 1000, BurnStartSec: 0, BurnEndSec: 10, ForcedCutoffSec: 10, FollowingStageExists: true, SeparationTimeSec: 4},
		{MassInitialKg: 200, BurnStartSec: 0, BurnEndSec: 30, ForcedCutoffSec: 30},
	}
	rts := Build(stages, 200)
	if !floats.EqualWithinAbs(rts[0].BurnEndSec, 4, 1e-12) {
		t.Fatalf("burn_end got %f want clipped to separation 4", rts[0].BurnEndSec)
	}
	if !floats.EqualWithinAbs(rts[0].ForcedCutoffSec, 4, 1e-12) {
		t.Fatalf("forced_cutoff got %f want clipped to separation 4", rts[0].ForcedCutoffSec)
	}
}

func TestActiveIndexSelectsSmallestUnseparatedStage(t *testing.T) {
	stages := []StageSource{
		{MassInitialKg: 1000, BurnEndSec: 6, ForcedCutoffSec: 6, FollowingStageExists: true, SeparationTimeSec: 6.5},
		{MassInitialKg: 200, BurnEndSec: 30, ForcedCutoffSec: 30},
	}
	rts := Build(stages, 200)
	if got := ActiveIndex(rts, 0); got != 0 {
		t.Fatalf("at t=0 got stage %d want 0", got)
	}
	if got := ActiveIndex(rts, 7); got != 1 {
		t.Fatalf("at t=7 got stage %d want 1", got)
	}
	if got := ActiveIndex(rts, 199); got != 1 {
		t.Fatalf("at t=199 got stage %d want 1 (last stage, separating at end_time 200)", got)
	}
}

func TestLocalTimeIsRelativeToStageStart(t *testing.T) {
	rt := Runtime{StartTimeSec: 6.5}
	if got := LocalTime(rt, 10); got != 3.5 {
		t.Fatalf("got %f want 3.5", got)
	}
}
