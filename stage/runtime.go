// Package stage computes the per-stage absolute-time schedule (burn
// windows, forced cutoffs, separation) and the active-stage selection
// used by the simulator's state machine.
package stage

import "math"

// Runtime is one stage's materialized absolute-time schedule, computed
// once at simulator construction.
type Runtime struct {
	Index          int
	StartTimeSec   float64
	BurnStartSec   float64
	BurnEndSec     float64
	ForcedCutoffSec float64
	SeparationTimeSec float64
	StackMassKg    float64
}

// StageSource is the minimal per-stage information Build needs, kept
// independent of the vehicle package's config types so this package has
// no import-cycle risk.
type StageSource struct {
	MassInitialKg        float64
	BurnStartSec         float64 // relative to stage ignition
	BurnEndSec           float64
	ForcedCutoffSec      float64
	FollowingStageExists bool
	SeparationTimeSec    float64 // relative to stage ignition
}

// Build computes the absolute-time runtime schedule for every stage, in
// order, given the mission end time. stack_mass(i) is the sum of initial
// masses of stage i and every later stage; separation/burn/cutoff times
// are clipped so no stage's schedule outlives its own separation.
func Build(stages []StageSource, endTimeSec float64) []Runtime {
	n := len(stages)
	stackMass := make([]float64, n)
	var cumulative float64
	for i := n - 1; i >= 0; i-- {
		cumulative += stages[i].MassInitialKg
		stackMass[i] = cumulative
	}

	runtimes := make([]Runtime, n)
	startTime := 0.0
	for i, s := range stages {
		burnStart := startTime + s.BurnStartSec
		burnEnd := startTime + s.BurnEndSec
		forcedCutoff := startTime + s.ForcedCutoffSec

		separationTime := endTimeSec
		if s.FollowingStageExists {
			separationTime = startTime + s.SeparationTimeSec
		}
		if math.IsNaN(separationTime) || math.IsInf(separationTime, 0) {
			separationTime = endTimeSec
		}
		if separationTime > endTimeSec {
			separationTime = endTimeSec
		}

		runtimes[i] = Runtime{
			Index:             i,
			StartTimeSec:      startTime,
			BurnStartSec:      burnStart,
			BurnEndSec:        math.Min(burnEnd, separationTime),
			ForcedCutoffSec:   math.Min(forcedCutoff, separationTime),
			SeparationTimeSec: separationTime,
			StackMassKg:       stackMass[i],
		}
		startTime = separationTime
	}
	return runtimes
}

// ActiveIndex returns the 0-based index of the active stage at mission
// time t: the smallest i such that t < SeparationTimeSec(i), or the last
// stage if none qualifies.
func ActiveIndex(runtimes []Runtime, t float64) int {
	for i, rt := range runtimes {
		if t < rt.SeparationTimeSec {
			return i
		}
	}
	return len(runtimes) - 1
}

// LocalTime returns the stage-local time τ = t − start_time for the given
// runtime.
func LocalTime(rt Runtime, t float64) float64 {
	return t - rt.StartTimeSec
}
