package vehicle

import (
	"fmt"
	"math"
)

// validate checks the configuration-error taxonomy: fatal conditions that
// must be surfaced before the first integration step.
func validate(c RocketConfig) error {
	if c.CalculateCondition.EndTimeSec <= 0 {
		return fmt.Errorf("vehicle: end_time must be positive, got %f", c.CalculateCondition.EndTimeSec)
	}
	if c.CalculateCondition.OutputStepSec <= 0 {
		return fmt.Errorf("vehicle: output_step must be positive, got %f", c.CalculateCondition.OutputStepSec)
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("vehicle: RocketConfig must contain at least one stage")
	}
	for i, s := range c.Stages {
		if !finite(s.MassInitialKg) || s.MassInitialKg <= 0 {
			return fmt.Errorf("vehicle: stage %d mass_initial must be positive and finite, got %f", i, s.MassInitialKg)
		}
		if s.Thrust.BurnEndSec <= s.Thrust.BurnStartSec {
			return fmt.Errorf("vehicle: stage %d burn_end (%f) must exceed burn_start (%f)", i, s.Thrust.BurnEndSec, s.Thrust.BurnStartSec)
		}
		hasNext := i+1 < len(c.Stages)
		if s.Stage.FollowingStageExists != hasNext && hasNext {
			// A stage that is not last must declare a following stage.
			return fmt.Errorf("vehicle: stage %d has a following stage but does not declare one", i)
		}
		if s.Stage.FollowingStageExists {
			if s.Stage.SeparationTimeSec <= s.Thrust.BurnEndSec {
				return fmt.Errorf("vehicle: stage %d separation_time (%f) must exceed burn_end (%f)", i, s.Stage.SeparationTimeSec, s.Thrust.BurnEndSec)
			}
		}
		if hasNext {
			next := c.Stages[i+1]
			if next.Thrust.BurnStartSec < 0 {
				return fmt.Errorf("vehicle: stage %d burn_start must be non-negative", i+1)
			}
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
