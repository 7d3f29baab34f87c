// Package runner drives the engine without a window.
package runner

import (
	"context"
	"log/slog"

	"sepsim/internal/exclusion"
	"sepsim/internal/logging"
)

// Stepper is the part of *exclusion.Engine the runner needs.
type Stepper interface {
	Step() exclusion.StepStats
	Collisions() int
}

// Summary totals a run.
type Summary struct {
	Steps int
	exclusion.StepStats
	// Collisions counts particles sharing a cell with a lower-indexed particle
	// after the last step; 100 particles stacked on one cell give 99.
	Collisions int
}

// Run performs steps sequential steps, logging progress every logEvery steps
// (never if logEvery <= 0). Cancellation is checked between steps; a
// cancelled run returns the partial summary along with ctx.Err().
func Run(ctx context.Context, s Stepper, steps, logEvery int, logger *slog.Logger) (Summary, error) {
	var sum Summary
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			sum.Collisions = s.Collisions()
			return sum, err
		}

		stats := s.Step()
		sum.Steps++
		sum.Eligible += stats.Eligible
		sum.Accepted += stats.Accepted
		sum.Rejected += stats.Rejected

		logger.Log(ctx, logging.LevelTrace, "step",
			"step", sum.Steps,
			"eligible", stats.Eligible,
			"accepted", stats.Accepted,
			"rejected", stats.Rejected)

		if logEvery > 0 && sum.Steps%logEvery == 0 {
			logger.Debug("progress",
				"step", sum.Steps,
				"accepted", sum.Accepted,
				"rejected", sum.Rejected,
				"collisions", s.Collisions())
		}
	}

	sum.Collisions = s.Collisions()
	return sum, nil
}

// RejectionRate is the share of move attempts that were rejected.
func (s Summary) RejectionRate() float64 {
	if s.Eligible == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(s.Eligible)
}
