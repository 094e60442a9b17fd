package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clickflow/clickflow/internal/config"
	"github.com/clickflow/clickflow/internal/input"
	"github.com/clickflow/clickflow/internal/logger"
)

// ErrStopped reports a cooperative stop. It is not a failure and is never
// counted against the run.
var ErrStopped = errors.New("automation stopped by user")

// CycleRunner executes the ordered step sequence once. Steps run strictly in
// list order, synchronously, one at a time; the cancellation token is polled
// before each step, never mid-step.
type CycleRunner struct {
	executor *Executor
	log      logger.Logger
}

// NewCycleRunner creates a runner that delegates steps to executor.
func NewCycleRunner(executor *Executor, log logger.Logger) *CycleRunner {
	return &CycleRunner{executor: executor, log: log}
}

// Run executes one cycle. The elapsed time is only meaningful when the error
// is nil; a stop, interlock, or step failure aborts the remaining steps and
// reports no partial timing.
func (r *CycleRunner) Run(ctx context.Context, steps []config.Step, cycle int) (time.Duration, error) {
	r.log.Info("Starting cycle", logger.F("cycle", cycle))
	start := time.Now()

	for _, step := range steps {
		select {
		case <-ctx.Done():
			r.log.Warn("Automation stopped by user", logger.F("cycle", cycle))
			return 0, ErrStopped
		default:
		}

		r.log.Info(step.Description, logger.F("step", step.Name))

		if err := r.executor.Execute(step); err != nil {
			if errors.Is(err, input.ErrFailsafe) {
				r.log.Warn("Failsafe triggered, pointer moved to escape corner", logger.F("cycle", cycle))
				return 0, err
			}
			return 0, fmt.Errorf("cycle %d: failed to execute %s: %w", cycle, step.Name, err)
		}
	}

	elapsed := time.Since(start)
	r.log.Info("Cycle completed", logger.F("cycle", cycle), logger.F("elapsed", seconds(elapsed)))
	return elapsed, nil
}
