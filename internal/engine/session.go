package engine

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/clickflow/clickflow/internal/config"
	"github.com/clickflow/clickflow/internal/input"
	"github.com/clickflow/clickflow/internal/logger"
	"github.com/clickflow/clickflow/internal/status"
	"github.com/clickflow/clickflow/internal/tracker"
)

// Status represents the session state machine.
type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusStopped   Status = "STOPPED"
	StatusFailed    Status = "FAILED"
)

// ErrAlreadyRunning reports a Run invoked while another run is in flight.
var ErrAlreadyRunning = errors.New("a run is already in progress")

// cyclePause is the pause between consecutive cycles.
const cyclePause = 500 * time.Millisecond

// Session drives N cycles over a profile with warm-up delay, inter-cycle
// pauses, the halt-on-failure policy, and statistics accumulation. All input
// commands are issued from the goroutine that called Run; Stop may be called
// from any other goroutine and is polled between cycles and between steps.
type Session struct {
	surface input.Surface
	log     logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	state  Status
	stats  *Stats

	display      *status.Writer
	trk          *tracker.Writer
	runID        string
	runStartedAt time.Time

	pause time.Duration
}

// NewSession creates an idle session bound to a surface and logger.
func NewSession(surface input.Surface, log logger.Logger) *Session {
	return &Session{
		surface: surface,
		log:     log,
		state:   StatusIdle,
		pause:   cyclePause,
	}
}

// SetStatusWriter enables the in-place terminal progress display.
func (s *Session) SetStatusWriter(w *status.Writer) {
	s.display = w
}

// EnableRunTracking enables writing run_state.json and run_stats.json to the
// given directory so external observers can follow the run.
func (s *Session) EnableRunTracking(runID, dir string) {
	s.trk = tracker.NewWriter(dir)
	s.runID = runID
}

// State returns the current session state.
func (s *Session) State() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a run is in flight.
func (s *Session) Running() bool {
	return s.State() == StatusRunning
}

// Stats returns the statistics of the current or most recent run.
func (s *Session) Stats() *Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Stop requests a cooperative stop. The request is honored before the next
// cycle and before the next step; a step already in flight runs to
// completion.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Run executes loops cycles over the profile. The profile's settings and
// step list are snapshotted at entry; edits made during the run do not
// affect it. Any cycle failure terminates the run whether or not the
// failsafe is enabled; a user stop terminates it without counting as a
// failure. The returned Stats is complete once Run returns.
func (s *Session) Run(ctx context.Context, profile *config.Profile, loops int) (*Stats, error) {
	s.mu.Lock()
	if s.state == StatusRunning {
		s.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = StatusRunning
	stats := NewStats(loops)
	s.stats = stats
	s.mu.Unlock()
	defer cancel()

	settings := profile.Settings
	steps := append([]config.Step(nil), profile.Steps...)
	s.surface.SetFailsafe(settings.FailsafeEnabled)

	executor := NewExecutor(s.surface, settings, s.log)
	runner := NewCycleRunner(executor, s.log)

	failsafe := "disabled"
	if settings.FailsafeEnabled {
		failsafe = "enabled"
	}
	s.log.Info("Starting automation", logger.F("cycles", loops), logger.F("failsafe", failsafe))

	if d := settings.GetInitialDelay(); d > 0 {
		s.log.Info("Waiting before starting", logger.F("delay", seconds(d)))
		sleepCtx(runCtx, d)
	}

	s.runStartedAt = time.Now()
	final := StatusCompleted

	for i := 0; i < loops; i++ {
		cycle := i + 1

		if runCtx.Err() != nil {
			s.log.Warn("Automation stopped by user", logger.F("before_cycle", cycle))
			final = StatusStopped
			break
		}

		if s.display != nil {
			s.display.Cycle(cycle, loops)
		}
		s.writeRunState("running", cycle, loops, nil)

		elapsed, err := runner.Run(runCtx, steps, cycle)
		if err != nil {
			if errors.Is(err, ErrStopped) {
				final = StatusStopped
				if s.display != nil {
					s.display.Stopped(cycle, loops)
				}
				s.writeRunState("stopped", cycle, loops, nil)
				break
			}

			stats.FailedRuns++
			final = StatusFailed
			if errors.Is(err, input.ErrFailsafe) {
				s.log.Warn("Automation halted by failsafe interlock", logger.F("cycle", cycle))
			} else {
				s.log.Warn("Automation halted after cycle failure", logger.F("cycle", cycle))
			}
			if s.display != nil {
				s.display.Error(cycle, loops, err)
			}
			s.writeRunState("failed", cycle, loops, err)
			break
		}

		stats.SuccessfulRuns++
		stats.CycleTimes = append(stats.CycleTimes, elapsed)

		if i < loops-1 {
			sleepCtx(runCtx, s.pause)
		}
	}

	stats.TotalTime = time.Since(s.runStartedAt)

	report := stats.Report()
	report.Log(s.log)

	if final == StatusCompleted {
		if s.display != nil {
			s.display.Complete(loops)
		}
		s.writeRunState("complete", loops, loops, nil)
	}
	s.writeStats(report, stats)

	s.mu.Lock()
	s.state = final
	s.cancel = nil
	s.mu.Unlock()

	return stats, nil
}

func (s *Session) writeRunState(state string, cycle, total int, lastErr error) {
	if s.trk == nil {
		return
	}

	rs := tracker.RunState{
		RunID:       s.runID,
		PID:         os.Getpid(),
		StartedAt:   s.runStartedAt,
		UpdatedAt:   time.Now(),
		Cycle:       cycle,
		TotalCycles: total,
		Status:      state,
	}
	if lastErr != nil {
		rs.LastError = lastErr.Error()
	}

	_ = s.trk.WriteRunState(rs)
}

func (s *Session) writeStats(r Report, stats *Stats) {
	if s.trk == nil {
		return
	}

	rs := tracker.RunStats{
		RunID:          s.runID,
		StartedAt:      s.runStartedAt,
		CompletedAt:    time.Now(),
		TotalRuns:      r.TotalRuns,
		SuccessfulRuns: r.SuccessfulRuns,
		FailedRuns:     r.FailedRuns,
		TotalSeconds:   r.TotalTime.Seconds(),
		CycleSeconds:   make([]float64, 0, len(stats.CycleTimes)),
	}
	for _, ct := range stats.CycleTimes {
		rs.CycleSeconds = append(rs.CycleSeconds, ct.Seconds())
	}
	if r.HasCycles {
		rs.AvgSeconds = r.AvgCycle.Seconds()
		rs.MinSeconds = r.MinCycle.Seconds()
		rs.MaxSeconds = r.MaxCycle.Seconds()
	}

	_ = s.trk.WriteStats(rs)
}

// sleepCtx sleeps for d or until the context is cancelled. Non-positive
// durations return immediately.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
