package engine

import (
	"fmt"
	"time"

	"github.com/clickflow/clickflow/internal/logger"
)

// Stats accumulates the outcome of one run. It is owned by exactly one
// Session for the lifetime of one Run invocation. CycleTimes is append-only
// and holds one entry per completed cycle; failed cycles are not appended,
// so len(CycleTimes) always equals SuccessfulRuns.
type Stats struct {
	TotalRuns      int
	SuccessfulRuns int
	FailedRuns     int
	TotalTime      time.Duration
	CycleTimes     []time.Duration
}

// NewStats returns a zeroed accumulator for a run of totalRuns cycles.
func NewStats(totalRuns int) *Stats {
	return &Stats{
		TotalRuns:  totalRuns,
		CycleTimes: []time.Duration{},
	}
}

// Report is the derived summary of a completed run. Average, minimum and
// maximum cycle times are only present when at least one cycle succeeded.
type Report struct {
	TotalRuns      int
	SuccessfulRuns int
	FailedRuns     int
	TotalTime      time.Duration
	HasCycles      bool
	AvgCycle       time.Duration
	MinCycle       time.Duration
	MaxCycle       time.Duration
}

// Report derives the summary from the accumulated statistics.
func (s *Stats) Report() Report {
	r := Report{
		TotalRuns:      s.TotalRuns,
		SuccessfulRuns: s.SuccessfulRuns,
		FailedRuns:     s.FailedRuns,
		TotalTime:      s.TotalTime,
	}

	if len(s.CycleTimes) == 0 {
		return r
	}

	r.HasCycles = true
	var total time.Duration
	r.MinCycle = s.CycleTimes[0]
	r.MaxCycle = s.CycleTimes[0]
	for _, ct := range s.CycleTimes {
		total += ct
		if ct < r.MinCycle {
			r.MinCycle = ct
		}
		if ct > r.MaxCycle {
			r.MaxCycle = ct
		}
	}
	r.AvgCycle = total / time.Duration(len(s.CycleTimes))
	return r
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Log emits the statistics lines through the logger, one fact per line so
// callback sinks can render them individually.
func (r Report) Log(log logger.Logger) {
	log.Info("Automation statistics")
	log.Info("Total runs", logger.F("count", r.TotalRuns))
	log.Info("Successful", logger.F("count", r.SuccessfulRuns))
	log.Info("Failed", logger.F("count", r.FailedRuns))
	log.Info("Total time", logger.F("elapsed", seconds(r.TotalTime)))

	if !r.HasCycles {
		return
	}
	log.Info("Average cycle", logger.F("elapsed", seconds(r.AvgCycle)))
	log.Info("Fastest cycle", logger.F("elapsed", seconds(r.MinCycle)))
	log.Info("Slowest cycle", logger.F("elapsed", seconds(r.MaxCycle)))
}
