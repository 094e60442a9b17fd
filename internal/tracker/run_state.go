package tracker

import "time"

// RunState is the in-flight state of one run, rewritten as cycles progress
// so an external observer (or a human with cat) can follow along.
type RunState struct {
	RunID       string    `json:"run_id"`
	PID         int       `json:"pid"`
	StartedAt   time.Time `json:"started_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Cycle       int       `json:"cycle"`
	TotalCycles int       `json:"total_cycles"`
	Status      string    `json:"status"`
	LastError   string    `json:"last_error,omitempty"`
}

// RunStats is the persisted statistics report of a finished run. Durations
// are decimal seconds to match the profile document's unit.
type RunStats struct {
	RunID          string    `json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	TotalRuns      int       `json:"total_runs"`
	SuccessfulRuns int       `json:"successful_runs"`
	FailedRuns     int       `json:"failed_runs"`
	TotalSeconds   float64   `json:"total_seconds"`
	CycleSeconds   []float64 `json:"cycle_seconds"`
	AvgSeconds     float64   `json:"avg_seconds,omitempty"`
	MinSeconds     float64   `json:"min_seconds,omitempty"`
	MaxSeconds     float64   `json:"max_seconds,omitempty"`
}
