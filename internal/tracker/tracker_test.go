package tracker

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func TestWriteRunState(t *testing.T) {
	w := NewWriter(t.TempDir())

	state := RunState{
		RunID:       "abc123",
		PID:         os.Getpid(),
		StartedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Cycle:       2,
		TotalCycles: 5,
		Status:      "running",
	}
	if err := w.WriteRunState(state); err != nil {
		t.Fatalf("WriteRunState failed: %v", err)
	}

	b, err := os.ReadFile(w.RunStatePath)
	if err != nil {
		t.Fatalf("failed to read run state: %v", err)
	}
	var got RunState
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("failed to parse run state: %v", err)
	}
	if got.RunID != "abc123" || got.Cycle != 2 || got.TotalCycles != 5 {
		t.Errorf("unexpected run state: %+v", got)
	}
	if got.LastError != "" {
		t.Errorf("expected empty last_error, got %q", got.LastError)
	}
}

func TestWriteAndLoadStats(t *testing.T) {
	w := NewWriter(t.TempDir())

	stats := RunStats{
		RunID:          "run1",
		StartedAt:      time.Now(),
		CompletedAt:    time.Now(),
		TotalRuns:      3,
		SuccessfulRuns: 3,
		TotalSeconds:   2.5,
		CycleSeconds:   []float64{0.8, 0.9, 0.8},
		AvgSeconds:     0.833,
		MinSeconds:     0.8,
		MaxSeconds:     0.9,
	}
	if err := w.WriteStats(stats); err != nil {
		t.Fatalf("WriteStats failed: %v", err)
	}

	got, err := w.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stats, got nil")
	}
	if got.SuccessfulRuns != 3 || len(got.CycleSeconds) != 3 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestLoadStatsMissing(t *testing.T) {
	w := NewWriter(t.TempDir())

	got, err := w.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing stats, got %+v", got)
	}
}

func TestAcquireLock(t *testing.T) {
	w := NewWriter(t.TempDir())

	release, err := w.AcquireLock("run1")
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	if _, err := w.AcquireLock("run2"); !errors.Is(err, ErrLockHeld) {
		t.Errorf("expected ErrLockHeld, got %v", err)
	}

	if err := release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	release2, err := w.AcquireLock("run3")
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	_ = release2()
}

func TestAcquireLockStale(t *testing.T) {
	w := NewWriter(t.TempDir())

	// A lock held by a pid that cannot exist is stale and reclaimed.
	stale := Lock{PID: 1 << 30, StartedAt: time.Now(), RunID: "ghost"}
	data, _ := json.MarshalIndent(stale, "", "    ")
	if err := os.WriteFile(w.LockPath, data, 0644); err != nil {
		t.Fatalf("failed to plant stale lock: %v", err)
	}

	release, err := w.AcquireLock("run1")
	if err != nil {
		t.Fatalf("expected stale lock recovery, got %v", err)
	}
	_ = release()
}
