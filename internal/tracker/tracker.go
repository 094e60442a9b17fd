// Package tracker persists run observability files: the in-flight run state,
// the final statistics, and the lock that keeps two runs from fighting over
// the shared input surface.
package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer writes tracker files under one state directory.
type Writer struct {
	Dir          string
	RunStatePath string
	StatsPath    string
	LockPath     string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		Dir:          dir,
		RunStatePath: filepath.Join(dir, "run_state.json"),
		StatsPath:    filepath.Join(dir, "run_stats.json"),
		LockPath:     filepath.Join(dir, ".clickflow_lock"),
	}
}

// WriteRunState persists the in-flight run state.
func (w *Writer) WriteRunState(s RunState) error {
	return writeJSONAtomic(w.RunStatePath, s)
}

// WriteStats persists the final run statistics.
func (w *Writer) WriteStats(s RunStats) error {
	return writeJSONAtomic(w.StatsPath, s)
}

// LoadStats reads back persisted statistics, returning nil when no run has
// been recorded yet.
func (w *Writer) LoadStats() (*RunStats, error) {
	b, err := os.ReadFile(w.StatsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s RunStats
	if err := json.Unmarshal(b, &s); err != nil {
		// Corrupted stats file: treat as no stats.
		return nil, nil
	}
	return &s, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
