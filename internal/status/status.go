// Package status renders in-place cycle progress on the terminal.
package status

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ANSI escape codes
const (
	clearLine  = "\033[2K"
	moveUp     = "\033[A"
	moveToCol0 = "\r"
	reset      = "\033[0m"
	bold       = "\033[1m"
	dim        = "\033[2m"
	green      = "\033[32m"
	yellow     = "\033[33m"
	red        = "\033[31m"
)

// Progress bar characters
const (
	barFilled = "█"
	barEmpty  = "░"
	barWidth  = 20
)

// Writer handles in-place status updates to the terminal.
type Writer struct {
	w            io.Writer
	mu           sync.Mutex
	linesWritten int
}

// New creates a status writer that outputs to stdout.
func New() *Writer {
	return &Writer{w: os.Stdout}
}

// NewWithWriter creates a status writer with a custom output.
func NewWithWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Clear erases any previously written status lines.
func (s *Writer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < s.linesWritten; i++ {
		fmt.Fprint(s.w, moveUp+clearLine)
	}
	fmt.Fprint(s.w, moveToCol0)
	s.linesWritten = 0
}

// Update clears previous status and writes new status.
func (s *Writer) Update(lines ...string) {
	s.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		fmt.Fprintln(s.w, line)
	}
	s.linesWritten = len(lines)
}

func progressBar(completed, total int) string {
	if total == 0 {
		return strings.Repeat(barEmpty, barWidth)
	}

	filled := (completed * barWidth) / total
	if filled > barWidth {
		filled = barWidth
	}

	return green + strings.Repeat(barFilled, filled) + reset +
		dim + strings.Repeat(barEmpty, barWidth-filled) + reset
}

// Cycle displays the cycle about to run.
func (s *Writer) Cycle(cycle, total int) {
	bar := progressBar(cycle-1, total)
	line := fmt.Sprintf("%s %s%d/%d%s %scycle %d%s", bar, dim, cycle-1, total, reset, bold, cycle, reset)
	s.Update(line)
}

// Complete shows completion status.
func (s *Writer) Complete(total int) {
	bar := progressBar(total, total)
	lines := []string{
		fmt.Sprintf("%s %s%d/%d%s", bar, dim, total, total, reset),
		fmt.Sprintf("%s✓ Complete%s", green+bold, reset),
	}
	s.Update(lines...)
}

// Error shows a failed cycle. The error lines persist instead of being
// cleared by the next update.
func (s *Writer) Error(cycle, total int, err error) {
	s.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()

	bar := progressBar(cycle-1, total)
	fmt.Fprintln(s.w, fmt.Sprintf("%s %s%d/%d%s", bar, dim, cycle-1, total, reset))
	fmt.Fprintln(s.w, fmt.Sprintf("%s✗ cycle %d failed%s", red+bold, cycle, reset))
	fmt.Fprintln(s.w, fmt.Sprintf("%s%v%s", dim, err, reset))

	s.linesWritten = 0 // don't clear error messages
}

// Stopped shows a user-initiated stop.
func (s *Writer) Stopped(cycle, total int) {
	s.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()

	bar := progressBar(cycle-1, total)
	fmt.Fprintln(s.w, fmt.Sprintf("%s %s%d/%d%s", bar, dim, cycle-1, total, reset))
	fmt.Fprintln(s.w, fmt.Sprintf("%s⚠ stopped%s", yellow+bold, reset))

	s.linesWritten = 0
}
