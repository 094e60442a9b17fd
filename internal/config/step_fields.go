package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyName returns the key name held in the text payload, falling back to def
// when the payload is empty.
func (s Step) KeyName(def string) string {
	if s.Text == "" {
		return def
	}
	return s.Text
}

// HotkeyKeys splits the text payload on "+" into a chord of key names. At
// least one non-empty key name is required.
func (s Step) HotkeyKeys() ([]string, error) {
	if strings.TrimSpace(s.Text) == "" {
		return nil, fmt.Errorf("hotkey requires at least one key name")
	}

	parts := strings.Split(s.Text, "+")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		key := strings.TrimSpace(part)
		if key == "" {
			return nil, fmt.Errorf("hotkey combo %q contains an empty key name", s.Text)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// WaitDuration parses the text payload as decimal seconds. An empty payload
// means one second; anything unparsable or negative is an error rather than
// a silent fallback.
func (s Step) WaitDuration() (time.Duration, error) {
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return time.Second, nil
	}

	secs, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid wait duration %q: %w", s.Text, err)
	}
	if secs < 0 {
		return 0, fmt.Errorf("wait duration must not be negative, got %q", s.Text)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
