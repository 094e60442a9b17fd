// Package input models the host input surface: the capability that actually
// moves the pointer and emits key events. The engine only sees the Surface
// interface, so tests substitute a fake that records issued commands.
//
// Pointer position and button/key state are process-global on every desktop;
// callers must ensure a single goroutine issues commands at a time.
package input

import (
	"errors"
	"time"
)

// ErrFailsafe is returned when the safety interlock fires: the pointer was
// driven into the designated escape region while the interlock was armed.
// It is a non-retryable abort signal, distinct from ordinary action errors.
var ErrFailsafe = errors.New("failsafe interlock triggered")

// Button identifies a pointer button.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

// Surface is the host input capability consumed by the engine.
type Surface interface {
	// SetFailsafe arms or disarms the escape-corner interlock.
	SetFailsafe(enabled bool)

	// Move glides the pointer to (x, y) over the given duration so that
	// applications observing pointer motion register it. A zero duration
	// jumps directly.
	Move(x, y int, glide time.Duration) error

	// Click issues a click of the given button at the current position.
	Click(b Button, double bool) error

	// Toggle presses (down=true) or releases the given button. Releasing
	// an unheld button is not an error at the host level.
	Toggle(b Button, down bool) error

	// KeyTap presses and releases a single named key.
	KeyTap(key string) error

	// KeyToggle presses or releases a single named key.
	KeyToggle(key string, down bool) error

	// KeyCombo presses the named keys as a simultaneous chord.
	KeyCombo(keys []string) error

	// TypeKeys enters text one key tap at a time, pausing interval between
	// emissions. Intended for ASCII payloads; unmappable characters may be
	// dropped.
	TypeKeys(text string, interval time.Duration) error

	// TypeText enters text through the unicode-capable path at the same
	// per-character interval.
	TypeText(text string, interval time.Duration) error
}
