package input

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-vgo/robotgo"
)

// failsafeMargin is the pixel distance from a screen corner inside which the
// interlock fires.
const failsafeMargin = 2

// glideTick is the pointer update interval during a glide.
const glideTick = 10 * time.Millisecond

// Robot drives the real desktop through robotgo.
type Robot struct {
	failsafe atomic.Bool
}

// NewRobot creates the robotgo-backed surface. The interlock starts armed;
// the session rearms it from the settings snapshot at run start.
func NewRobot() *Robot {
	r := &Robot{}
	r.failsafe.Store(true)
	return r
}

// SetFailsafe arms or disarms the escape-corner interlock.
func (r *Robot) SetFailsafe(enabled bool) {
	r.failsafe.Store(enabled)
}

// guard returns ErrFailsafe when the interlock is armed and the pointer sits
// in an escape corner. Checked before every issued command, so dragging the
// pointer to a corner aborts the run at the next action boundary.
func (r *Robot) guard() error {
	if !r.failsafe.Load() {
		return nil
	}

	x, y := robotgo.Location()
	w, h := robotgo.GetScreenSize()
	nearLeft := x <= failsafeMargin
	nearRight := x >= w-1-failsafeMargin
	nearTop := y <= failsafeMargin
	nearBottom := y >= h-1-failsafeMargin
	if (nearLeft || nearRight) && (nearTop || nearBottom) {
		return fmt.Errorf("pointer at screen corner (%d, %d): %w", x, y, ErrFailsafe)
	}
	return nil
}

// Move glides the pointer to (x, y) in small ticks across the duration.
func (r *Robot) Move(x, y int, glide time.Duration) error {
	if err := r.guard(); err != nil {
		return err
	}

	if glide <= 0 {
		robotgo.Move(x, y)
		return nil
	}

	fromX, fromY := robotgo.Location()
	ticks := int(glide / glideTick)
	if ticks < 1 {
		ticks = 1
	}
	for i := 1; i <= ticks; i++ {
		if err := r.guard(); err != nil {
			return err
		}
		frac := float64(i) / float64(ticks)
		robotgo.Move(
			fromX+int(frac*float64(x-fromX)),
			fromY+int(frac*float64(y-fromY)),
		)
		time.Sleep(glideTick)
	}
	robotgo.Move(x, y)
	return nil
}

// Click issues a click at the current pointer position.
func (r *Robot) Click(b Button, double bool) error {
	if err := r.guard(); err != nil {
		return err
	}
	robotgo.Click(string(b), double)
	return nil
}

// Toggle presses or releases a pointer button.
func (r *Robot) Toggle(b Button, down bool) error {
	if err := r.guard(); err != nil {
		return err
	}
	direction := "up"
	if down {
		direction = "down"
	}
	if err := robotgo.Toggle(string(b), direction); err != nil {
		return fmt.Errorf("toggle %s %s: %w", b, direction, err)
	}
	return nil
}

// KeyTap presses and releases a named key.
func (r *Robot) KeyTap(key string) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := robotgo.KeyTap(key); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}

// KeyToggle presses or releases a named key.
func (r *Robot) KeyToggle(key string, down bool) error {
	if err := r.guard(); err != nil {
		return err
	}
	direction := "up"
	if down {
		direction = "down"
	}
	if err := robotgo.KeyToggle(key, direction); err != nil {
		return fmt.Errorf("key toggle %q %s: %w", key, direction, err)
	}
	return nil
}

// KeyCombo presses the named keys as a chord. robotgo takes the main key
// first and modifiers after, so the last name in the combo is the key.
func (r *Robot) KeyCombo(keys []string) error {
	if err := r.guard(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("empty key combo")
	}

	key := keys[len(keys)-1]
	mods := make([]interface{}, len(keys)-1)
	for i, m := range keys[:len(keys)-1] {
		mods[i] = m
	}
	if err := robotgo.KeyTap(key, mods...); err != nil {
		return fmt.Errorf("key combo %v: %w", keys, err)
	}
	return nil
}

// TypeKeys emits text one key tap at a time. Characters without an ASCII
// key mapping are dropped.
func (r *Robot) TypeKeys(text string, interval time.Duration) error {
	for _, ch := range text {
		if err := r.guard(); err != nil {
			return err
		}
		key, shift, ok := asciiKey(ch)
		if !ok {
			continue
		}
		var err error
		if shift {
			err = robotgo.KeyTap(key, "shift")
		} else {
			err = robotgo.KeyTap(key)
		}
		if err != nil {
			return fmt.Errorf("typing %q: %w", ch, err)
		}
		time.Sleep(interval)
	}
	return nil
}

// TypeText emits text through robotgo's unicode string typing, one character
// per interval so target applications keep up.
func (r *Robot) TypeText(text string, interval time.Duration) error {
	for _, ch := range text {
		if err := r.guard(); err != nil {
			return err
		}
		robotgo.TypeStr(string(ch))
		time.Sleep(interval)
	}
	return nil
}
