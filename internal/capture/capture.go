// Package capture listens to global input events for coordinate capture and
// the stop hotkey. Only one listener may be active at a time; the underlying
// event hook is a process-wide singleton.
package capture

import (
	"context"
	"errors"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// ErrTimeout reports that no click arrived within the capture window.
var ErrTimeout = errors.New("timed out waiting for a click")

type point struct {
	X int
	Y int
}

// WaitForClick blocks until the user presses a mouse button anywhere on
// screen and returns the pointer position at that moment. A non-positive
// timeout waits indefinitely.
func WaitForClick(timeout time.Duration) (int, int, error) {
	clickChan := make(chan point)
	stopChan := make(chan struct{}, 1)

	go func() {
		evChan := hook.Start()
		defer hook.End()

		for {
			select {
			case ev := <-evChan:
				if ev.Kind == hook.MouseDown {
					x, y := robotgo.Location()
					select {
					case clickChan <- point{X: x, Y: y}:
					case <-stopChan:
						return
					}
				}
			case <-stopChan:
				return
			}
		}
	}()

	var timeoutChan <-chan time.Time
	if timeout > 0 {
		timeoutChan = time.After(timeout)
	}

	select {
	case pos := <-clickChan:
		stopChan <- struct{}{}
		return pos.X, pos.Y, nil
	case <-timeoutChan:
		stopChan <- struct{}{}
		return 0, 0, ErrTimeout
	}
}

// ListenKey invokes fn every time the named key is pressed, until the
// context is cancelled. It blocks and is meant to run on its own goroutine.
func ListenKey(ctx context.Context, key string, fn func()) {
	hook.Register(hook.KeyDown, []string{key}, func(hook.Event) {
		fn()
	})

	evChan := hook.Start()
	done := hook.Process(evChan)

	select {
	case <-ctx.Done():
		hook.End()
		<-done
	case <-done:
	}
}
