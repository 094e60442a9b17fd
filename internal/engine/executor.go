package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/clickflow/clickflow/internal/config"
	"github.com/clickflow/clickflow/internal/input"
	"github.com/clickflow/clickflow/internal/logger"
)

const (
	// focusPause is the pause between the focusing click and the first
	// emitted character of a typing action.
	focusPause = 200 * time.Millisecond

	// typeInterval rate-limits character emission to ~20/s.
	typeInterval = 50 * time.Millisecond
)

// Executor interprets single steps against the host input surface. Failures
// never escape as panics; every failure is logged with the step name before
// it is returned.
type Executor struct {
	surface  input.Surface
	settings config.Settings
	log      logger.Logger
}

// NewExecutor creates an executor bound to a surface and a settings snapshot.
func NewExecutor(surface input.Surface, settings config.Settings, log logger.Logger) *Executor {
	return &Executor{surface: surface, settings: settings, log: log}
}

// Execute runs one step. An ErrFailsafe result means the safety interlock
// fired; everything else is an ordinary step failure.
func (e *Executor) Execute(step config.Step) error {
	err := e.run(step)
	if err != nil && !errors.Is(err, input.ErrFailsafe) {
		e.log.Error("Step execution failed", logger.F("step", step.Name), logger.F("error", err))
	}
	return err
}

func (e *Executor) run(step config.Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("input surface panic: %v", r)
		}
	}()

	kind := step.Action
	if kind == "" {
		// A missing action means a click, matching the persisted format's
		// documented default.
		kind = config.ActionLeftClick
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown action kind %q", kind)
	}

	if kind.Positional() {
		if err := e.surface.Move(step.X, step.Y, e.settings.GetMoveDuration()); err != nil {
			return err
		}
		time.Sleep(e.settings.GetClickDelay())
	}

	switch kind {
	case config.ActionLeftClick:
		if err := e.surface.Click(input.ButtonLeft, false); err != nil {
			return err
		}
		e.log.Debug("Left click", logger.F("step", step.Name), logger.F("x", step.X), logger.F("y", step.Y))

	case config.ActionRightClick:
		if err := e.surface.Click(input.ButtonRight, false); err != nil {
			return err
		}
		e.log.Debug("Right click", logger.F("step", step.Name), logger.F("x", step.X), logger.F("y", step.Y))

	case config.ActionDoubleClick:
		if err := e.surface.Click(input.ButtonLeft, true); err != nil {
			return err
		}
		e.log.Debug("Double click", logger.F("step", step.Name), logger.F("x", step.X), logger.F("y", step.Y))

	case config.ActionLeftHold:
		// Held state persists across steps and cycles until released.
		if err := e.surface.Toggle(input.ButtonLeft, true); err != nil {
			return err
		}
		e.log.Debug("Left button held", logger.F("step", step.Name), logger.F("x", step.X), logger.F("y", step.Y))

	case config.ActionLeftRelease:
		if err := e.surface.Toggle(input.ButtonLeft, false); err != nil {
			return err
		}
		e.log.Debug("Left button released", logger.F("step", step.Name))

	case config.ActionTypeText:
		if err := e.typeWith(e.surface.TypeKeys, step.Text); err != nil {
			return err
		}
		e.log.Debug("Typed text", logger.F("step", step.Name), logger.F("chars", len(step.Text)))

	case config.ActionTypeTextHotkey:
		if err := e.typeWith(e.surface.TypeText, step.Text); err != nil {
			return err
		}
		e.log.Debug("Typed text (unicode path)", logger.F("step", step.Name), logger.F("chars", len(step.Text)))

	case config.ActionPressKey:
		key := step.KeyName("enter")
		if err := e.surface.KeyTap(key); err != nil {
			return err
		}
		e.log.Debug("Pressed key", logger.F("step", step.Name), logger.F("key", key))

	case config.ActionKeyDown:
		key := step.KeyName("shift")
		if err := e.surface.KeyToggle(key, true); err != nil {
			return err
		}
		e.log.Debug("Key held", logger.F("step", step.Name), logger.F("key", key))

	case config.ActionKeyUp:
		key := step.KeyName("shift")
		if err := e.surface.KeyToggle(key, false); err != nil {
			return err
		}
		e.log.Debug("Key released", logger.F("step", step.Name), logger.F("key", key))

	case config.ActionHotkey:
		keys, err := step.HotkeyKeys()
		if err != nil {
			return err
		}
		if err := e.surface.KeyCombo(keys); err != nil {
			return err
		}
		e.log.Debug("Hotkey", logger.F("step", step.Name), logger.F("combo", step.Text))

	case config.ActionWait:
		d, err := step.WaitDuration()
		if err != nil {
			return err
		}
		time.Sleep(d)
		e.log.Debug("Waited", logger.F("step", step.Name), logger.F("duration", d))

	case config.ActionMoveOnly:
		e.log.Debug("Moved", logger.F("step", step.Name), logger.F("x", step.X), logger.F("y", step.Y))
	}

	return nil
}

// typeWith clicks to focus the target, pauses, then enters text through the
// given emission path.
func (e *Executor) typeWith(emit func(string, time.Duration) error, text string) error {
	if err := e.surface.Click(input.ButtonLeft, false); err != nil {
		return err
	}
	time.Sleep(focusPause)
	return emit(text, typeInterval)
}
