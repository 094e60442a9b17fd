package config

import "time"

// ActionKind identifies what a step does when executed.
type ActionKind string

const (
	ActionLeftClick      ActionKind = "left_click"
	ActionRightClick     ActionKind = "right_click"
	ActionDoubleClick    ActionKind = "double_click"
	ActionLeftHold       ActionKind = "left_hold"
	ActionLeftRelease    ActionKind = "left_release"
	ActionTypeText       ActionKind = "type_text"
	ActionTypeTextHotkey ActionKind = "type_text_hotkey"
	ActionPressKey       ActionKind = "press_key"
	ActionKeyDown        ActionKind = "key_down"
	ActionKeyUp          ActionKind = "key_up"
	ActionHotkey         ActionKind = "hotkey"
	ActionWait           ActionKind = "wait"
	ActionMoveOnly       ActionKind = "move_only"
)

// ActionKinds returns every recognized action kind, in a stable order.
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionLeftClick, ActionRightClick, ActionDoubleClick,
		ActionLeftHold, ActionLeftRelease,
		ActionTypeText, ActionTypeTextHotkey,
		ActionPressKey, ActionKeyDown, ActionKeyUp, ActionHotkey,
		ActionWait, ActionMoveOnly,
	}
}

// Valid reports whether k is a recognized action kind.
func (k ActionKind) Valid() bool {
	for _, known := range ActionKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Positional reports whether k acts at a screen position and therefore gets
// the pre-action pointer glide and settle pause. Key-only actions and waits
// leave the pointer alone.
func (k ActionKind) Positional() bool {
	switch k {
	case ActionPressKey, ActionKeyDown, ActionKeyUp, ActionHotkey, ActionWait:
		return false
	}
	return true
}

// Step describes one automation action. Steps are value records owned by the
// profile; the engine only ever reads them.
type Step struct {
	Name        string     `json:"name"`
	Action      ActionKind `json:"action"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
}

// Settings holds the numeric knobs applied to every cycle. All durations are
// decimal seconds in the persisted document.
type Settings struct {
	FailsafeEnabled bool    `json:"failsafe_enabled"`
	InitialDelay    float64 `json:"initial_delay"`
	MoveDuration    float64 `json:"move_duration"`
	ClickDelay      float64 `json:"click_delay"`
}

// Profile is the persisted document: settings plus the ordered step list.
type Profile struct {
	Settings
	Steps []Step `json:"steps"`
}

// DefaultProfile returns a profile with the documented defaults and no steps.
func DefaultProfile() *Profile {
	return &Profile{
		Settings: Settings{
			FailsafeEnabled: true,
			InitialDelay:    3,
			MoveDuration:    0.3,
			ClickDelay:      0.25,
		},
		Steps: []Step{},
	}
}

func secondsToDuration(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// GetInitialDelay returns the warm-up delay. Negative values clamp to zero.
func (s Settings) GetInitialDelay() time.Duration {
	return secondsToDuration(s.InitialDelay)
}

// GetMoveDuration returns the pointer glide time before positional actions.
func (s Settings) GetMoveDuration() time.Duration {
	return secondsToDuration(s.MoveDuration)
}

// GetClickDelay returns the settle pause after arriving at a position.
func (s Settings) GetClickDelay() time.Duration {
	return secondsToDuration(s.ClickDelay)
}
