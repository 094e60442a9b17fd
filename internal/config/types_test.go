package config

import (
	"testing"
	"time"
)

func TestActionKindPositional(t *testing.T) {
	tests := []struct {
		kind       ActionKind
		positional bool
	}{
		{ActionLeftClick, true},
		{ActionRightClick, true},
		{ActionDoubleClick, true},
		{ActionLeftHold, true},
		{ActionLeftRelease, true},
		{ActionTypeText, true},
		{ActionTypeTextHotkey, true},
		{ActionMoveOnly, true},
		{ActionPressKey, false},
		{ActionKeyDown, false},
		{ActionKeyUp, false},
		{ActionHotkey, false},
		{ActionWait, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Positional(); got != tt.positional {
				t.Errorf("Positional() = %v, want %v", got, tt.positional)
			}
		})
	}
}

func TestActionKindValid(t *testing.T) {
	if !ActionWait.Valid() {
		t.Error("wait should be a valid kind")
	}
	if ActionKind("teleport").Valid() {
		t.Error("unrecognized kind should not be valid")
	}
}

func TestSettingsDurationClamping(t *testing.T) {
	s := Settings{InitialDelay: -2, MoveDuration: 0.3, ClickDelay: 0}

	if got := s.GetInitialDelay(); got != 0 {
		t.Errorf("negative initial delay should clamp to zero, got %v", got)
	}
	if got := s.GetMoveDuration(); got != 300*time.Millisecond {
		t.Errorf("expected 300ms move duration, got %v", got)
	}
	if got := s.GetClickDelay(); got != 0 {
		t.Errorf("expected zero click delay, got %v", got)
	}
}

func TestStepKeyName(t *testing.T) {
	if got := (Step{}).KeyName("enter"); got != "enter" {
		t.Errorf("expected default 'enter', got %q", got)
	}
	if got := (Step{Text: "tab"}).KeyName("enter"); got != "tab" {
		t.Errorf("expected 'tab', got %q", got)
	}
}

func TestStepHotkeyKeys(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{"single key", "esc", []string{"esc"}, false},
		{"two key chord", "ctrl+c", []string{"ctrl", "c"}, false},
		{"three key chord", "ctrl+shift+t", []string{"ctrl", "shift", "t"}, false},
		{"empty", "", nil, true},
		{"trailing plus", "ctrl+", nil, true},
		{"blank segment", "ctrl+ +c", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (Step{Text: tt.text}).HotkeyKeys()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStepWaitDuration(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    time.Duration
		wantErr bool
	}{
		{"empty defaults to one second", "", time.Second, false},
		{"fraction", "0.25", 250 * time.Millisecond, false},
		{"integer", "2", 2 * time.Second, false},
		{"garbage", "soon", 0, true},
		{"negative", "-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (Step{Text: tt.text}).WaitDuration()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
