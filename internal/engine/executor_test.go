package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/clickflow/clickflow/internal/config"
	"github.com/clickflow/clickflow/internal/input"
	"github.com/clickflow/clickflow/internal/logger"
)

// fakeSurface records issued commands and can inject failures per operation.
type fakeSurface struct {
	mu           sync.Mutex
	calls        []string
	failsafe     bool
	failCall     string // op prefix that returns a generic error
	failsafeCall string // op prefix that returns ErrFailsafe
	panicCall    string // op prefix that panics
}

func (f *fakeSurface) op(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panicCall != "" && strings.HasPrefix(name, f.panicCall) {
		panic("surface exploded")
	}
	if f.failsafeCall != "" && strings.HasPrefix(name, f.failsafeCall) {
		return fmt.Errorf("pointer at screen corner: %w", input.ErrFailsafe)
	}
	if f.failCall != "" && strings.HasPrefix(name, f.failCall) {
		return fmt.Errorf("injected failure on %s", name)
	}
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeSurface) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSurface) SetFailsafe(enabled bool) {
	f.mu.Lock()
	f.failsafe = enabled
	f.mu.Unlock()
}

func (f *fakeSurface) Move(x, y int, glide time.Duration) error {
	return f.op(fmt.Sprintf("move %d,%d", x, y))
}

func (f *fakeSurface) Click(b input.Button, double bool) error {
	if double {
		return f.op("doubleclick " + string(b))
	}
	return f.op("click " + string(b))
}

func (f *fakeSurface) Toggle(b input.Button, down bool) error {
	return f.op(fmt.Sprintf("toggle %s %s", b, updown(down)))
}

func (f *fakeSurface) KeyTap(key string) error {
	return f.op("keytap " + key)
}

func (f *fakeSurface) KeyToggle(key string, down bool) error {
	return f.op(fmt.Sprintf("keytoggle %s %s", key, updown(down)))
}

func (f *fakeSurface) KeyCombo(keys []string) error {
	return f.op("keycombo " + strings.Join(keys, "+"))
}

func (f *fakeSurface) TypeKeys(text string, interval time.Duration) error {
	return f.op("typekeys " + text)
}

func (f *fakeSurface) TypeText(text string, interval time.Duration) error {
	return f.op("typetext " + text)
}

func updown(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

func newTestExecutor(surface *fakeSurface) *Executor {
	// Zero durations keep tests fast; the focus pause is a fixed constant.
	return NewExecutor(surface, config.Settings{}, logger.NewNoopLogger())
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls mismatch:\ngot:  %v\nwant: %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("calls mismatch at %d:\ngot:  %v\nwant: %v", i, got, want)
		}
	}
}

func TestExecuteClickKinds(t *testing.T) {
	tests := []struct {
		action config.ActionKind
		want   string
	}{
		{config.ActionLeftClick, "click left"},
		{config.ActionRightClick, "click right"},
		{config.ActionDoubleClick, "doubleclick left"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			surface := &fakeSurface{}
			exec := newTestExecutor(surface)

			step := config.Step{Name: "s", Action: tt.action, X: 30, Y: 40}
			if err := exec.Execute(step); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			assertCalls(t, surface.Calls(), []string{"move 30,40", tt.want})
		})
	}
}

func TestExecuteEmptyActionDefaultsToClick(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	if err := exec.Execute(config.Step{Name: "s", X: 1, Y: 2}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{"move 1,2", "click left"})
}

func TestExecuteUnknownActionFails(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	err := exec.Execute(config.Step{Name: "s", Action: "teleport", X: 1, Y: 2})
	if err == nil {
		t.Fatal("expected error for unknown action kind")
	}
	if len(surface.Calls()) != 0 {
		t.Errorf("no commands should be issued for an unknown kind, got %v", surface.Calls())
	}
}

func TestExecuteMoveOnly(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	if err := exec.Execute(config.Step{Name: "hover", Action: config.ActionMoveOnly, X: 5, Y: 6}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{"move 5,6"})
}

func TestExecuteHoldAndRelease(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	if err := exec.Execute(config.Step{Name: "grab", Action: config.ActionLeftHold, X: 1, Y: 1}); err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	if err := exec.Execute(config.Step{Name: "drop", Action: config.ActionLeftRelease, X: 9, Y: 9}); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{
		"move 1,1", "toggle left down",
		"move 9,9", "toggle left up",
	})
}

func TestExecuteTypeText(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	step := config.Step{Name: "fill", Action: config.ActionTypeText, X: 10, Y: 20, Text: "hi"}
	if err := exec.Execute(step); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{"move 10,20", "click left", "typekeys hi"})
}

func TestExecuteTypeTextHotkeyUsesUnicodePath(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	step := config.Step{Name: "fill", Action: config.ActionTypeTextHotkey, X: 10, Y: 20, Text: "héllo"}
	if err := exec.Execute(step); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{"move 10,20", "click left", "typetext héllo"})
}

func TestExecuteKeyActionsSkipMove(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	steps := []config.Step{
		{Name: "enter", Action: config.ActionPressKey, X: 99, Y: 99},
		{Name: "hold-shift", Action: config.ActionKeyDown, X: 99, Y: 99},
		{Name: "drop-shift", Action: config.ActionKeyUp, X: 99, Y: 99},
		{Name: "copy", Action: config.ActionHotkey, X: 99, Y: 99, Text: "ctrl+c"},
	}
	for _, step := range steps {
		if err := exec.Execute(step); err != nil {
			t.Fatalf("Execute %s failed: %v", step.Name, err)
		}
	}
	assertCalls(t, surface.Calls(), []string{
		"keytap enter",
		"keytoggle shift down",
		"keytoggle shift up",
		"keycombo ctrl+c",
	})
}

func TestExecutePressKeyUsesPayload(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	if err := exec.Execute(config.Step{Name: "tab", Action: config.ActionPressKey, Text: "tab"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	assertCalls(t, surface.Calls(), []string{"keytap tab"})
}

func TestExecuteEmptyHotkeyFails(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	err := exec.Execute(config.Step{Name: "copy", Action: config.ActionHotkey, Text: ""})
	if err == nil {
		t.Fatal("expected error for empty hotkey")
	}
	if len(surface.Calls()) != 0 {
		t.Errorf("no commands should be issued, got %v", surface.Calls())
	}
}

func TestExecuteWait(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	start := time.Now()
	if err := exec.Execute(config.Step{Name: "pause", Action: config.ActionWait, Text: "0.05"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected at least 50ms wait, got %v", elapsed)
	}
	if len(surface.Calls()) != 0 {
		t.Errorf("wait should issue no commands, got %v", surface.Calls())
	}
}

func TestExecuteWaitBadDuration(t *testing.T) {
	surface := &fakeSurface{}
	exec := newTestExecutor(surface)

	if err := exec.Execute(config.Step{Name: "pause", Action: config.ActionWait, Text: "soon"}); err == nil {
		t.Fatal("expected error for unparsable wait duration")
	}
}

func TestExecuteFailsafePassesThrough(t *testing.T) {
	surface := &fakeSurface{failsafeCall: "click"}
	exec := newTestExecutor(surface)

	err := exec.Execute(config.Step{Name: "s", Action: config.ActionLeftClick, X: 1, Y: 1})
	if !errors.Is(err, input.ErrFailsafe) {
		t.Errorf("expected ErrFailsafe, got %v", err)
	}
}

func TestExecuteSurfaceErrorReported(t *testing.T) {
	surface := &fakeSurface{failCall: "keytap"}
	exec := newTestExecutor(surface)

	err := exec.Execute(config.Step{Name: "s", Action: config.ActionPressKey, Text: "enter"})
	if err == nil || errors.Is(err, input.ErrFailsafe) {
		t.Errorf("expected generic surface error, got %v", err)
	}
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	surface := &fakeSurface{panicCall: "click"}
	exec := newTestExecutor(surface)

	err := exec.Execute(config.Step{Name: "s", Action: config.ActionLeftClick, X: 1, Y: 1})
	if err == nil {
		t.Fatal("expected panic to surface as an error")
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Errorf("expected panic error, got %v", err)
	}
}
