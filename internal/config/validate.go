package config

import (
	"fmt"
	"strings"
)

// ValidationError holds details about a profile validation failure.
type ValidationError struct {
	Field   string
	Message string
	Context string
}

func (e ValidationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (in %s)", e.Field, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, "  - "+e.Error())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n%s", len(errs), strings.Join(msgs, "\n"))
}

// HasErrors returns true if there are any validation errors.
func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

// Validator validates profile documents ahead of a run. The executor still
// validates lazily at execution time; this exists so the editor side can
// surface problems before the pointer starts moving.
type Validator struct{}

// NewValidator creates a profile validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a profile and returns detailed validation errors.
func (v *Validator) Validate(p *Profile) ValidationErrors {
	var errs ValidationErrors

	if p.MoveDuration < 0 {
		errs = append(errs, ValidationError{
			Field:   "move_duration",
			Message: "must not be negative",
		})
	}
	if p.ClickDelay < 0 {
		errs = append(errs, ValidationError{
			Field:   "click_delay",
			Message: "must not be negative",
		})
	}

	// Step names are identifiers for log lines only; uniqueness is not
	// enforced, so duplicates pass.
	for i, step := range p.Steps {
		stepContext := fmt.Sprintf("step[%d]", i)

		if step.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "name",
				Message: "step name is required",
				Context: stepContext,
			})
		}

		if step.Action != "" && !step.Action.Valid() {
			errs = append(errs, ValidationError{
				Field:   "action",
				Message: fmt.Sprintf("unknown action kind %q, known kinds: %s", step.Action, knownKindList()),
				Context: stepContext,
			})
			continue
		}

		switch step.Action {
		case ActionHotkey:
			if _, err := step.HotkeyKeys(); err != nil {
				errs = append(errs, ValidationError{
					Field:   "text",
					Message: err.Error(),
					Context: stepContext,
				})
			}
		case ActionWait:
			if _, err := step.WaitDuration(); err != nil {
				errs = append(errs, ValidationError{
					Field:   "text",
					Message: err.Error(),
					Context: stepContext,
				})
			}
		}
	}

	return errs
}

func knownKindList() string {
	kinds := ActionKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// ValidateProfile is a convenience function returning nil when p is valid.
func ValidateProfile(p *Profile) error {
	errs := NewValidator().Validate(p)
	if errs.HasErrors() {
		return errs
	}
	return nil
}
