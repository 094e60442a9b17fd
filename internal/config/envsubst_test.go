package config

import "testing"

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CLICKFLOW_SET_VAR", "value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "${CLICKFLOW_SET_VAR}", "value"},
		{"unset variable", "${CLICKFLOW_UNSET_VAR}", ""},
		{"unset with default", "${CLICKFLOW_UNSET_VAR:-fallback}", "fallback"},
		{"set with default", "${CLICKFLOW_SET_VAR:-fallback}", "value"},
		{"embedded", "user=${CLICKFLOW_SET_VAR}!", "user=value!"},
		{"no reference", "plain text", "plain text"},
		{"not a reference", "$CLICKFLOW_SET_VAR", "$CLICKFLOW_SET_VAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnvVars(tt.input); got != tt.want {
				t.Errorf("ExpandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
