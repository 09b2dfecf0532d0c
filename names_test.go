package agentwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"underscores become hyphens", "web_search", "web-search"},
		{"already display form", "web-search", "web-search"},
		{"single word", "ask", "ask"},
		{"mixed separators", "execute_shell-command", "execute-shell-command"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.in))
		})
	}
}

func TestFunctionName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"hyphens become underscores", "web-search", "web_search"},
		{"already identifier form", "web_search", "web_search"},
		{"single word", "ask", "ask"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FunctionName(tt.in))
		})
	}
}

func TestNameFormRoundTrip(t *testing.T) {
	// Display form is a fixed point under display -> function -> display.
	for _, name := range []string{"web_search", "execute-command", "browser_navigate_to", "ask"} {
		display := DisplayName(name)
		assert.Equal(t, display, DisplayName(FunctionName(display)))
		assert.Equal(t, FunctionName(display), FunctionName(FunctionName(display)))
	}
}
