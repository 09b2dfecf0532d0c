package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"http://a", true},
		{"https://a", true},
		{"http://agent.example.com/api/run/abc/stream", true},
		{"captured-run.sse", false},
		{"-", false},
		{"httpx://a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.expected, isURL(tt.source))
		})
	}
}
