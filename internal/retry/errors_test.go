package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransientWithStatusError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected bool
	}{
		{"rate limited", 429, true},
		{"internal server error", 500, true},
		{"bad gateway", 502, true},
		{"service unavailable", 503, true},
		{"gateway timeout", 504, true},
		{"unauthorized", 401, false},
		{"forbidden", 403, false},
		{"not found", 404, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &StatusError{Code: tt.code, Status: fmt.Sprintf("%d", tt.code)}
			assert.Equal(t, tt.expected, IsTransient(err))
		})
	}
}

func TestIsTransientWithWrappedStatusError(t *testing.T) {
	err := fmt.Errorf("connecting: %w", &StatusError{Code: 503, Status: "503"})
	assert.True(t, IsTransient(err))
}

func TestIsTransientWithNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"connection reset", syscall.ECONNRESET, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"temporary dns failure", &net.DNSError{IsTemporary: true}, true},
		{"permanent dns failure", &net.DNSError{IsNotFound: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}

func TestIsTransientWithStringPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"connection reset message", errors.New("read tcp: connection reset by peer"), true},
		{"connection refused message", errors.New("dial tcp: connection refused"), true},
		{"rate limit message", errors.New("rate limit exceeded"), true},
		{"bad gateway message", errors.New("502 bad gateway"), true},
		{"plain failure", errors.New("invalid credentials"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}

func TestIsTransientNilError(t *testing.T) {
	assert.False(t, IsTransient(nil))
}
