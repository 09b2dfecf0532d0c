package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), DefaultConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientError(t *testing.T) {
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	calls := 0
	result, err := Do(context.Background(), cfg, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, &StatusError{Code: 503, Status: "503 Service Unavailable"}
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := &StatusError{Code: 401, Status: "401 Unauthorized"}

	calls := 0
	_, err := Do(context.Background(), DefaultConfig(), func() (int, error) {
		calls++
		return 0, permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	cfg := Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	transient := errors.New("connection reset by peer")

	calls := 0
	_, err := Do(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, transient
	})

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 2, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Minute, MaxDelay: time.Minute, Multiplier: 1}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (int, error) {
		return 0, errors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDisabledRunsOnce(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Disabled(), func() (int, error) {
		calls++
		return 0, errors.New("timeout")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 4 * time.Second, Multiplier: 2}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	// Capped at MaxDelay
	assert.Equal(t, 4*time.Second, cfg.Delay(10))
	// Negative attempts clamp to zero
	assert.Equal(t, time.Second, cfg.Delay(-1))
}
