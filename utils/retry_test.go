package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  4,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
	}

	calls := 0
	start := time.Now()
	err := Retry(context.Background(), cfg, zerolog.Nop(), func() error {
		calls++
		if calls <= 2 {
			return errors.New("boom")
		}
		return nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Two failed attempts mean two waits: 10ms then 20ms.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
	}

	calls := 0
	err := Retry(context.Background(), cfg, zerolog.Nop(), func() error {
		calls++
		return errors.New("always fails")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
	assert.ErrorContains(t, err, "always fails")
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	fatal := errors.New("bad request")
	cfg := RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		ShouldRetry:  func(err error) bool { return !errors.Is(err, fatal) },
	}

	calls := 0
	err := Retry(context.Background(), cfg, zerolog.Nop(), func() error {
		calls++
		return fatal
	})

	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Minute, // would block forever without cancellation
		MaxDelay:     time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, cfg, zerolog.Nop(), func() error {
		calls++
		cancel()
		return errors.New("boom")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:  10,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second}, // 32s capped
		{7, 30 * time.Second},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, cfg.Backoff(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Nil(t, cfg.ShouldRetry)
}
