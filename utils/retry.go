package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig defines retry behavior with exponential backoff.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// ShouldRetry decides whether a failed attempt may be retried.
	// nil means every error is retryable.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig returns the standard policy: 3 attempts,
// 1 s initial backoff, 30 s cap, every error retryable.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Backoff returns the wait duration after the given 1-based failed attempt:
// InitialDelay * 2^(attempt-1), capped at MaxDelay.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	d := c.InitialDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= c.MaxDelay {
			return c.MaxDelay
		}
	}
	if d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// Retry invokes fn up to cfg.MaxAttempts times, sleeping Backoff(attempt)
// between failed attempts. A non-retryable error, an exhausted attempt
// budget, or a cancelled context ends the loop.
func Retry(ctx context.Context, cfg RetryConfig, logger zerolog.Logger, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Debug().Int("attempts", attempt).Msg("retry succeeded")
			}
			return nil
		}
		lastErr = err

		if cfg.ShouldRetry != nil && !cfg.ShouldRetry(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := cfg.Backoff(attempt)
		logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", cfg.MaxAttempts).
			Dur("backoff", backoff).
			Err(err).
			Msg("retrying after backoff")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", cfg.MaxAttempts, lastErr)
}
