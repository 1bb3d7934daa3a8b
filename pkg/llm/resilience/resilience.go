// Package resilience provides retry and cool-down patterns for LLM calls.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kart-io/logger"
)

// RetryConfig configures bounded retries.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first call.
	MaxAttempts int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration
	// Multiplier grows the delay between retries.
	Multiplier float64
	// RetryableErrors decides whether an error is worth retrying.
	RetryableErrors func(error) bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		RetryableErrors: func(error) bool {
			return true
		},
	}
}

// RetryWithBackoff retries fn with exponential backoff until it succeeds,
// the attempts are exhausted, or the context is cancelled.
func RetryWithBackoff(ctx context.Context, config *RetryConfig, fn func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !config.RetryableErrors(err) {
			logger.Debugw("error is not retryable", "error", err.Error())
			return err
		}

		if attempt >= config.MaxAttempts {
			logger.Warnw("max retry attempts reached",
				"attempts", attempt,
				"error", err.Error(),
			)
			return fmt.Errorf("max retry attempts (%d) reached: %w", config.MaxAttempts, lastErr)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return lastErr
}

// ErrCoolingDown is returned while a cool-down window is active.
var ErrCoolingDown = errors.New("provider is cooling down")

// Cooldown suppresses calls to a flaky upstream for a fixed window after a
// failure. Unlike a full circuit breaker there is no half-open probing: the
// window simply elapses.
type Cooldown struct {
	window time.Duration

	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

// NewCooldown creates a cool-down with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		now:    time.Now,
	}
}

// Active reports whether the cool-down window is currently in effect.
func (c *Cooldown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Before(c.until)
}

// Trip starts (or restarts) the cool-down window.
func (c *Cooldown) Trip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = c.now().Add(c.window)
	logger.Warnw("provider cool-down tripped", "window", c.window.String())
}

// Reset clears the cool-down window.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = time.Time{}
}

// Execute runs fn unless the cool-down is active. A failure from fn trips
// the window.
func (c *Cooldown) Execute(fn func() error) error {
	if c.Active() {
		return ErrCoolingDown
	}
	if err := fn(); err != nil {
		c.Trip()
		return err
	}
	return nil
}
