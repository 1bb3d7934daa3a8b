package store

import (
	"context"
	"sync"
	"time"

	"github.com/kart-io/logger"
)

// ConnState is the lifecycle state of the primary backend connection.
type ConnState int32

const (
	StateIdle ConnState = iota
	StateConnecting
	StateConnected
	// StateUnavailable is terminal for the probe loop: once the retry
	// budget is spent the health endpoint reports the database down for the
	// rest of the process. Request paths are unaffected; they keep going
	// through the pool on every call and fall back individually.
	StateUnavailable
)

func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// RetryPolicy bounds the connection probes. The delay is fixed, not backed
// off; database startup is the case being waited out, and a steady cadence
// is easier to reason about in logs.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy waits out roughly fifteen seconds of database startup.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 3 * time.Second}

// ConnectFunc opens the primary backend pool and returns its factory. The
// open must be lazy: a successful return does not mean the database is
// reachable, only that the pool exists and will dial per call. The returned
// factory's Ping drives the health state.
type ConnectFunc func(ctx context.Context) (Factory, error)

// Bootstrapper opens the primary backend pool and probes it with bounded
// retries. The factory is published as soon as the pool opens, before the
// first probe succeeds: the facade re-attempts the primary on every call,
// and the probe loop only decides what the health endpoint advertises.
// Neither opening nor probing ever surfaces an error to request paths.
type Bootstrapper struct {
	mu      sync.RWMutex
	state   ConnState
	factory Factory
	closed  bool

	policy  RetryPolicy
	connect ConnectFunc
}

// NewBootstrapper builds a bootstrapper around an open function. A nil
// connect func means no primary is configured; Start then marks the
// connection unavailable immediately and never publishes a factory.
func NewBootstrapper(connect ConnectFunc, policy RetryPolicy) *Bootstrapper {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultRetryPolicy.MaxAttempts
	}
	if policy.Delay <= 0 {
		policy.Delay = DefaultRetryPolicy.Delay
	}
	return &Bootstrapper{policy: policy, connect: connect}
}

// Start opens the pool and runs the probe attempts. It blocks until a probe
// succeeds, the retry budget is spent, or ctx is canceled; run it on its
// own goroutine so the server can begin serving at once.
func (b *Bootstrapper) Start(ctx context.Context) {
	if b.connect == nil {
		b.markState(StateUnavailable)
		logger.Infow("no primary store configured, serving from in-memory fallback")
		return
	}

	factory, err := b.connect(ctx)
	if err != nil {
		b.markState(StateUnavailable)
		logger.Errorw("primary store misconfigured, continuing with in-memory fallback", "error", err)
		return
	}
	if !b.publish(StateConnecting, factory) {
		return
	}

	for attempt := 1; attempt <= b.policy.MaxAttempts; attempt++ {
		err := factory.Ping(ctx)
		if err == nil {
			b.markState(StateConnected)
			logger.Infow("primary store reachable", "attempt", attempt)
			return
		}
		logger.Warnw("primary store probe failed",
			"attempt", attempt,
			"max_attempts", b.policy.MaxAttempts,
			"error", err,
		)
		if attempt == b.policy.MaxAttempts {
			break
		}
		select {
		case <-time.After(b.policy.Delay):
		case <-ctx.Done():
			b.markState(StateUnavailable)
			return
		}
	}

	b.markState(StateUnavailable)
	logger.Errorw("primary store probes exhausted, health reports unavailable",
		"attempts", b.policy.MaxAttempts,
	)
}

// publish stores the factory unless Close won the race, in which case the
// freshly opened pool is released instead of leaked.
func (b *Bootstrapper) publish(state ConnState, factory Factory) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		if factory != nil {
			_ = factory.Close()
		}
		return false
	}
	b.state = state
	b.factory = factory
	b.mu.Unlock()
	return true
}

func (b *Bootstrapper) markState(state ConnState) {
	b.mu.Lock()
	if !b.closed {
		b.state = state
	}
	b.mu.Unlock()
}

// State reports the current connection state.
func (b *Bootstrapper) State() ConnState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Available reports whether the primary backend answered a probe.
func (b *Bootstrapper) Available() bool {
	return b.State() == StateConnected
}

// Factory returns the primary factory, or nil when no primary is configured
// or its pool could not be opened. A non-nil factory does not mean the
// database is reachable; callers try it and handle per-call failures.
func (b *Bootstrapper) Factory() Factory {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.factory
}

// Close releases the primary pool if one was opened and pins the state to
// unavailable so a racing Start cannot resurrect it.
func (b *Bootstrapper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.state = StateUnavailable
	if b.factory == nil {
		return nil
	}
	err := b.factory.Close()
	b.factory = nil
	return err
}
