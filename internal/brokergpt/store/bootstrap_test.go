package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/model"
)

// probeScript wraps a factory and fails its first n health probes.
type probeScript struct {
	Factory
	probes  int
	failing int
}

func (p *probeScript) Ping(ctx context.Context) error {
	p.probes++
	if p.probes <= p.failing {
		return errors.New("connection refused")
	}
	return p.Factory.Ping(ctx)
}

func TestBootstrapperConnectsAfterRetries(t *testing.T) {
	script := &probeScript{Factory: NewMemoryFactory(), failing: 2}
	connect := func(ctx context.Context) (Factory, error) { return script, nil }

	b := NewBootstrapper(connect, RetryPolicy{MaxAttempts: 5, Delay: time.Millisecond})
	b.Start(context.Background())

	assert.Equal(t, 3, script.probes)
	assert.Equal(t, StateConnected, b.State())
	assert.True(t, b.Available())
	assert.Same(t, script, b.Factory().(*probeScript))
}

func TestBootstrapperGivesUpAndStaysDown(t *testing.T) {
	script := &probeScript{Factory: NewMemoryFactory(), failing: 100}
	connect := func(ctx context.Context) (Factory, error) { return script, nil }

	b := NewBootstrapper(connect, RetryPolicy{MaxAttempts: 4, Delay: time.Millisecond})
	b.Start(context.Background())

	assert.Equal(t, 4, script.probes, "the probe budget is bounded")
	assert.Equal(t, StateUnavailable, b.State())
	assert.False(t, b.Available())

	// Unavailable is terminal for the health flag: nothing probes later.
	// The factory stays published for request paths.
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 4, script.probes)
	assert.NotNil(t, b.Factory())
}

// The retry budget only decides what the health endpoint reports. Requests
// keep going through the pool afterwards, so a database that comes up late
// serves as soon as it answers.
func TestBootstrapperUnavailableStillServesPrimary(t *testing.T) {
	ctx := context.Background()
	primary := newSQLiteFactory(t)
	script := &probeScript{Factory: primary, failing: 100}

	b := NewBootstrapper(func(context.Context) (Factory, error) { return script, nil },
		RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond})
	b.Start(ctx)
	require.Equal(t, StateUnavailable, b.State())
	require.Equal(t, 3, script.probes)

	// The sqlite primary answers queries even though every probe failed.
	// Its empty listing wins over the seeded fallback, which proves the
	// call reached the primary after the budget was spent.
	facade := NewFacade(b.Factory, NewMemoryFactory())
	assert.Empty(t, facade.ListClients(ctx))

	created := facade.CreateClient(ctx, &model.Client{Name: "Late Riser Ltd."})
	require.NotNil(t, created)
	listed := facade.ListClients(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "Late Riser Ltd.", listed[0].Name)
}

func TestBootstrapperNoPrimaryConfigured(t *testing.T) {
	b := NewBootstrapper(nil, DefaultRetryPolicy)
	b.Start(context.Background())

	assert.Equal(t, StateUnavailable, b.State())
	assert.Nil(t, b.Factory())
}

func TestBootstrapperMisconfigured(t *testing.T) {
	connect := func(ctx context.Context) (Factory, error) {
		return nil, errors.New("invalid dsn")
	}

	b := NewBootstrapper(connect, RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond})
	b.Start(context.Background())

	assert.Equal(t, StateUnavailable, b.State())
	assert.Nil(t, b.Factory())
}

func TestBootstrapperCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	script := &probeScript{Factory: NewMemoryFactory(), failing: 100}
	connect := func(ctx context.Context) (Factory, error) {
		cancel()
		return script, nil
	}

	b := NewBootstrapper(connect, RetryPolicy{MaxAttempts: 10, Delay: time.Minute})
	done := make(chan struct{})
	go func() {
		b.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
	assert.Equal(t, StateUnavailable, b.State())
}

// closeCounter records pool releases.
type closeCounter struct {
	Factory
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}

// A shutdown landing while the dial is still in flight must release the
// pool the dial hands over, not leak it, and the state must stay terminal.
func TestBootstrapperCloseDuringStart(t *testing.T) {
	primary := &closeCounter{Factory: NewMemoryFactory()}
	release := make(chan struct{})
	connect := func(ctx context.Context) (Factory, error) {
		<-release
		return primary, nil
	}

	b := NewBootstrapper(connect, RetryPolicy{MaxAttempts: 1, Delay: time.Millisecond})
	done := make(chan struct{})
	go func() {
		b.Start(context.Background())
		close(done)
	}()

	require.NoError(t, b.Close())
	close(release)
	<-done

	assert.Equal(t, 1, primary.closes)
	assert.Nil(t, b.Factory())
	assert.Equal(t, StateUnavailable, b.State())
}

func TestBootstrapperFactoryFeedsFacade(t *testing.T) {
	ctx := context.Background()
	primary := newSQLiteFactory(t)
	b := NewBootstrapper(func(context.Context) (Factory, error) { return primary, nil }, DefaultRetryPolicy)
	b.Start(ctx)
	require.True(t, b.Available())

	facade := NewFacade(b.Factory, NewMemoryFactory())

	// The sqlite primary is empty, the fallback is seeded. A healthy
	// primary answers even when its answer is emptier than the fallback's.
	assert.Empty(t, facade.ListClients(ctx))
}
