package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/testutil"
)

func TestHooks_Notify(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")
	var calls int
	hooks := Hooks{
		HookFunc(func(context.Context, model.Event) error { calls++; return errA }),
		nil,
		HookFunc(nil),
		HookFunc(func(context.Context, model.Event) error { calls++; return nil }),
		HookFunc(func(context.Context, model.Event) error { calls++; return errB }),
	}

	err := hooks.Notify(context.Background(), model.Event{Verb: VerbCartChanged})
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestEmitter_HookFailureDoesNotFailAction(t *testing.T) {
	t.Parallel()

	l, logs := testutil.MakeCaptureLogger()
	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()}, func(o *Options) {
		o.Logger = l
		o.Hooks = Hooks{HookFunc(func(context.Context, model.Event) error { return assert.AnError })}
	})
	sid := f.open(t)
	f.login(t, sid, "hook@fyx.com")

	totals := f.add(t, sid, "p100", 1)
	assert.Equal(t, 1, totals.CartCount)
	assert.Contains(t, logs.String(), "event hook failed")
}

func TestEmitter_NilIsSafe(t *testing.T) {
	t.Parallel()

	var e *Emitter
	assert.NotPanics(t, func() { e.Emit(context.Background(), model.Event{Verb: VerbOrderPlaced}) })
}

func TestEvents_StampedAfterCommit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	sid := f.open(t)
	f.login(t, sid, "ev@fyx.com")
	f.add(t, sid, "p100", 1)
	f.placeOrder(t, sid)

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	require.NotEmpty(t, f.events.events)
	for _, e := range f.events.events {
		assert.Equal(t, testNow, e.OccurredAt, e.Verb)
		assert.Equal(t, sid, e.SessionID, e.Verb)
	}
}

func TestRunner_GuestActionsDoNotCommit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	ctx := context.Background()
	counter := &countingStore{Store: f.store}
	f.sf.runner.store = counter

	sid := f.open(t)
	f.add(t, sid, "p100", 2)
	_, err := f.sf.Cart.Remove(ctx, sid, 0)
	require.NoError(t, err)
	_, err = f.sf.Sessions.SaveProfile(ctx, sid, model.UserProfile{Name: "Guest"})
	require.NoError(t, err)
	_, err = f.sf.Checkout.Continue(ctx, sid, validDetails)
	assert.ErrorIs(t, err, model.ErrCartEmpty)

	assert.Empty(t, counter.commits)
}

func TestRunner_FailedActionAppliesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	var applied bool
	err := f.sf.runner.run(context.Background(), "noop", func(tx *Tx) error {
		tx.OnCommit(func() { applied = true })
		tx.Emit(model.Event{Verb: "test.event"})
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, applied)
	assert.NotContains(t, f.events.verbs(), "test.event")
}

func TestRunner_PanicReleasesLock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = f.sf.runner.run(ctx, "boom", func(tx *Tx) error {
			tx.OnCommit(func() { panic("apply failed") })
			return nil
		})
	})
	assert.Panics(t, func() {
		_ = f.sf.runner.run(ctx, "boom", func(*Tx) error { panic("action failed") })
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.sf.Sessions.Open(ctx, uuid.Nil)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine stayed locked after a panicking action")
	}
}
