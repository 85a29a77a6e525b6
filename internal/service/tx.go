package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Tx stages the persistent writes, in-memory effects and notifications of one user action.
// Nothing is visible until the runner commits it.
type Tx struct {
	changes *model.Changeset
	applies []func()
	events  []model.Event
}

func newTx() *Tx {
	return &Tx{changes: model.NewChangeset()}
}

// Put stages a JSON write.
func (tx *Tx) Put(key string, value any) error {
	return tx.changes.Put(key, value)
}

// Delete stages a key removal.
func (tx *Tx) Delete(key string) {
	tx.changes.Delete(key)
}

// OnCommit registers an in-memory effect applied after the store accepted the changeset.
func (tx *Tx) OnCommit(f func()) {
	tx.applies = append(tx.applies, f)
}

// Emit queues a notification sent after commit.
func (tx *Tx) Emit(event model.Event) {
	tx.events = append(tx.events, event)
}

// runner serializes user actions. It plays the role of the single event loop:
// every action runs alone, commits once and then applies its effects.
type runner struct {
	mu      sync.Mutex
	store   model.Store
	emitter *Emitter
	clock   model.Clock
	logger  *logger.Logger
}

func newRunner(store model.Store, emitter *Emitter, clock model.Clock, logger *logger.Logger) *runner {
	return &runner{store: store, emitter: emitter, clock: clock, logger: logger}
}

// run executes fn under the action lock. A non-empty changeset is committed in one
// store call; in-memory effects run only when that succeeds.
func (r *runner) run(ctx context.Context, action string, fn func(tx *Tx) error) error {
	tx, err := r.commit(ctx, action, fn)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	for i := range tx.events {
		if tx.events[i].OccurredAt.IsZero() {
			tx.events[i].OccurredAt = now
		}
	}
	r.emitter.Emit(ctx, tx.events...)

	return nil
}

// commit holds the action lock for fn, the store write and the in-memory effects.
func (r *runner) commit(ctx context.Context, action string, fn func(tx *Tx) error) (*Tx, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := newTx()
	if err := fn(tx); err != nil {
		return nil, err
	}

	if !tx.changes.Empty() {
		if err := r.store.Commit(ctx, tx.changes); err != nil {
			r.logger.Error("Storefront: commit failed", "action", action, "keys", tx.changes.Keys(), "error", err)
			return nil, fmt.Errorf("failed to commit %s: %w", action, err)
		}
		r.logger.Debug("Storefront: committed", "action", action, "keys", tx.changes.Keys())
	}

	for _, apply := range tx.applies {
		apply()
	}
	return tx, nil
}

// view runs fn under the action lock without staging anything.
func (r *runner) view(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}
