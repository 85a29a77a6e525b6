package service

import (
	"context"
	"errors"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Event verbs.
const (
	VerbSessionOpened   = "session.opened"
	VerbLoggedIn        = "identity.logged_in"
	VerbLoggedOut       = "identity.logged_out"
	VerbProfileSaved    = "profile.saved"
	VerbCartChanged     = "cart.changed"
	VerbWishlistChanged = "wishlist.changed"
	VerbCheckoutStep    = "checkout.step"
	VerbOrderPlaced     = "order.placed"
	VerbOrderStatus     = "order.status_changed"
	VerbReviewAdded     = "product.review_added"
	VerbPopupShown      = "promotion.popup_shown"
	VerbDraftUpdated    = "draft.updated"
)

// Hook receives committed change notifications.
type Hook interface {
	Notify(ctx context.Context, event model.Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event model.Event) error

func (fn HookFunc) Notify(ctx context.Context, event model.Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events, joining hook errors.
type Hooks []Hook

func (h Hooks) Notify(ctx context.Context, event model.Event) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emitter delivers events to hooks. Hook failures are logged, never returned to the action.
type Emitter struct {
	hooks  Hooks
	logger *logger.Logger
}

func NewEmitter(hooks Hooks, logger *logger.Logger) *Emitter {
	return &Emitter{hooks: hooks, logger: logger}
}

func (e *Emitter) Emit(ctx context.Context, events ...model.Event) {
	if e == nil || len(e.hooks) == 0 {
		return
	}
	for _, event := range events {
		if err := e.hooks.Notify(ctx, event); err != nil {
			e.logger.Warn("Storefront: event hook failed", "verb", event.Verb, "object", event.ObjectID, "error", err)
		}
	}
}

// LogHook writes every event to the logger at debug level.
func LogHook(l *logger.Logger) Hook {
	return HookFunc(func(_ context.Context, event model.Event) error {
		l.Debug("Storefront event",
			"verb", event.Verb,
			"object_type", event.ObjectType,
			"object_id", event.ObjectID,
			"session_id", event.SessionID,
			"identity", event.Identity)
		return nil
	})
}
