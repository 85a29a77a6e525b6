package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// hydrate decodes key into dst. A missing, unreadable or corrupt value leaves dst untouched.
func hydrate[T any](ctx context.Context, store model.Store, l *logger.Logger, key string, dst *T) bool {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return false
	}
	if err != nil {
		l.Warn("Storefront: failed to read key, using default", "key", key, "error", err)
		return false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		l.Error("Storefront: corrupt key, using default", "key", key, "error", err)
		return false
	}

	*dst = value
	return true
}

// load replaces st's persistent fields with what the store holds, key by key.
func (st *state) load(ctx context.Context, store model.Store, l *logger.Logger) {
	st.reset()

	hydrate(ctx, store, l, model.KeyProducts, &st.products)
	hydrate(ctx, store, l, model.KeyCategories, &st.categories)
	hydrate(ctx, store, l, model.KeyPromotions, &st.promotions)
	hydrate(ctx, store, l, model.KeyOrders, &st.orders)

	raw, err := store.Get(ctx, model.KeySettings)
	switch {
	case errors.Is(err, model.ErrNotFound):
	case err != nil:
		l.Warn("Storefront: failed to read key, using default", "key", model.KeySettings, "error", err)
	default:
		// Stored settings overlay the defaults field by field.
		settings := defaultSettings()
		if err := json.Unmarshal(raw, &settings); err != nil {
			l.Error("Storefront: corrupt key, using default", "key", model.KeySettings, "error", err)
		} else {
			st.settings = settings
		}
	}

	for _, name := range model.AuxCollections {
		raw, err := store.Get(ctx, name)
		switch {
		case errors.Is(err, model.ErrNotFound):
		case err != nil:
			l.Warn("Storefront: failed to read key, using default", "key", name, "error", err)
		case !json.Valid(raw):
			l.Error("Storefront: corrupt key, using default", "key", name)
		default:
			st.collections[name] = json.RawMessage(raw)
		}
	}

	st.loadUsers(ctx, store, l)
	st.loadPointers(ctx, store, l)

	for i := range st.orders {
		if st.orders[i].Items == nil {
			st.orders[i].Items = model.Cart{}
		}
	}
	l.Info("Storefront: loaded",
		"products", len(st.products),
		"orders", len(st.orders),
		"users", len(st.users),
		"sessions", len(st.pointers))
}

func (st *state) loadUsers(ctx context.Context, store model.Store, l *logger.Logger) {
	raws, err := store.List(ctx, model.UserKeyPrefix)
	if err != nil {
		l.Warn("Storefront: failed to list user records", "error", err)
		return
	}

	for key, raw := range raws {
		identity := model.IdentityKey(strings.TrimPrefix(key, model.UserKeyPrefix))
		var rec model.UserRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			l.Error("Storefront: corrupt user record skipped", "key", key, "error", err)
			continue
		}
		if rec.Cart == nil {
			rec.Cart = model.Cart{}
		}
		if rec.Wishlist == nil {
			rec.Wishlist = []string{}
		}
		st.users[identity] = rec
	}
}

func (st *state) loadPointers(ctx context.Context, store model.Store, l *logger.Logger) {
	raws, err := store.List(ctx, model.SessionKeyPrefix)
	if err != nil {
		l.Warn("Storefront: failed to list sessions", "error", err)
		return
	}

	for key, raw := range raws {
		id, err := uuid.Parse(strings.TrimPrefix(key, model.SessionKeyPrefix))
		if err != nil {
			l.Error("Storefront: bad session key skipped", "key", key, "error", err)
			continue
		}
		var identity model.IdentityKey
		if err := json.Unmarshal(raw, &identity); err != nil || identity.IsZero() {
			l.Error("Storefront: corrupt session pointer skipped", "key", key, "error", err)
			continue
		}
		st.pointers[id] = identity
	}
}
