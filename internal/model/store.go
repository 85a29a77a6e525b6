package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Top-level keys of the persistent store.
const (
	KeyProducts   = "products"
	KeyOrders     = "orders"
	KeyCategories = "categories"
	KeySettings   = "settings"
	KeyPromotions = "promotions"

	UserKeyPrefix    = "users/"
	SessionKeyPrefix = "sessions/"
)

// AuxCollections are admin-owned collections the engine loads and serves as opaque JSON.
var AuxCollections = []string{"tickets", "discounts", "faqs", "blog", "pages", "sales"}

// UserKey is the store key of an identity's record.
func UserKey(identity IdentityKey) string {
	return UserKeyPrefix + string(identity)
}

// SessionKey is the store key of a session's active-identity pointer.
func SessionKey(sessionID uuid.UUID) string {
	return SessionKeyPrefix + sessionID.String()
}

// Store is durable key/value storage. Commit applies a changeset atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Commit(ctx context.Context, changes *Changeset) error
}

// Mutation is one staged write. Value is nil for deletes.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

// Changeset collects the writes of one user action. The last write to a key wins.
type Changeset struct {
	order     []string
	mutations map[string]Mutation
}

func NewChangeset() *Changeset {
	return &Changeset{mutations: make(map[string]Mutation)}
}

// Put stages the JSON encoding of value under key.
func (c *Changeset) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	c.set(Mutation{Key: key, Value: raw})
	return nil
}

// Delete stages removal of key.
func (c *Changeset) Delete(key string) {
	c.set(Mutation{Key: key, Delete: true})
}

// Merge stages every mutation of other on top of c.
func (c *Changeset) Merge(other *Changeset) {
	if other == nil {
		return
	}
	for _, m := range other.Mutations() {
		c.set(m)
	}
}

// Empty reports whether nothing was staged.
func (c *Changeset) Empty() bool {
	return c == nil || len(c.order) == 0
}

// Keys returns staged keys in first-write order.
func (c *Changeset) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Mutations returns staged writes in first-write order.
func (c *Changeset) Mutations() []Mutation {
	if c == nil {
		return nil
	}
	out := make([]Mutation, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.mutations[key])
	}
	return out
}

func (c *Changeset) set(m Mutation) {
	if _, ok := c.mutations[m.Key]; !ok {
		c.order = append(c.order, m.Key)
	}
	c.mutations[m.Key] = m
}
