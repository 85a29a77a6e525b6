package service

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/model"
)

// state is everything the engine holds in memory. It is guarded by the runner lock.
type state struct {
	products    []model.Product
	categories  []string
	settings    model.Settings
	promotions  []model.Promotion
	orders      []model.Order
	collections map[string]json.RawMessage

	users    map[model.IdentityKey]model.UserRecord
	pointers map[uuid.UUID]model.IdentityKey
	sessions map[uuid.UUID]*session

	adminKey  model.IdentityKey
	adminName string
}

func newState(adminKey model.IdentityKey, adminName string) *state {
	st := &state{
		adminKey:  adminKey,
		adminName: adminName,
		sessions:  make(map[uuid.UUID]*session),
	}
	st.reset()
	return st
}

// reset restores the seed data and drops everything loaded. Live sessions survive.
func (st *state) reset() {
	st.products = defaultProducts()
	st.categories = defaultCategories()
	st.settings = defaultSettings()
	st.promotions = defaultPromotions()
	st.orders = []model.Order{}
	st.collections = make(map[string]json.RawMessage, len(model.AuxCollections))
	for _, name := range model.AuxCollections {
		st.collections[name] = json.RawMessage("[]")
	}
	st.users = make(map[model.IdentityKey]model.UserRecord)
	st.pointers = make(map[uuid.UUID]model.IdentityKey)
}

// session is one browsing context. record mirrors the stored user record while logged in.
type session struct {
	id          uuid.UUID
	identity    model.IdentityKey
	admin       bool
	record      model.UserRecord
	lastOrderID string
	pendingOTP  model.IdentityKey
	checkout    checkoutFlow
	draft       productDraft
}

func newSession(id uuid.UUID) *session {
	return &session{
		id:     id,
		record: model.UserRecord{Cart: model.Cart{}, Wishlist: []string{}},
	}
}

func (s *session) loggedIn() bool {
	return !s.identity.IsZero()
}

// Session is a read-only snapshot of a browsing context.
type Session struct {
	ID          uuid.UUID         `json:"id"`
	Identity    model.IdentityKey `json:"identity,omitempty"`
	LoggedIn    bool              `json:"loggedIn"`
	Admin       bool              `json:"admin"`
	Profile     model.UserProfile `json:"profile"`
	Cart        model.Cart        `json:"cart"`
	Wishlist    []string          `json:"wishlist"`
	Totals      model.Totals      `json:"totals"`
	LastOrderID string            `json:"lastOrderId,omitempty"`
}

func (st *state) snapshot(s *session) Session {
	rec := s.record.Clone()
	return Session{
		ID:          s.id,
		Identity:    s.identity,
		LoggedIn:    s.loggedIn(),
		Admin:       s.admin,
		Profile:     rec.Profile,
		Cart:        rec.Cart,
		Wishlist:    rec.Wishlist,
		Totals:      st.totals(rec.Cart),
		LastOrderID: s.lastOrderID,
	}
}

func (st *state) session(id uuid.UUID) (*session, error) {
	s, ok := st.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// stage writes next as the session's record. Guests are never persisted.
func (st *state) stage(tx *Tx, s *session, next model.UserRecord) error {
	if s.loggedIn() {
		if err := tx.Put(model.UserKey(s.identity), next); err != nil {
			return err
		}
	}
	identity := s.identity
	tx.OnCommit(func() {
		s.record = next
		if !identity.IsZero() {
			st.users[identity] = next.Clone()
		}
	})
	return nil
}

// totals derives the cart view. Shipping applies to any non-empty cart.
func (st *state) totals(cart model.Cart) model.Totals {
	t := model.Totals{CartTotal: cart.Total(), CartCount: cart.Count()}
	if t.CartCount > 0 {
		t.ShippingFee = st.settings.ShippingFee
	}
	t.GrandTotal = t.CartTotal + t.ShippingFee
	return t
}

func (st *state) product(id string) (model.Product, int, error) {
	idx := slices.IndexFunc(st.products, func(p model.Product) bool { return p.ID == id })
	if idx < 0 {
		return model.Product{}, -1, model.ErrNotFound
	}
	return st.products[idx], idx, nil
}

func (st *state) order(id string) (model.Order, int, error) {
	idx := slices.IndexFunc(st.orders, func(o model.Order) bool { return o.ID == id })
	if idx < 0 {
		return model.Order{}, -1, model.ErrNotFound
	}
	return st.orders[idx], idx, nil
}

func event(verb, objectType, objectID string, s *session) model.Event {
	return model.Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		SessionID:  s.id,
		Identity:   s.identity,
	}
}
