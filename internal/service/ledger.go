package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Ledger is the newest-first list of orders and the only place order status changes.
type Ledger struct {
	runner *runner
	state  *state
	clock  model.Clock
	logger *logger.Logger
}

// placeOrder prepends order and stages the whole ledger.
func (st *state) placeOrder(tx *Tx, order model.Order) error {
	next := make([]model.Order, 0, len(st.orders)+1)
	next = append(next, order)
	next = append(next, st.orders...)
	if err := tx.Put(model.KeyOrders, next); err != nil {
		return err
	}
	tx.OnCommit(func() { st.orders = next })
	return nil
}

// setStatus stages a copy of the ledger with one order's status replaced.
func (st *state) setStatus(tx *Tx, idx int, status model.OrderStatus) (model.Order, error) {
	next := make([]model.Order, len(st.orders))
	copy(next, st.orders)
	updated := next[idx].Clone()
	updated.Status = status
	next[idx] = updated

	if err := tx.Put(model.KeyOrders, next); err != nil {
		return model.Order{}, err
	}
	tx.OnCommit(func() { st.orders = next })
	return updated, nil
}

// UpdateStatus sets any valid status on a non-terminal order. Admin only.
func (l *Ledger) UpdateStatus(ctx context.Context, sessionID uuid.UUID, orderID, status string) (model.Order, error) {
	next, err := model.ParseOrderStatus(status)
	if err != nil {
		return model.Order{}, err
	}

	var out model.Order
	err = l.runner.run(ctx, "update order status", func(tx *Tx) error {
		s, err := l.state.session(sessionID)
		if err != nil {
			return err
		}
		if !s.admin {
			return model.ErrAdminRequired
		}
		order, idx, err := l.state.order(orderID)
		if err != nil {
			return err
		}
		if order.Status == next {
			out = order.Clone()
			return nil
		}
		if order.Status.IsTerminal() {
			return model.ErrInvalidTransition
		}

		if out, err = l.state.setStatus(tx, idx, next); err != nil {
			return err
		}
		ev := event(VerbOrderStatus, "order", order.ID, s)
		ev.Metadata = map[string]any{"from": string(order.Status), "to": string(next)}
		tx.Emit(ev)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Cancel cancels the viewer's own non-terminal order after explicit confirmation.
func (l *Ledger) Cancel(ctx context.Context, sessionID uuid.UUID, orderID string, confirmed bool) (model.Order, error) {
	if !confirmed {
		return model.Order{}, model.ErrConfirmationRequired
	}

	var out model.Order
	err := l.runner.run(ctx, "cancel order", func(tx *Tx) error {
		s, err := l.state.session(sessionID)
		if err != nil {
			return err
		}
		if !s.loggedIn() {
			return model.ErrLoginRequired
		}
		order, idx, err := l.state.order(orderID)
		if err != nil {
			return err
		}
		if !ownedBy(order, s) {
			return model.ErrNotOrderOwner
		}
		if order.Status.IsTerminal() {
			return model.ErrInvalidTransition
		}

		if out, err = l.state.setStatus(tx, idx, model.OrderStatusCancelled); err != nil {
			return err
		}
		ev := event(VerbOrderStatus, "order", order.ID, s)
		ev.Metadata = map[string]any{"from": string(order.Status), "to": string(model.OrderStatusCancelled)}
		tx.Emit(ev)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	l.logger.Info("Ledger: order cancelled", "order_id", orderID, "session_id", sessionID)
	return out, nil
}

// ForViewer returns the logged-in viewer's orders, newest first. Guests see none.
func (l *Ledger) ForViewer(sessionID uuid.UUID) ([]model.Order, error) {
	var (
		out []model.Order
		err error
	)
	l.runner.view(func() {
		var s *session
		if s, err = l.state.session(sessionID); err != nil {
			return
		}
		out = []model.Order{}
		if !s.loggedIn() {
			return
		}
		for _, o := range l.state.orders {
			if ownedBy(o, s) {
				out = append(out, o.Clone())
			}
		}
	})
	return out, err
}

// Order returns one order visible to the viewer: their own, a guest's order placed in
// the same session, or any for an admin.
func (l *Ledger) Order(sessionID uuid.UUID, orderID string) (model.Order, error) {
	var (
		out model.Order
		err error
	)
	l.runner.view(func() {
		var s *session
		if s, err = l.state.session(sessionID); err != nil {
			return
		}
		var o model.Order
		if o, _, err = l.state.order(orderID); err != nil {
			return
		}
		if !s.admin && !ownedBy(o, s) {
			err = model.ErrNotFound
			return
		}
		out = o.Clone()
	})
	return out, err
}

// All returns every order. Admin only.
func (l *Ledger) All(sessionID uuid.UUID) ([]model.Order, error) {
	var (
		out []model.Order
		err error
	)
	l.admin(sessionID, &err, func() {
		out = make([]model.Order, 0, len(l.state.orders))
		for _, o := range l.state.orders {
			out = append(out, o.Clone())
		}
	})
	return out, err
}

// Summary aggregates the ledger for the dashboard. Admin only.
func (l *Ledger) Summary(sessionID uuid.UUID) (model.LedgerSummary, error) {
	var (
		out model.LedgerSummary
		err error
	)
	l.admin(sessionID, &err, func() {
		out = l.state.summary(l.clock.Now())
	})
	return out, err
}

// CustomerDirectory lists customers by spend, derived from non-cancelled orders. Admin only.
func (l *Ledger) CustomerDirectory(sessionID uuid.UUID) ([]model.CustomerStats, error) {
	var (
		out []model.CustomerStats
		err error
	)
	l.admin(sessionID, &err, func() {
		out = l.state.customers()
	})
	return out, err
}

func (l *Ledger) admin(sessionID uuid.UUID, errp *error, fn func()) {
	l.runner.view(func() {
		s, err := l.state.session(sessionID)
		if err != nil {
			*errp = err
			return
		}
		if !s.admin {
			*errp = model.ErrAdminRequired
			return
		}
		fn()
	})
}

func (st *state) summary(now time.Time) model.LedgerSummary {
	out := model.LedgerSummary{OrderCount: len(st.orders), Customers: len(st.users)}
	y, m, d := now.Date()
	for _, o := range st.orders {
		if !o.Status.IsTerminal() {
			out.ActiveOrders++
		}
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		out.Revenue += o.Total
		if oy, om, od := o.PlacedAt.In(now.Location()).Date(); oy == y && om == m && od == d {
			out.TodayRevenue += o.Total
		}
	}
	return out
}

func (st *state) customers() []model.CustomerStats {
	byKey := make(map[string]*model.CustomerStats)
	for _, o := range st.orders {
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		key := customerKey(o)
		c, ok := byKey[key]
		if !ok {
			c = &model.CustomerStats{IdentityKey: o.IdentityKey, Name: o.CustomerName, Phone: o.Phone}
			byKey[key] = c
		}
		c.Orders++
		c.Spent += o.Total
		if o.PlacedAt.After(c.LastOrderAt) {
			c.LastOrderAt = o.PlacedAt
			c.Name = o.CustomerName
		}
	}

	out := make([]model.CustomerStats, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spent != out[j].Spent {
			return out[i].Spent > out[j].Spent
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func customerKey(o model.Order) string {
	switch {
	case !o.IdentityKey.IsZero():
		return "id:" + string(o.IdentityKey)
	case o.Phone != "":
		return "phone:" + o.Phone
	default:
		return "name:" + o.CustomerName
	}
}

// ownedBy reports whether the viewer may see o. Keyed orders belong to their identity.
// Unkeyed orders carrying a session id are guest orders, visible only to that session
// while it is still a guest. Orders with neither predate both and are matched against
// the viewer's verified identity, never against editable profile fields.
func ownedBy(o model.Order, s *session) bool {
	switch {
	case !o.IdentityKey.IsZero():
		return s.loggedIn() && o.IdentityKey == s.identity
	case o.SessionID != "":
		return !s.loggedIn() && o.SessionID == s.id.String()
	case !s.loggedIn():
		return false
	case s.identity.IsEmail():
		email := s.identity.String()
		return strings.EqualFold(o.Email, email) || strings.Contains(strings.ToLower(o.CustomerName), email)
	default:
		phone, err := model.NormalizePhone(o.Phone)
		return err == nil && phone == s.identity
	}
}
