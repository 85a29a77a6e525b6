package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// AddRequest describes a new cart line.
type AddRequest struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
	Images    []model.Image     `json:"images,omitempty"`
}

// CartManager applies cart and wishlist mutations.
type CartManager struct {
	runner  *runner
	state   *state
	storage model.Storage
	logger  *logger.Logger
}

// Add appends a line built from the catalog product. Lines are never merged.
func (m *CartManager) Add(ctx context.Context, sessionID uuid.UUID, req AddRequest) (model.Totals, error) {
	if req.Quantity < 1 {
		return model.Totals{}, model.ErrInvalidQuantity
	}

	var err error
	m.runner.view(func() {
		if _, err = m.state.session(sessionID); err != nil {
			return
		}
		var p model.Product
		if p, _, err = m.state.product(req.ProductID); err != nil {
			return
		}
		err = validateLine(p, req)
	})
	if err != nil {
		return model.Totals{}, err
	}

	refs, err := m.upload(ctx, sessionID, req.Images)
	if err != nil {
		return model.Totals{}, err
	}

	var totals model.Totals
	err = m.runner.run(ctx, "add to cart", func(tx *Tx) error {
		s, err := m.state.session(sessionID)
		if err != nil {
			return err
		}
		p, _, err := m.state.product(req.ProductID)
		if err != nil {
			return err
		}
		if err := validateLine(p, req); err != nil {
			return err
		}

		next := s.record.Clone()
		next.Cart = append(next.Cart, model.NewCartItem(p, req.Quantity, req.Options, refs))
		if err := m.state.stage(tx, s, next); err != nil {
			return err
		}
		tx.Emit(event(VerbCartChanged, "cart", p.ID, s))
		totals = m.state.totals(next.Cart)
		return nil
	})
	if err != nil {
		m.discard(refs)
		return model.Totals{}, err
	}
	return totals, nil
}

// Remove deletes exactly the line at index.
func (m *CartManager) Remove(ctx context.Context, sessionID uuid.UUID, index int) (model.Totals, error) {
	var totals model.Totals
	err := m.runner.run(ctx, "remove from cart", func(tx *Tx) error {
		s, err := m.state.session(sessionID)
		if err != nil {
			return err
		}
		cart, err := s.record.Cart.Remove(index)
		if err != nil {
			return err
		}

		next := s.record.Clone()
		next.Cart = cart
		if err := m.state.stage(tx, s, next); err != nil {
			return err
		}
		tx.Emit(event(VerbCartChanged, "cart", "", s))
		totals = m.state.totals(cart)
		return nil
	})
	return totals, err
}

// Cart returns the session's lines and derived totals.
func (m *CartManager) Cart(sessionID uuid.UUID) (model.Cart, model.Totals, error) {
	var (
		cart   model.Cart
		totals model.Totals
		err    error
	)
	m.runner.view(func() {
		var s *session
		if s, err = m.state.session(sessionID); err != nil {
			return
		}
		cart = s.record.Cart.Clone()
		totals = m.state.totals(cart)
	})
	return cart, totals, err
}

// Totals returns the derived cart totals.
func (m *CartManager) Totals(sessionID uuid.UUID) (model.Totals, error) {
	_, totals, err := m.Cart(sessionID)
	return totals, err
}

// ToggleWishlist flips the product's wishlist membership and reports the new state.
// Guests get ErrLoginRequired and nothing changes.
func (m *CartManager) ToggleWishlist(ctx context.Context, sessionID uuid.UUID, productID string) (bool, error) {
	var listed bool
	err := m.runner.run(ctx, "toggle wishlist", func(tx *Tx) error {
		s, err := m.state.session(sessionID)
		if err != nil {
			return err
		}
		if !s.loggedIn() {
			return model.ErrLoginRequired
		}

		next := s.record.Clone()
		if idx := slices.Index(next.Wishlist, productID); idx >= 0 {
			next.Wishlist = slices.Delete(next.Wishlist, idx, idx+1)
		} else {
			if _, _, err := m.state.product(productID); err != nil {
				return err
			}
			next.Wishlist = append(next.Wishlist, productID)
			listed = true
		}

		if err := m.state.stage(tx, s, next); err != nil {
			return err
		}
		tx.Emit(event(VerbWishlistChanged, "product", productID, s))
		return nil
	})
	return listed, err
}

// Wishlist returns the wishlisted products still in the catalog.
func (m *CartManager) Wishlist(sessionID uuid.UUID) ([]model.Product, error) {
	var (
		out []model.Product
		err error
	)
	m.runner.view(func() {
		var s *session
		if s, err = m.state.session(sessionID); err != nil {
			return
		}
		out = make([]model.Product, 0, len(s.record.Wishlist))
		for _, id := range s.record.Wishlist {
			if p, _, err := m.state.product(id); err == nil {
				out = append(out, p)
			}
		}
	})
	return out, err
}

func validateLine(p model.Product, req AddRequest) error {
	if err := p.ValidateOptions(req.Options); err != nil {
		return err
	}
	if len(req.Images) > 0 && !p.AllowCustomImages {
		return model.ErrImagesNotAllowed
	}
	return nil
}

func (m *CartManager) upload(ctx context.Context, sessionID uuid.UUID, images []model.Image) ([]string, error) {
	refs := make([]string, 0, len(images))
	for _, img := range images {
		ref := fmt.Sprintf("uploads/%s/%s", sessionID, uuid.NewString())
		if err := m.storage.Put(ctx, ref, img); err != nil {
			m.discard(refs)
			return nil, fmt.Errorf("failed to store custom image: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// discard removes uploaded blobs of a rejected line.
func (m *CartManager) discard(refs []string) {
	for _, ref := range refs {
		if err := m.storage.Delete(context.Background(), ref); err != nil {
			m.logger.Warn("CartManager: failed to delete orphan upload", "ref", ref, "error", err)
		}
	}
}
