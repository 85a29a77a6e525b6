package service

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Product listing orders.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

const categoryAll = "All"

// Catalog serves products, settings and the admin-owned collections.
type Catalog struct {
	runner *runner
	state  *state
	clock  model.Clock
	logger *logger.Logger
}

// Products lists a category ("" or "All" for everything) in the requested order.
func (c *Catalog) Products(category, sortBy string) []model.Product {
	var out []model.Product
	c.runner.view(func() {
		out = make([]model.Product, 0, len(c.state.products))
		for _, p := range c.state.products {
			if category == "" || category == categoryAll || p.Category == category {
				out = append(out, cloneProduct(p))
			}
		}
	})

	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}
	return out
}

// Search matches name or category, case-insensitively. An empty query matches nothing.
func (c *Catalog) Search(query string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Product{}
	if q == "" {
		return out
	}

	c.runner.view(func() {
		for _, p := range c.state.products {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
				out = append(out, cloneProduct(p))
			}
		}
	})
	return out
}

func (c *Catalog) Product(id string) (model.Product, error) {
	var (
		out model.Product
		err error
	)
	c.runner.view(func() {
		if out, _, err = c.state.product(id); err == nil {
			out = cloneProduct(out)
		}
	})
	return out, err
}

func (c *Catalog) Categories() []string {
	var out []string
	c.runner.view(func() { out = slices.Clone(c.state.categories) })
	return out
}

func (c *Catalog) Settings() model.Settings {
	var out model.Settings
	c.runner.view(func() { out = c.state.settings })
	return out
}

// Collection returns an admin collection (tickets, faqs, ...) as stored.
func (c *Catalog) Collection(name string) (json.RawMessage, error) {
	var (
		out json.RawMessage
		ok  bool
	)
	c.runner.view(func() {
		var raw json.RawMessage
		if raw, ok = c.state.collections[name]; ok {
			out = slices.Clone(raw)
		}
	})
	if !ok {
		return nil, model.ErrNotFound
	}
	return out, nil
}

// AddReview prepends a review by the logged-in viewer.
func (c *Catalog) AddReview(ctx context.Context, sessionID uuid.UUID, productID string, rating int, text string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, model.ErrInvalidRating
	}

	var review model.Review
	err := c.runner.run(ctx, "add review", func(tx *Tx) error {
		s, err := c.state.session(sessionID)
		if err != nil {
			return err
		}
		if !s.loggedIn() {
			return model.ErrLoginRequired
		}
		p, idx, err := c.state.product(productID)
		if err != nil {
			return err
		}

		review = model.Review{
			ID:       uuid.NewString(),
			UserName: s.record.Profile.Name,
			Rating:   rating,
			Text:     strings.TrimSpace(text),
			Date:     c.clock.Now().Format("Jan 2, 2006"),
		}
		p = cloneProduct(p)
		p.Reviews = append([]model.Review{review}, p.Reviews...)

		next := slices.Clone(c.state.products)
		next[idx] = p
		if err := tx.Put(model.KeyProducts, next); err != nil {
			return err
		}
		tx.OnCommit(func() { c.state.products = next })
		tx.Emit(event(VerbReviewAdded, "product", p.ID, s))
		return nil
	})
	if err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func cloneProduct(p model.Product) model.Product {
	p.Reviews = slices.Clone(p.Reviews)
	opts := make([]model.ProductOption, len(p.Options))
	for i, o := range p.Options {
		opts[i] = model.ProductOption{Name: o.Name, Values: slices.Clone(o.Values)}
	}
	if p.Options != nil {
		p.Options = opts
	}
	return p
}
