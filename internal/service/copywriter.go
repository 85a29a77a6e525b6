package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Copywriter fronts the generative service for marketing, insights and customer chat.
// Calls never hold the action lock.
type Copywriter struct {
	runner    *runner
	state     *state
	assistant model.Assistant
	storage   model.Storage
	clock     model.Clock
	logger    *logger.Logger
}

// MarketingEmail drafts a promotional email. Admin only.
func (c *Copywriter) MarketingEmail(ctx context.Context, sessionID uuid.UUID, topic, discountCode string) (string, error) {
	if err := c.requireAdmin(sessionID); err != nil {
		return "", err
	}
	return c.assistant.GenerateMarketingEmail(ctx, topic, discountCode)
}

// SalesInsight asks for advice based on the ledger summary. Admin only.
func (c *Copywriter) SalesInsight(ctx context.Context, sessionID uuid.UUID) (string, error) {
	var summary model.LedgerSummary
	if err := c.requireAdmin(sessionID, func() { summary = c.state.summary(c.clock.Now()) }); err != nil {
		return "", err
	}
	return c.assistant.AnalyzeSalesTrends(ctx, summary.OrderCount, summary.Revenue)
}

// Chat answers a customer message with the page they are on and their cart as context.
func (c *Copywriter) Chat(ctx context.Context, sessionID uuid.UUID, message, page string) (string, error) {
	var (
		totals model.Totals
		err    error
	)
	c.runner.view(func() {
		var s *session
		if s, err = c.state.session(sessionID); err == nil {
			totals = c.state.totals(s.record.Cart)
		}
	})
	if err != nil {
		return "", err
	}

	if page == "" {
		page = "/"
	}
	pageContext := fmt.Sprintf("The customer is currently browsing the page: %s. Their cart has %d items totaling ₹%.2f.",
		page, totals.CartCount, totals.CartTotal)
	return c.assistant.ChatWithCustomer(ctx, message, pageContext)
}

// ProductImage generates an image and stores it, returning its ref or "" when nothing was produced.
func (c *Copywriter) ProductImage(ctx context.Context, sessionID uuid.UUID, prompt string) (string, error) {
	if err := c.requireAdmin(sessionID); err != nil {
		return "", err
	}
	return storeGenerated(ctx, c.assistant, c.storage, c.logger, prompt)
}

func (c *Copywriter) requireAdmin(sessionID uuid.UUID, then ...func()) error {
	var err error
	c.runner.view(func() {
		var s *session
		if s, err = c.state.session(sessionID); err != nil {
			return
		}
		if !s.admin {
			err = model.ErrAdminRequired
			return
		}
		for _, fn := range then {
			fn()
		}
	})
	return err
}

func storeGenerated(ctx context.Context, ai model.Assistant, storage model.Storage, l *logger.Logger, prompt string) (string, error) {
	img, err := ai.GenerateProductImage(ctx, prompt)
	if err != nil || img == nil {
		return "", err
	}

	ref := "generated/" + uuid.NewString()
	if err := storage.Put(ctx, ref, *img); err != nil {
		l.Error("Copywriter: failed to store generated image", "ref", ref, "error", err)
		return "", fmt.Errorf("failed to store generated image: %w", err)
	}
	return ref, nil
}
