package assistant

import (
	"context"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Fixed texts used when the generative service fails or returns nothing.
const (
	DescriptionFailed = "Error generating description. Please write manually."
	DescriptionEmpty  = "No description generated."
	EmailFailed       = "AI Service unavailable."
	EmailEmpty        = "Could not generate email."
	TrendsFailed      = "Keep growing your sales!"
	TrendsEmpty       = "Analysis unavailable."
	ChatFailed        = "Our assistant is currently resting. Please try again later."
	ChatEmpty         = "I'm sorry, I didn't understand that."
)

var _ model.Assistant = (*Fallback)(nil)

// Fallback never fails: errors and empty answers become fixed texts, images become nil.
type Fallback struct {
	next   model.Assistant
	logger *logger.Logger
}

func NewFallback(next model.Assistant, l *logger.Logger) *Fallback {
	if f, ok := next.(*Fallback); ok {
		return f
	}
	return &Fallback{next: next, logger: l}
}

func (f *Fallback) GenerateProductDescription(ctx context.Context, name, category string, price float64) (string, error) {
	text, err := f.next.GenerateProductDescription(ctx, name, category, price)
	return f.pick("description", text, err, DescriptionFailed, DescriptionEmpty), nil
}

func (f *Fallback) GenerateMarketingEmail(ctx context.Context, topic, discountCode string) (string, error) {
	text, err := f.next.GenerateMarketingEmail(ctx, topic, discountCode)
	return f.pick("email", text, err, EmailFailed, EmailEmpty), nil
}

func (f *Fallback) AnalyzeSalesTrends(ctx context.Context, orderCount int, revenue float64) (string, error) {
	text, err := f.next.AnalyzeSalesTrends(ctx, orderCount, revenue)
	return f.pick("trends", text, err, TrendsFailed, TrendsEmpty), nil
}

func (f *Fallback) ChatWithCustomer(ctx context.Context, message, pageContext string) (string, error) {
	text, err := f.next.ChatWithCustomer(ctx, message, pageContext)
	return f.pick("chat", text, err, ChatFailed, ChatEmpty), nil
}

func (f *Fallback) GenerateProductImage(ctx context.Context, prompt string) (*model.Image, error) {
	img, err := f.next.GenerateProductImage(ctx, prompt)
	if err != nil {
		f.logger.Warn("Assistant: image generation failed", "error", err)
		return nil, nil
	}
	return img, nil
}

func (f *Fallback) pick(call, text string, err error, failed, empty string) string {
	if err != nil {
		f.logger.Warn("Assistant: call failed, using fallback", "call", call, "error", err)
		return failed
	}
	if text == "" {
		return empty
	}
	return text
}
