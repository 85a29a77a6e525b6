package assistant

import (
	"context"
	"errors"

	"github.com/dtroode/fyx-storefront/internal/model"
)

// ErrUnavailable is returned by the offline assistant for every call.
var ErrUnavailable = errors.New("generative service not configured")

var _ model.Assistant = Offline{}

// Offline stands in when no API key is configured. Wrapped in Fallback it yields the fixed texts.
type Offline struct{}

func NewOffline() Offline { return Offline{} }

func (Offline) GenerateProductDescription(context.Context, string, string, float64) (string, error) {
	return "", ErrUnavailable
}

func (Offline) GenerateMarketingEmail(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}

func (Offline) AnalyzeSalesTrends(context.Context, int, float64) (string, error) {
	return "", ErrUnavailable
}

func (Offline) ChatWithCustomer(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}

func (Offline) GenerateProductImage(context.Context, string) (*model.Image, error) {
	return nil, ErrUnavailable
}
