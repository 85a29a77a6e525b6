package model

import "context"

// Assistant is the external generative text/image service.
type Assistant interface {
	GenerateProductDescription(ctx context.Context, name, category string, price float64) (string, error)
	GenerateMarketingEmail(ctx context.Context, topic, discountCode string) (string, error)
	AnalyzeSalesTrends(ctx context.Context, orderCount int, revenue float64) (string, error)
	ChatWithCustomer(ctx context.Context, message, context string) (string, error)
	// GenerateProductImage returns nil when the service produced no image.
	GenerateProductImage(ctx context.Context, prompt string) (*Image, error)
}
