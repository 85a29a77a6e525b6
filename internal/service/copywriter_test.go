package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/assistant"
	"github.com/dtroode/fyx-storefront/internal/mocks"
	"github.com/dtroode/fyx-storefront/internal/model"
)

func TestCopywriter_AdminOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, withAssistant(mocks.NewAssistant(t)))
	ctx := context.Background()
	sid := f.open(t)

	_, err := f.sf.Copywriter.MarketingEmail(ctx, sid, "Diwali", "LIGHTS10")
	assert.ErrorIs(t, err, model.ErrAdminRequired)
	_, err = f.sf.Copywriter.SalesInsight(ctx, sid)
	assert.ErrorIs(t, err, model.ErrAdminRequired)
	_, err = f.sf.Copywriter.ProductImage(ctx, sid, "mug")
	assert.ErrorIs(t, err, model.ErrAdminRequired)
}

func TestCopywriter_MarketingEmail(t *testing.T) {
	t.Parallel()

	ai := mocks.NewAssistant(t)
	ai.On("GenerateMarketingEmail", mock.Anything, "Diwali", "LIGHTS10").Return("Subject: Lights!", nil).Once()
	ai.On("GenerateMarketingEmail", mock.Anything, "Holi", "").Return("", nil).Once()

	f := newFixture(t, nil, withAssistant(ai))
	ctx := context.Background()
	sid := f.open(t)
	f.login(t, sid, testAdminEmail)

	text, err := f.sf.Copywriter.MarketingEmail(ctx, sid, "Diwali", "LIGHTS10")
	require.NoError(t, err)
	assert.Equal(t, "Subject: Lights!", text)

	text, err = f.sf.Copywriter.MarketingEmail(ctx, sid, "Holi", "")
	require.NoError(t, err)
	assert.Equal(t, assistant.EmailEmpty, text)
}

func TestCopywriter_SalesInsight(t *testing.T) {
	t.Parallel()

	ai := mocks.NewAssistant(t)
	ai.On("AnalyzeSalesTrends", mock.Anything, 2, 300.0).Return("Push mugs.", nil).Once()

	f := newFixture(t, map[string]any{model.KeyOrders: []model.Order{
		{ID: "a", Total: 300, Status: model.OrderStatusDelivered},
		{ID: "b", Total: 80, Status: model.OrderStatusCancelled},
	}}, withAssistant(ai))
	sid := f.open(t)
	f.login(t, sid, testAdminEmail)

	text, err := f.sf.Copywriter.SalesInsight(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "Push mugs.", text)
}

func TestCopywriter_Chat(t *testing.T) {
	t.Parallel()

	ai := mocks.NewAssistant(t)
	ai.On("ChatWithCustomer", mock.Anything, "do you ship to Goa?",
		"The customer is currently browsing the page: /product/p200. Their cart has 3 items totaling ₹400.00.").
		Return("Yes, we do.", nil).Once()
	ai.On("ChatWithCustomer", mock.Anything, "hello",
		"The customer is currently browsing the page: /. Their cart has 0 items totaling ₹0.00.").
		Return("", assert.AnError).Once()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()}, withAssistant(ai))
	ctx := context.Background()

	shopper := f.open(t)
	f.add(t, shopper, "p200", 1)
	f.add(t, shopper, "p100", 2)

	reply, err := f.sf.Copywriter.Chat(ctx, shopper, "do you ship to Goa?", "/product/p200")
	require.NoError(t, err)
	assert.Equal(t, "Yes, we do.", reply)

	reply, err = f.sf.Copywriter.Chat(ctx, f.open(t), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, assistant.ChatFailed, reply)

	_, err = f.sf.Copywriter.Chat(ctx, testUnknownSession, "hi", "/")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestCopywriter_ProductImage(t *testing.T) {
	t.Parallel()

	ai := mocks.NewAssistant(t)
	ai.On("GenerateProductImage", mock.Anything, "blue mug").
		Return(&model.Image{ContentType: "image/png", Data: []byte("mug")}, nil).Once()
	ai.On("GenerateProductImage", mock.Anything, "nothing").Return(nil, nil).Once()
	ai.On("GenerateProductImage", mock.Anything, "broken").Return(nil, assert.AnError).Once()

	f := newFixture(t, nil, withAssistant(ai))
	ctx := context.Background()
	sid := f.open(t)
	f.login(t, sid, testAdminEmail)

	ref, err := f.sf.Copywriter.ProductImage(ctx, sid, "blue mug")
	require.NoError(t, err)
	img, err := f.storage.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("mug"), img.Data)

	for _, prompt := range []string{"nothing", "broken"} {
		ref, err = f.sf.Copywriter.ProductImage(ctx, sid, prompt)
		require.NoError(t, err)
		assert.Empty(t, ref)
	}
}
