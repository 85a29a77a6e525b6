package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/mocks"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/testutil"
)

func TestFallback_Texts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	failure := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(m *mocks.Assistant, text string, err error)
		call    func(f *Fallback) (string, error)
		failed  string
		emptied string
	}{
		{
			name: "description",
			setup: func(m *mocks.Assistant, text string, err error) {
				m.On("GenerateProductDescription", ctx, "Mug", "Mugs", 249.0).Return(text, err).Once()
			},
			call:    func(f *Fallback) (string, error) { return f.GenerateProductDescription(ctx, "Mug", "Mugs", 249) },
			failed:  DescriptionFailed,
			emptied: DescriptionEmpty,
		},
		{
			name: "email",
			setup: func(m *mocks.Assistant, text string, err error) {
				m.On("GenerateMarketingEmail", ctx, "Sale", "").Return(text, err).Once()
			},
			call:    func(f *Fallback) (string, error) { return f.GenerateMarketingEmail(ctx, "Sale", "") },
			failed:  EmailFailed,
			emptied: EmailEmpty,
		},
		{
			name: "trends",
			setup: func(m *mocks.Assistant, text string, err error) {
				m.On("AnalyzeSalesTrends", ctx, 2, 100.0).Return(text, err).Once()
			},
			call:    func(f *Fallback) (string, error) { return f.AnalyzeSalesTrends(ctx, 2, 100) },
			failed:  TrendsFailed,
			emptied: TrendsEmpty,
		},
		{
			name: "chat",
			setup: func(m *mocks.Assistant, text string, err error) {
				m.On("ChatWithCustomer", ctx, "hi", "page").Return(text, err).Once()
			},
			call:    func(f *Fallback) (string, error) { return f.ChatWithCustomer(ctx, "hi", "page") },
			failed:  ChatFailed,
			emptied: ChatEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, c := range []struct {
				text string
				err  error
				want string
			}{
				{text: "real answer", want: "real answer"},
				{err: failure, want: tt.failed},
				{want: tt.emptied},
			} {
				m := mocks.NewAssistant(t)
				tt.setup(m, c.text, c.err)

				out, err := tt.call(NewFallback(m, testutil.MakeNoopLogger()))
				require.NoError(t, err)
				assert.Equal(t, c.want, out)
			}
		})
	}
}

func TestFallback_Image(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := mocks.NewAssistant(t)
	img := &model.Image{ContentType: "image/png", Data: []byte{1}}
	m.On("GenerateProductImage", ctx, "ok").Return(img, nil).Once()
	m.On("GenerateProductImage", ctx, "bad").Return(nil, errors.New("boom")).Once()

	f := NewFallback(m, testutil.MakeNoopLogger())

	got, err := f.GenerateProductImage(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	got, err = f.GenerateProductImage(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFallback_Offline(t *testing.T) {
	t.Parallel()

	f := NewFallback(NewOffline(), testutil.MakeNoopLogger())
	out, err := f.ChatWithCustomer(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, ChatFailed, out)
	assert.Same(t, f, NewFallback(f, nil))
}
