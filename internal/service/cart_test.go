package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/mocks"
	"github.com/dtroode/fyx-storefront/internal/model"
)

func TestCart_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     AddRequest
		wantErr error
	}{
		{name: "zero quantity", req: AddRequest{ProductID: "p100", Quantity: 0}, wantErr: model.ErrInvalidQuantity},
		{name: "unknown product", req: AddRequest{ProductID: "nope", Quantity: 1}, wantErr: model.ErrNotFound},
		{name: "unknown option", req: AddRequest{ProductID: "p200", Quantity: 1, Options: map[string]string{"Color": "Red"}}, wantErr: model.ErrInvalidOption},
		{name: "bad option value", req: AddRequest{ProductID: "p200", Quantity: 1, Options: map[string]string{"Size": "A0"}}, wantErr: model.ErrInvalidOption},
		{
			name:    "images not allowed",
			req:     AddRequest{ProductID: "p100", Quantity: 1, Images: []model.Image{{ContentType: "image/png", Data: []byte{1}}}},
			wantErr: model.ErrImagesNotAllowed,
		},
		{name: "valid", req: AddRequest{ProductID: "p200", Quantity: 2, Options: map[string]string{"Size": "A3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
			sid := f.open(t)

			totals, err := f.sf.Cart.Add(context.Background(), sid, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, after, err := f.sf.Cart.Cart(sid)
				require.NoError(t, err)
				assert.Zero(t, after.CartCount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.Totals{CartTotal: 400, CartCount: 2, ShippingFee: 29, GrandTotal: 429}, totals)
		})
	}
}

func TestCart_LinesNeverMerge(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	sid := f.open(t)

	f.add(t, sid, "p100", 1)
	totals := f.add(t, sid, "p100", 2)
	assert.Equal(t, 300.0, totals.CartTotal)
	assert.Equal(t, 3, totals.CartCount)

	cart, _, err := f.sf.Cart.Cart(sid)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
}

func TestCart_Remove(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	ctx := context.Background()
	sid := f.open(t)

	f.add(t, sid, "p100", 1)
	f.add(t, sid, "p200", 1)
	f.add(t, sid, "p50", 1)

	_, err := f.sf.Cart.Remove(ctx, sid, 3)
	assert.ErrorIs(t, err, model.ErrLineOutOfRange)
	_, err = f.sf.Cart.Remove(ctx, sid, -1)
	assert.ErrorIs(t, err, model.ErrLineOutOfRange)

	totals, err := f.sf.Cart.Remove(ctx, sid, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Totals{CartTotal: 150, CartCount: 2, ShippingFee: 29, GrandTotal: 179}, totals)

	cart, _, err := f.sf.Cart.Cart(sid)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, "p100", cart[0].ProductID)
	assert.Equal(t, "p50", cart[1].ProductID)

	for range 2 {
		_, err = f.sf.Cart.Remove(ctx, sid, 0)
		require.NoError(t, err)
	}
	totals, err = f.sf.Cart.Totals(sid)
	require.NoError(t, err)
	assert.Equal(t, model.Totals{}, totals, "an empty cart has no shipping")
}

func TestCart_CustomImages(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	ctx := context.Background()
	sid := f.open(t)

	_, err := f.sf.Cart.Add(ctx, sid, AddRequest{
		ProductID: "p200",
		Quantity:  1,
		Images:    []model.Image{{ContentType: "image/jpeg", Data: []byte("photo")}},
	})
	require.NoError(t, err)

	cart, _, err := f.sf.Cart.Cart(sid)
	require.NoError(t, err)
	require.Len(t, cart[0].UploadedImages, 1)

	img, err := f.storage.Get(ctx, cart[0].UploadedImages[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("photo"), img.Data)
}

func TestCart_UploadsRemovedWhenCommitFails(t *testing.T) {
	t.Parallel()

	store := mocks.NewStore(t)
	store.On("Get", mock.Anything, model.KeyProducts).Return(mustJSON(t, simpleProducts()), nil)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, model.ErrNotFound)
	store.On("List", mock.Anything, mock.Anything).Return(map[string][]byte{}, nil)
	store.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("Commit", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	storage := mocks.NewStorage(t)
	storage.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	storage.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	f := newFixture(t, nil, func(o *Options) {
		o.Store = store
		o.Storage = storage
	})
	ctx := context.Background()
	sid := f.open(t)
	f.login(t, sid, "x@fyx.com")

	_, err := f.sf.Cart.Add(ctx, sid, AddRequest{
		ProductID: "p200",
		Quantity:  1,
		Images:    []model.Image{{ContentType: "image/png", Data: []byte{1}}},
	})
	require.ErrorIs(t, err, assert.AnError)

	cart, _, err := f.sf.Cart.Cart(sid)
	require.NoError(t, err)
	assert.Empty(t, cart, "memory is untouched when the commit fails")
}

func TestWishlist(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]any{model.KeyProducts: simpleProducts()})
	ctx := context.Background()
	sid := f.open(t)

	_, err := f.sf.Cart.ToggleWishlist(ctx, sid, "p100")
	assert.ErrorIs(t, err, model.ErrLoginRequired)
	s, err := f.sf.Sessions.Get(sid)
	require.NoError(t, err)
	assert.Empty(t, s.Wishlist)

	f.login(t, sid, "w@fyx.com")

	_, err = f.sf.Cart.ToggleWishlist(ctx, sid, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	listed, err := f.sf.Cart.ToggleWishlist(ctx, sid, "p100")
	require.NoError(t, err)
	assert.True(t, listed)
	listed, err = f.sf.Cart.ToggleWishlist(ctx, sid, "p50")
	require.NoError(t, err)
	assert.True(t, listed)

	products, err := f.sf.Cart.Wishlist(sid)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Notebook", products[0].Name)

	listed, err = f.sf.Cart.ToggleWishlist(ctx, sid, "p100")
	require.NoError(t, err)
	assert.False(t, listed)

	var rec model.UserRecord
	require.True(t, f.stored(t, model.UserKey("w@fyx.com"), &rec))
	assert.Equal(t, []string{"p50"}, rec.Wishlist)
}
