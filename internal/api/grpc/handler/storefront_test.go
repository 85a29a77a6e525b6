package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcctx "github.com/dtroode/fyx-storefront/internal/api/grpc/context"
	"github.com/dtroode/fyx-storefront/internal/mocks"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/repository/memory"
	"github.com/dtroode/fyx-storefront/internal/service"
	storagememory "github.com/dtroode/fyx-storefront/internal/storage/memory"
	"github.com/dtroode/fyx-storefront/internal/testutil"
	"github.com/dtroode/fyx-storefront/internal/token"
)

func newHandler(t *testing.T) (*Storefront, *token.JWT) {
	t.Helper()

	products, err := json.Marshal([]model.Product{
		{ID: "mug", Name: "Mug", Price: 300, Category: "Mugs", Stock: 10},
		{ID: "poster", Name: "Poster", Price: 150, Category: "Posters", Stock: 10, Featured: true},
	})
	require.NoError(t, err)
	store := memory.NewStore()
	store.Seed(map[string]string{model.KeyProducts: string(products)})

	sf := service.New(service.Options{
		Store:         store,
		Storage:       storagememory.NewStorage(),
		Logger:        testutil.MakeNoopLogger(),
		AdminEmail:    "admin@fyx.com",
		MerchantUPIID: "merchant@upi",
	})
	require.NoError(t, sf.Load(context.Background()))
	t.Cleanup(sf.Close)

	tm := token.NewJWT("test-secret", time.Hour)
	return NewStorefront(sf, tm, grpcctx.NewManager(), testutil.MakeNoopLogger()), tm
}

func mustStruct(t *testing.T, v map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(v)
	require.NoError(t, err)
	return s
}

func openSession(t *testing.T, h *Storefront) (context.Context, SessionResponse) {
	t.Helper()

	resp, err := h.OpenSession(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	var out SessionResponse
	require.NoError(t, decode(resp, &out))
	require.NotEmpty(t, out.Token)

	ctx := grpcctx.NewManager().SetSessionIDToContext(context.Background(), out.Session.ID)
	return ctx, out
}

func TestServiceDesc(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		assert.False(t, seen[m.MethodName], "duplicate method %s", m.MethodName)
		seen[m.MethodName] = true
		assert.NotNil(t, m.Handler, m.MethodName)
	}
	assert.Len(t, ServiceDesc.Methods, len(methods))
	assert.True(t, seen[MethodOpenSession])
	assert.Equal(t, "/fyx.storefront.v1.Storefront/Cart", FullMethod("Cart"))
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	in := service.AddRequest{
		ProductID: "mug",
		Quantity:  2,
		Options:   map[string]string{"Size": "L"},
		Images:    []model.Image{{ContentType: "image/png", Data: []byte{0, 1, 2}}},
	}
	s, err := encode(in)
	require.NoError(t, err)

	var out service.AddRequest
	require.NoError(t, decode(s, &out))
	assert.Equal(t, in, out)

	empty, err := encode(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.GetFields())

	err = decode(mustStruct(t, map[string]any{"quantity": "two"}), &out)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestServe_RequiresSession(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	_, err := h.Cart(context.Background(), &structpb.Struct{})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestOpenSession_ResumesFromToken(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	_, first := openSession(t, h)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+first.Token))
	resp, err := h.OpenSession(ctx, &structpb.Struct{})
	require.NoError(t, err)

	var again SessionResponse
	require.NoError(t, decode(resp, &again))
	assert.Equal(t, first.Session.ID, again.Session.ID)

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer garbage"))
	resp, err = h.OpenSession(ctx, &structpb.Struct{})
	require.NoError(t, err)
	var fresh SessionResponse
	require.NoError(t, decode(resp, &fresh))
	assert.NotEqual(t, first.Session.ID, fresh.Session.ID, "an unreadable token starts a new session")
}

func TestOpenSession_TokenFailure(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	tm := mocks.NewTokenManager(t)
	tm.On("GenerateSessionToken", mock.AnythingOfType("uuid.UUID")).Return("", assert.AnError)
	h.tokenManager = tm

	_, err := h.OpenSession(context.Background(), &structpb.Struct{})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
}

func TestStorefront_CartAndCheckout(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	ctx, _ := openSession(t, h)

	_, err := h.AddToCart(ctx, mustStruct(t, map[string]any{"productId": "mug", "quantity": 0}))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	resp, err := h.AddToCart(ctx, mustStruct(t, map[string]any{"productId": "mug", "quantity": 2}))
	require.NoError(t, err)
	var totals totalsResponse
	require.NoError(t, decode(resp, &totals))
	assert.Equal(t, model.Totals{CartTotal: 600, CartCount: 2, ShippingFee: 29, GrandTotal: 629}, totals.Totals)

	_, err = h.CheckoutSubmit(ctx, &structpb.Struct{})
	st, _ = status.FromError(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())

	_, err = h.CheckoutContinue(ctx, mustStruct(t, map[string]any{"name": "Asha", "phone": "9876543210", "address": "1 MG Road"}))
	require.NoError(t, err)
	_, err = h.CheckoutProceed(ctx, &structpb.Struct{})
	require.NoError(t, err)
	resp, err = h.CheckoutSelectMethod(ctx, mustStruct(t, map[string]any{"method": "cod"}))
	require.NoError(t, err)
	var checkout checkoutResponse
	require.NoError(t, decode(resp, &checkout))
	assert.True(t, checkout.Checkout.CanSubmit)

	resp, err = h.CheckoutSubmit(ctx, &structpb.Struct{})
	require.NoError(t, err)
	var placed orderResponse
	require.NoError(t, decode(resp, &placed))
	assert.Equal(t, 629.0, placed.Order.Total)
	assert.Equal(t, model.OrderStatusConfirmed, placed.Order.Status)

	resp, err = h.Cart(ctx, &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.GetFields()["totals"].GetStructValue().GetFields()["cartCount"].GetNumberValue())
}

func TestStorefront_LoginAndAdmin(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	ctx, _ := openSession(t, h)

	_, err := h.LedgerSummary(ctx, &structpb.Struct{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.PermissionDenied, st.Code())

	_, err = h.LoginEmail(ctx, mustStruct(t, map[string]any{"email": "nope"}))
	st, _ = status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	resp, err := h.LoginEmail(ctx, mustStruct(t, map[string]any{"email": "Admin@FYX.com"}))
	require.NoError(t, err)
	var login LoginResponse
	require.NoError(t, decode(resp, &login))
	assert.True(t, login.Resolution.Admin)
	assert.True(t, login.Session.LoggedIn)

	resp, err = h.LedgerSummary(ctx, &structpb.Struct{})
	require.NoError(t, err)
	var summary struct {
		Summary model.LedgerSummary `json:"summary"`
	}
	require.NoError(t, decode(resp, &summary))
	assert.Equal(t, 1, summary.Summary.Customers)

	resp, err = h.Products(ctx, mustStruct(t, map[string]any{"sort": "price_low"}))
	require.NoError(t, err)
	var products productsResponse
	require.NoError(t, decode(resp, &products))
	require.Len(t, products.Products, 2)
	assert.Equal(t, "poster", products.Products[0].ID)
}

func TestStorefront_Promotions(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)
	ctx, _ := openSession(t, h)

	resp, err := h.Promotions(ctx, &structpb.Struct{})
	require.NoError(t, err)
	var view model.PromotionView
	require.NoError(t, decode(resp, &view))
	require.NotNil(t, view.Banner)

	resp, err = h.DismissPromotion(ctx, mustStruct(t, map[string]any{"promotionId": view.Banner.ID}))
	require.NoError(t, err)
	view = model.PromotionView{}
	require.NoError(t, decode(resp, &view))
	assert.Nil(t, view.Banner)
}
