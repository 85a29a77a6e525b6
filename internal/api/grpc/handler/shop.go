package handler

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

type productsResponse struct {
	Products []model.Product `json:"products"`
}

type totalsResponse struct {
	Totals model.Totals `json:"totals"`
}

type listingRequest struct {
	Category string `json:"category"`
	Sort     string `json:"sort"`
	Query    string `json:"query"`
}

type idRequest struct {
	ID string `json:"id"`
}

type reviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

type removeRequest struct {
	Index int `json:"index"`
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *Storefront) Products(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "products", func(_ context.Context, _ uuid.UUID, in listingRequest) (any, error) {
		return productsResponse{Products: h.sf.Catalog.Products(in.Category, in.Sort)}, nil
	})
}

func (h *Storefront) Search(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "search", func(_ context.Context, _ uuid.UUID, in listingRequest) (any, error) {
		return productsResponse{Products: h.sf.Catalog.Search(in.Query)}, nil
	})
}

func (h *Storefront) Product(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "product", func(_ context.Context, _ uuid.UUID, in idRequest) (any, error) {
		p, err := h.sf.Catalog.Product(in.ID)
		return map[string]model.Product{"product": p}, err
	})
}

// Catalog returns the categories and store settings.
func (h *Storefront) Catalog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "catalog", func(_ context.Context, _ uuid.UUID, _ empty) (any, error) {
		return struct {
			Categories []string       `json:"categories"`
			Settings   model.Settings `json:"settings"`
		}{h.sf.Catalog.Categories(), h.sf.Catalog.Settings()}, nil
	})
}

func (h *Storefront) Collection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "collection", func(_ context.Context, _ uuid.UUID, in idRequest) (any, error) {
		items, err := h.sf.Catalog.Collection(in.ID)
		return map[string]json.RawMessage{"items": items}, err
	})
}

func (h *Storefront) AddReview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "add review", func(ctx context.Context, sid uuid.UUID, in reviewRequest) (any, error) {
		r, err := h.sf.Catalog.AddReview(ctx, sid, in.ProductID, in.Rating, in.Text)
		return map[string]model.Review{"review": r}, err
	})
}

func (h *Storefront) AddToCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "add to cart", func(ctx context.Context, sid uuid.UUID, in service.AddRequest) (any, error) {
		totals, err := h.sf.Cart.Add(ctx, sid, in)
		return totalsResponse{Totals: totals}, err
	})
}

func (h *Storefront) RemoveFromCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "remove from cart", func(ctx context.Context, sid uuid.UUID, in removeRequest) (any, error) {
		totals, err := h.sf.Cart.Remove(ctx, sid, in.Index)
		return totalsResponse{Totals: totals}, err
	})
}

func (h *Storefront) Cart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "cart", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		cart, totals, err := h.sf.Cart.Cart(sid)
		return struct {
			Cart   model.Cart   `json:"cart"`
			Totals model.Totals `json:"totals"`
		}{cart, totals}, err
	})
}

func (h *Storefront) ToggleWishlist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "toggle wishlist", func(ctx context.Context, sid uuid.UUID, in wishlistRequest) (any, error) {
		listed, err := h.sf.Cart.ToggleWishlist(ctx, sid, in.ProductID)
		return map[string]bool{"listed": listed}, err
	})
}

func (h *Storefront) Wishlist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "wishlist", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		products, err := h.sf.Cart.Wishlist(sid)
		return productsResponse{Products: products}, err
	})
}
