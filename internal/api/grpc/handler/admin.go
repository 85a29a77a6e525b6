package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

type promotionsRequest struct {
	AdminView   bool   `json:"adminView"`
	PromotionID string `json:"promotionId"`
}

type chatRequest struct {
	Message string `json:"message"`
	Page    string `json:"page"`
}

type emailCampaignRequest struct {
	Topic        string `json:"topic"`
	DiscountCode string `json:"discountCode"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type draftRequest struct {
	ProductID string `json:"productId"`
}

type textResponse struct {
	Text string `json:"text"`
}

type draftResponse struct {
	Draft service.Draft `json:"draft"`
}

func (h *Storefront) AllOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "all orders", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		orders, err := h.sf.Ledger.All(sid)
		return ordersResponse{Orders: orders}, err
	})
}

func (h *Storefront) LedgerSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "ledger summary", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		summary, err := h.sf.Ledger.Summary(sid)
		return map[string]model.LedgerSummary{"summary": summary}, err
	})
}

func (h *Storefront) Customers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "customers", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		customers, err := h.sf.Ledger.CustomerDirectory(sid)
		return map[string][]model.CustomerStats{"customers": customers}, err
	})
}

func (h *Storefront) Promotions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "promotions", func(ctx context.Context, sid uuid.UUID, in promotionsRequest) (any, error) {
		return h.sf.Promotions.Sync(ctx, sid, in.AdminView)
	})
}

func (h *Storefront) DismissPromotion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "dismiss promotion", func(ctx context.Context, sid uuid.UUID, in promotionsRequest) (any, error) {
		return h.sf.Promotions.Dismiss(ctx, sid, in.PromotionID)
	})
}

func (h *Storefront) ExitIntent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "exit intent", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		return h.sf.Promotions.ExitIntent(ctx, sid)
	})
}

func (h *Storefront) Chat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "chat", func(ctx context.Context, sid uuid.UUID, in chatRequest) (any, error) {
		reply, err := h.sf.Copywriter.Chat(ctx, sid, in.Message, in.Page)
		return map[string]string{"reply": reply}, err
	})
}

func (h *Storefront) MarketingEmail(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "marketing email", func(ctx context.Context, sid uuid.UUID, in emailCampaignRequest) (any, error) {
		text, err := h.sf.Copywriter.MarketingEmail(ctx, sid, in.Topic, in.DiscountCode)
		return textResponse{Text: text}, err
	})
}

func (h *Storefront) SalesInsight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "sales insight", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		text, err := h.sf.Copywriter.SalesInsight(ctx, sid)
		return textResponse{Text: text}, err
	})
}

// GenerateImage returns the storage ref of a generated image, empty when none was produced.
func (h *Storefront) GenerateImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "generate image", func(ctx context.Context, sid uuid.UUID, in promptRequest) (any, error) {
		ref, err := h.sf.Copywriter.ProductImage(ctx, sid, in.Prompt)
		return map[string]string{"ref": ref}, err
	})
}

func (h *Storefront) EditDraft(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "edit draft", func(ctx context.Context, sid uuid.UUID, in draftRequest) (any, error) {
		d, err := h.sf.Workbench.Edit(ctx, sid, in.ProductID)
		return draftResponse{Draft: d}, err
	})
}

func (h *Storefront) Draft(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "draft", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		d, err := h.sf.Workbench.Draft(sid)
		return draftResponse{Draft: d}, err
	})
}

// GenerateDescription schedules a description and returns the draft with the request pending.
func (h *Storefront) GenerateDescription(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "generate description", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		if err := h.sf.Workbench.GenerateDescription(ctx, sid); err != nil {
			return nil, err
		}
		d, err := h.sf.Workbench.Draft(sid)
		return draftResponse{Draft: d}, err
	})
}

func (h *Storefront) GenerateDraftImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "generate draft image", func(ctx context.Context, sid uuid.UUID, in promptRequest) (any, error) {
		if err := h.sf.Workbench.GenerateImage(ctx, sid, in.Prompt); err != nil {
			return nil, err
		}
		d, err := h.sf.Workbench.Draft(sid)
		return draftResponse{Draft: d}, err
	})
}
