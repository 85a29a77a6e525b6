package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

type checkoutResponse struct {
	Checkout service.CheckoutState `json:"checkout"`
}

type orderResponse struct {
	Order model.Order `json:"order"`
}

type ordersResponse struct {
	Orders []model.Order `json:"orders"`
}

type methodRequest struct {
	Method string `json:"method"`
}

type proofRequest struct {
	Proof model.Image `json:"proof"`
}

type confirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

type orderRequest struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}

func checkoutStep(do func() (service.CheckoutState, error)) (any, error) {
	state, err := do()
	return checkoutResponse{Checkout: state}, err
}

func (h *Storefront) CheckoutState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout state", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.State(sid) })
	})
}

func (h *Storefront) CheckoutContinue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout continue", func(ctx context.Context, sid uuid.UUID, in service.CheckoutDetails) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.Continue(ctx, sid, in) })
	})
}

func (h *Storefront) CheckoutProceed(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout proceed", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.ProceedToPayment(ctx, sid) })
	})
}

func (h *Storefront) CheckoutEdit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout edit", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.Edit(ctx, sid) })
	})
}

func (h *Storefront) CheckoutSelectMethod(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout select method", func(ctx context.Context, sid uuid.UUID, in methodRequest) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.SelectMethod(ctx, sid, in.Method) })
	})
}

func (h *Storefront) CheckoutAttachProof(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout attach proof", func(ctx context.Context, sid uuid.UUID, in proofRequest) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.AttachProof(ctx, sid, in.Proof) })
	})
}

func (h *Storefront) CheckoutConfirm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout confirm", func(ctx context.Context, sid uuid.UUID, in confirmRequest) (any, error) {
		return checkoutStep(func() (service.CheckoutState, error) { return h.sf.Checkout.ConfirmPayment(ctx, sid, in.Confirmed) })
	})
}

func (h *Storefront) CheckoutSubmit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "checkout submit", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		order, err := h.sf.Checkout.Submit(ctx, sid)
		if err == nil {
			h.logger.Info("Storefront handler: order placed", "session_id", sid, "order_number", order.OrderNumber, "total", order.Total)
		}
		return orderResponse{Order: order}, err
	})
}

// PaymentIntent returns the UPI deep link for the current cart total.
func (h *Storefront) PaymentIntent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "payment intent", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		link, err := h.sf.Checkout.PaymentIntent(sid)
		return map[string]string{"url": link}, err
	})
}

func (h *Storefront) MyOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "my orders", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		orders, err := h.sf.Ledger.ForViewer(sid)
		return ordersResponse{Orders: orders}, err
	})
}

func (h *Storefront) Order(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "order", func(_ context.Context, sid uuid.UUID, in orderRequest) (any, error) {
		order, err := h.sf.Ledger.Order(sid, in.OrderID)
		return orderResponse{Order: order}, err
	})
}

func (h *Storefront) CancelOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "cancel order", func(ctx context.Context, sid uuid.UUID, in orderRequest) (any, error) {
		order, err := h.sf.Ledger.Cancel(ctx, sid, in.OrderID, in.Confirmed)
		return orderResponse{Order: order}, err
	})
}

func (h *Storefront) UpdateOrderStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "update order status", func(ctx context.Context, sid uuid.UUID, in orderRequest) (any, error) {
		order, err := h.sf.Ledger.UpdateStatus(ctx, sid, in.OrderID, in.Status)
		return orderResponse{Order: order}, err
	})
}
