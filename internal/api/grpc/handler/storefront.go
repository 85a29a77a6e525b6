package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "fyx.storefront.v1.Storefront"

// MethodOpenSession is the only method callable without a session token.
const MethodOpenSession = "OpenSession"

// FullMethod returns the gRPC path of a storefront method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Storefront handles the storefront gRPC endpoints. Payloads are google.protobuf.Struct
// values carrying the JSON shape of the engine's types.
type Storefront struct {
	sf             *service.Storefront
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewStorefront creates a new Storefront handler.
func NewStorefront(sf *service.Storefront, tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Storefront {
	return &Storefront{
		sf:             sf,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

type unaryMethod func(h *Storefront, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

var methods = []struct {
	name string
	call unaryMethod
}{
	{MethodOpenSession, (*Storefront).OpenSession},
	{"Session", (*Storefront).Session},
	{"RequestOTP", (*Storefront).RequestOTP},
	{"VerifyOTP", (*Storefront).VerifyOTP},
	{"LoginEmail", (*Storefront).LoginEmail},
	{"LoginFederated", (*Storefront).LoginFederated},
	{"Logout", (*Storefront).Logout},
	{"SaveProfile", (*Storefront).SaveProfile},

	{"Products", (*Storefront).Products},
	{"Search", (*Storefront).Search},
	{"Product", (*Storefront).Product},
	{"Catalog", (*Storefront).Catalog},
	{"Collection", (*Storefront).Collection},
	{"AddReview", (*Storefront).AddReview},

	{"AddToCart", (*Storefront).AddToCart},
	{"RemoveFromCart", (*Storefront).RemoveFromCart},
	{"Cart", (*Storefront).Cart},
	{"ToggleWishlist", (*Storefront).ToggleWishlist},
	{"Wishlist", (*Storefront).Wishlist},

	{"CheckoutState", (*Storefront).CheckoutState},
	{"CheckoutContinue", (*Storefront).CheckoutContinue},
	{"CheckoutProceed", (*Storefront).CheckoutProceed},
	{"CheckoutEdit", (*Storefront).CheckoutEdit},
	{"CheckoutSelectMethod", (*Storefront).CheckoutSelectMethod},
	{"CheckoutAttachProof", (*Storefront).CheckoutAttachProof},
	{"CheckoutConfirm", (*Storefront).CheckoutConfirm},
	{"CheckoutSubmit", (*Storefront).CheckoutSubmit},
	{"PaymentIntent", (*Storefront).PaymentIntent},

	{"MyOrders", (*Storefront).MyOrders},
	{"Order", (*Storefront).Order},
	{"CancelOrder", (*Storefront).CancelOrder},
	{"UpdateOrderStatus", (*Storefront).UpdateOrderStatus},
	{"AllOrders", (*Storefront).AllOrders},
	{"LedgerSummary", (*Storefront).LedgerSummary},
	{"Customers", (*Storefront).Customers},

	{"Promotions", (*Storefront).Promotions},
	{"DismissPromotion", (*Storefront).DismissPromotion},
	{"ExitIntent", (*Storefront).ExitIntent},

	{"Chat", (*Storefront).Chat},
	{"MarketingEmail", (*Storefront).MarketingEmail},
	{"SalesInsight", (*Storefront).SalesInsight},
	{"GenerateImage", (*Storefront).GenerateImage},
	{"EditDraft", (*Storefront).EditDraft},
	{"Draft", (*Storefront).Draft},
	{"GenerateDescription", (*Storefront).GenerateDescription},
	{"GenerateDraftImage", (*Storefront).GenerateDraftImage},
}

// ServiceDesc describes the storefront service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*any)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
}

func methodDescs() []grpc.MethodDesc {
	out := make([]grpc.MethodDesc, 0, len(methods))
	for _, m := range methods {
		out = append(out, grpc.MethodDesc{MethodName: m.name, Handler: methodHandler(m.name, m.call)})
	}
	return out
}

func methodHandler(name string, call unaryMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		h := srv.(*Storefront)
		if interceptor == nil {
			return call(h, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(h, ctx, req.(*structpb.Struct))
		})
	}
}

// serve runs fn for the authenticated session with the decoded request.
func serve[In any](ctx context.Context, h *Storefront, req *structpb.Struct, action string, fn func(ctx context.Context, sessionID uuid.UUID, in In) (any, error)) (*structpb.Struct, error) {
	sessionID, ok := h.contextManager.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing session")
	}

	var in In
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	out, err := fn(ctx, sessionID, in)
	if err != nil {
		h.logger.Debug("Storefront handler: "+action+" failed", "session_id", sessionID, "error", err)
		return nil, handleError(err)
	}

	resp, err := encode(out)
	if err != nil {
		h.logger.Error("Storefront handler: failed to encode response", "action", action, "error", err)
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return resp, nil
}

// decode fills dst from the JSON form of req.
func decode(req *structpb.Struct, dst any) error {
	if req == nil {
		return nil
	}
	raw, err := req.MarshalJSON()
	if err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("failed to read request: %v", err))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid request: %v", err))
	}
	return nil
}

// encode converts v, which must marshal to a JSON object, into a Struct.
func encode(v any) (*structpb.Struct, error) {
	if v == nil {
		return &structpb.Struct{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("failed to convert response: %w", err)
	}
	return out, nil
}

type empty struct{}
