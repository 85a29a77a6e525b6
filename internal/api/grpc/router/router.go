package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/fyx-storefront/internal/api/grpc/handler"
	"github.com/dtroode/fyx-storefront/internal/api/grpc/middleware"
	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

// Router builds the gRPC server for the storefront.
type Router struct {
	storefront     *service.Storefront
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a Router serving sf. Session tokens are issued and checked with tokenManager.
func New(
	sf *service.Storefront,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		storefront:     sf,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// authSkip reports whether a call must carry a session token.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return c.FullMethod() != handler.FullMethod(handler.MethodOpenSession)
}

// Register creates the gRPC server with logging and session authentication
// and registers the storefront service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	opts = append(opts, grpc.ChainUnaryInterceptor(
		logging.HandleGRPC,
		selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(authenticate.AuthFunc),
			selector.MatchFunc(authSkip),
		),
	))
	s := grpc.NewServer(opts...)

	s.RegisterService(&handler.ServiceDesc, handler.NewStorefront(r.storefront, r.tokenManager, r.contextManager, r.logger))

	return s
}
