package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

var (
	errMissingToken = errors.New("missing session token")
	errInvalidToken = errors.New("invalid session token")
)

// Authenticate validates bearer session tokens and injects the session ID into context.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns a context with the session ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	sessionID, err := m.authenticateSession(BearerToken(ctx))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return m.contextManager.SetSessionIDToContext(ctx, sessionID), nil
}

func (m *Authenticate) authenticateSession(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, errMissingToken
	}

	sessionID, err := m.tokenManager.ParseSessionToken(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate: token rejected", "error", err)
		return uuid.Nil, errInvalidToken
	}
	if sessionID == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}

	return sessionID, nil
}

// BearerToken returns the bearer token of the incoming request, or "".
func BearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer "))
}
