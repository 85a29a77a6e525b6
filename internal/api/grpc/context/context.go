package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// sessionIDKey is the metadata key holding the authenticated storefront session.
const (
	sessionIDKey string = "session_id"
)

// Manager represents a gRPC context manager for session ID operations.
// It keeps the session ID in incoming gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionIDToContext sets the session ID in the incoming metadata and returns the new context.
// A session ID supplied by the caller in metadata is overwritten.
func (m *Manager) SetSessionIDToContext(ctx context.Context, sessionID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{sessionIDKey: sessionID.String()})
	} else {
		md = md.Copy()
		md.Set(sessionIDKey, sessionID.String())
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetSessionIDFromContext returns the session ID and whether a valid one was present.
func (m *Manager) GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	sessionIDs := md.Get(sessionIDKey)
	if len(sessionIDs) == 0 {
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(sessionIDs[0])
	if err != nil {
		return uuid.Nil, false
	}

	return sessionID, true
}
