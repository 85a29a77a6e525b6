package handler

import (
	"context"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls storefront methods over a connection, carrying the session token.
type Client struct {
	conn grpc.ClientConnInterface

	mu    sync.RWMutex
	token string
}

// NewClient creates a client using conn. Call OpenSession before anything else.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// OpenSession opens (or resumes) a session and keeps its token for later calls.
func (c *Client) OpenSession(ctx context.Context) (SessionResponse, error) {
	var out SessionResponse
	if err := c.Call(ctx, MethodOpenSession, nil, &out); err != nil {
		return SessionResponse{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token, e.g. to resume a stored session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Call invokes method with in encoded as a Struct and decodes the response into out.
// Either may be nil.
func (c *Client) Call(ctx context.Context, method string, in, out any) error {
	req, err := encode(in)
	if err != nil {
		return err
	}

	if token := c.Token(); token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, FullMethod(method), req, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(resp, out)
}
