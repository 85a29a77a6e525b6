package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/fyx-storefront/internal/api/grpc/middleware"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/service"
)

// SessionResponse carries a session snapshot and, from OpenSession, its token.
type SessionResponse struct {
	Token   string          `json:"token,omitempty"`
	Session service.Session `json:"session"`
}

// LoginResponse is returned by every login method.
type LoginResponse struct {
	Resolution service.Resolution `json:"resolution"`
	Session    service.Session    `json:"session"`
}

type otpRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type federatedRequest struct {
	Account string `json:"account"`
}

type profileRequest struct {
	Profile model.UserProfile `json:"profile"`
}

// OpenSession resumes the session named by a valid bearer token or starts a guest session,
// and returns a fresh token for it.
func (h *Storefront) OpenSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	resume := uuid.Nil
	if token := middleware.BearerToken(ctx); token != "" {
		if id, err := h.tokenManager.ParseSessionToken(token); err == nil {
			resume = id
		} else {
			h.logger.Debug("Storefront handler: stale token ignored", "error", err)
		}
	}

	s, err := h.sf.Sessions.Open(ctx, resume)
	if err != nil {
		h.logger.Error("Storefront handler: open session failed", "error", err)
		return nil, handleError(err)
	}

	token, err := h.tokenManager.GenerateSessionToken(s.ID)
	if err != nil {
		h.logger.Error("Storefront handler: failed to issue session token", "session_id", s.ID, "error", err)
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return encode(SessionResponse{Token: token, Session: s})
}

func (h *Storefront) Session(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "session", func(_ context.Context, sid uuid.UUID, _ empty) (any, error) {
		s, err := h.sf.Sessions.Get(sid)
		return SessionResponse{Session: s}, err
	})
}

// RequestOTP sends the mock code back in the response; there is no SMS delivery.
func (h *Storefront) RequestOTP(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "request otp", func(ctx context.Context, sid uuid.UUID, in otpRequest) (any, error) {
		code, err := h.sf.Identity.RequestOTP(ctx, sid, in.Phone)
		return map[string]string{"code": code}, err
	})
}

func (h *Storefront) VerifyOTP(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "verify otp", func(ctx context.Context, sid uuid.UUID, in otpRequest) (any, error) {
		return h.login(sid, func() (service.Resolution, error) { return h.sf.Identity.VerifyOTP(ctx, sid, in.Code) })
	})
}

func (h *Storefront) LoginEmail(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "login email", func(ctx context.Context, sid uuid.UUID, in emailRequest) (any, error) {
		return h.login(sid, func() (service.Resolution, error) { return h.sf.Identity.LoginEmail(ctx, sid, in.Email) })
	})
}

func (h *Storefront) LoginFederated(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "login federated", func(ctx context.Context, sid uuid.UUID, in federatedRequest) (any, error) {
		return h.login(sid, func() (service.Resolution, error) { return h.sf.Identity.LoginFederated(ctx, sid, in.Account) })
	})
}

func (h *Storefront) Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "logout", func(ctx context.Context, sid uuid.UUID, _ empty) (any, error) {
		if err := h.sf.Identity.Logout(ctx, sid); err != nil {
			return nil, err
		}
		s, err := h.sf.Sessions.Get(sid)
		return SessionResponse{Session: s}, err
	})
}

func (h *Storefront) SaveProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, h, req, "save profile", func(ctx context.Context, sid uuid.UUID, in profileRequest) (any, error) {
		p, err := h.sf.Sessions.SaveProfile(ctx, sid, in.Profile)
		return map[string]model.UserProfile{"profile": p}, err
	})
}

func (h *Storefront) login(sid uuid.UUID, do func() (service.Resolution, error)) (any, error) {
	res, err := do()
	if err != nil {
		return nil, err
	}
	s, err := h.sf.Sessions.Get(sid)
	if err != nil {
		return nil, err
	}
	h.logger.Info("Storefront handler: logged in", "session_id", sid, "new", res.IsNew, "admin", res.Admin)
	return LoginResponse{Resolution: res, Session: s}, nil
}
