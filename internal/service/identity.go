package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// FederatedAccount is a pre-seeded third-party login.
type FederatedAccount struct {
	Email string
	Name  string
}

var federatedAccounts = map[string]FederatedAccount{
	"google": {Email: "user@gmail.com", Name: "Google User"},
	"apple":  {Email: "user@icloud.com", Name: "Apple User"},
}

// Resolution is the outcome of a login.
type Resolution struct {
	Identity model.IdentityKey `json:"identity"`
	IsNew    bool              `json:"isNew"`
	Admin    bool              `json:"admin"`
}

// IdentityResolver turns login input into an identity key and binds it to a session.
type IdentityResolver struct {
	runner *runner
	state  *state
	logger *logger.Logger

	otpCode        string
	loginDelay     time.Duration
	federatedDelay time.Duration
}

// RequestOTP records a pending phone login and returns the one-time code.
func (r *IdentityResolver) RequestOTP(ctx context.Context, sessionID uuid.UUID, phone string) (string, error) {
	identity, err := model.NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	if err := sleep(ctx, r.loginDelay); err != nil {
		return "", err
	}

	err = r.runner.run(ctx, "request otp", func(tx *Tx) error {
		s, err := r.state.session(sessionID)
		if err != nil {
			return err
		}
		tx.OnCommit(func() { s.pendingOTP = identity })
		return nil
	})
	if err != nil {
		return "", err
	}

	r.logger.Info("IdentityResolver: otp issued", "session_id", sessionID)
	return r.otpCode, nil
}

// VerifyOTP completes a pending phone login.
func (r *IdentityResolver) VerifyOTP(ctx context.Context, sessionID uuid.UUID, code string) (Resolution, error) {
	var res Resolution
	err := r.runner.run(ctx, "verify otp", func(tx *Tx) error {
		s, err := r.state.session(sessionID)
		if err != nil {
			return err
		}
		if s.pendingOTP.IsZero() {
			return model.ErrOTPNotRequested
		}
		if strings.TrimSpace(code) != r.otpCode {
			return model.ErrInvalidOTP
		}

		identity := s.pendingOTP
		res, err = r.resolve(tx, s, identity, phoneSeed(identity))
		return err
	})
	if err != nil {
		r.logger.Debug("IdentityResolver: otp rejected", "session_id", sessionID, "error", err)
		return Resolution{}, err
	}
	return res, nil
}

// LoginEmail logs the session in with any address containing "@".
func (r *IdentityResolver) LoginEmail(ctx context.Context, sessionID uuid.UUID, email string) (Resolution, error) {
	identity, err := model.NormalizeEmail(email)
	if err != nil {
		return Resolution{}, err
	}
	return r.login(ctx, sessionID, identity, r.emailSeed(identity), r.loginDelay)
}

// LoginFederated logs the session in with a pre-seeded third-party account.
func (r *IdentityResolver) LoginFederated(ctx context.Context, sessionID uuid.UUID, accountID string) (Resolution, error) {
	account, ok := federatedAccounts[strings.ToLower(strings.TrimSpace(accountID))]
	if !ok {
		return Resolution{}, model.ErrUnknownAccount
	}
	identity, err := model.NormalizeEmail(account.Email)
	if err != nil {
		return Resolution{}, err
	}
	return r.login(ctx, sessionID, identity, model.UserProfile{Name: account.Name, Email: string(identity)}, r.federatedDelay)
}

// Logout returns the session to a guest with an empty cart. The stored record keeps its data.
// A guest session is left as it is, cart included.
func (r *IdentityResolver) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return r.runner.run(ctx, "logout", func(tx *Tx) error {
		s, err := r.state.session(sessionID)
		if err != nil {
			return err
		}
		if !s.loggedIn() {
			return nil
		}
		tx.Delete(model.SessionKey(s.id))
		tx.Emit(event(VerbLoggedOut, "identity", s.identity.String(), s))
		tx.OnCommit(func() {
			s.identity = ""
			s.admin = false
			s.pendingOTP = ""
			s.record = model.UserRecord{Cart: model.Cart{}, Wishlist: []string{}}
			s.checkout = checkoutFlow{}
			s.draft = productDraft{generation: s.draft.generation + 1}
			delete(r.state.pointers, s.id)
		})
		return nil
	})
}

func (r *IdentityResolver) login(ctx context.Context, sessionID uuid.UUID, identity model.IdentityKey, seed model.UserProfile, delay time.Duration) (Resolution, error) {
	if err := sleep(ctx, delay); err != nil {
		return Resolution{}, err
	}

	var res Resolution
	err := r.runner.run(ctx, "login", func(tx *Tx) error {
		s, err := r.state.session(sessionID)
		if err != nil {
			return err
		}
		res, err = r.resolve(tx, s, identity, seed)
		return err
	})
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

func (r *IdentityResolver) resolve(tx *Tx, s *session, identity model.IdentityKey, seed model.UserProfile) (Resolution, error) {
	isNew, err := r.state.bind(tx, s, identity, seed)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Identity: identity, IsNew: isNew, Admin: identity == r.state.adminKey}
	r.logger.Info("IdentityResolver: logged in", "session_id", s.id, "new", isNew, "admin", res.Admin)
	return res, nil
}

func (r *IdentityResolver) emailSeed(identity model.IdentityKey) model.UserProfile {
	name := "User " + strings.SplitN(string(identity), "@", 2)[0]
	if identity == r.state.adminKey && r.state.adminName != "" {
		name = r.state.adminName
	}
	return model.UserProfile{Name: name, Email: string(identity)}
}

func phoneSeed(identity model.IdentityKey) model.UserProfile {
	digits := string(identity)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return model.UserProfile{Name: "Member " + digits, Phone: string(identity)}
}

// sleep simulates the identity provider round trip.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
