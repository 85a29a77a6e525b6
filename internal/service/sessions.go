package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Sessions owns browsing contexts and the identity each one is bound to.
type Sessions struct {
	runner *runner
	state  *state
	logger *logger.Logger
}

// Open returns the session resume refers to. A session unknown in memory is restored
// from its stored pointer when that names a known identity; otherwise a new guest
// session is created.
func (m *Sessions) Open(ctx context.Context, resume uuid.UUID) (Session, error) {
	var out Session
	err := m.runner.run(ctx, "open session", func(tx *Tx) error {
		st := m.state
		if resume != uuid.Nil {
			if s, ok := st.sessions[resume]; ok {
				out = st.snapshot(s)
				return nil
			}
		}

		s := newSession(uuid.New())
		if identity, ok := st.pointers[resume]; ok && resume != uuid.Nil {
			if rec, ok := st.users[identity]; ok {
				s.id = resume
				s.identity = identity
				s.admin = identity == st.adminKey
				s.record = rec.Clone()
			}
		}

		tx.OnCommit(func() { st.sessions[s.id] = s })
		tx.Emit(event(VerbSessionOpened, "session", s.id.String(), s))
		out = st.snapshot(s)
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	m.logger.Debug("Sessions: opened", "session_id", out.ID, "logged_in", out.LoggedIn)
	return out, nil
}

// Get returns a snapshot of the session.
func (m *Sessions) Get(sessionID uuid.UUID) (Session, error) {
	var (
		out Session
		err error
	)
	m.runner.view(func() {
		var s *session
		if s, err = m.state.session(sessionID); err == nil {
			out = m.state.snapshot(s)
		}
	})
	return out, err
}

// Active returns the identity bound to the session, empty for guests.
func (m *Sessions) Active(sessionID uuid.UUID) (model.IdentityKey, error) {
	s, err := m.Get(sessionID)
	return s.Identity, err
}

// SaveProfile replaces the profile with draft. The name is required; the address line
// is assembled from its components when any are given.
func (m *Sessions) SaveProfile(ctx context.Context, sessionID uuid.UUID, draft model.UserProfile) (model.UserProfile, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return model.UserProfile{}, model.ErrNameRequired
	}
	if line := draft.AssembleAddress(); line != "" {
		draft.Address = line
	} else {
		draft.Address = strings.TrimSpace(draft.Address)
	}

	err := m.runner.run(ctx, "save profile", func(tx *Tx) error {
		s, err := m.state.session(sessionID)
		if err != nil {
			return err
		}

		next := s.record.Clone()
		next.Profile = draft
		if err := m.state.stage(tx, s, next); err != nil {
			return err
		}
		tx.Emit(event(VerbProfileSaved, "profile", s.identity.String(), s))
		return nil
	})
	if err != nil {
		return model.UserProfile{}, err
	}
	return draft, nil
}

// bind makes identity the session's active identity. A known identity's stored cart and
// wishlist replace the session's; a new identity is seeded and keeps the guest cart.
func (st *state) bind(tx *Tx, s *session, identity model.IdentityKey, seed model.UserProfile) (bool, error) {
	rec, known := st.users[identity]

	var next model.UserRecord
	if known {
		next = rec.Clone()
	} else {
		next = model.UserRecord{Profile: seed, Cart: s.record.Cart.Clone(), Wishlist: []string{}}
		if err := tx.Put(model.UserKey(identity), next); err != nil {
			return false, err
		}
	}
	if err := tx.Put(model.SessionKey(s.id), identity); err != nil {
		return false, err
	}

	admin := identity == st.adminKey
	tx.OnCommit(func() {
		s.identity = identity
		s.admin = admin
		s.record = next
		s.pendingOTP = ""
		st.users[identity] = next.Clone()
		st.pointers[s.id] = identity
	})

	ev := event(VerbLoggedIn, "identity", identity.String(), s)
	ev.Identity = identity
	ev.Metadata = map[string]any{"new": !known, "admin": admin}
	tx.Emit(ev)

	return !known, nil
}
