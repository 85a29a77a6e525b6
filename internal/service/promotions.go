package service

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// PromotionScheduler decides which banner and popup each session sees.
// Dismissals are per session and last until the engine is reloaded.
type PromotionScheduler struct {
	runner *runner
	state  *state
	clock  model.Clock
	logger *logger.Logger
	rules  *audienceRules

	mu       sync.Mutex
	sessions map[uuid.UUID]*promoState
	closed   bool
}

type promoState struct {
	dismissed map[string]bool
	candidate string
	shown     *model.Promotion
	armed     *model.Promotion
	pending   *model.Promotion
	timer     model.Timer
	seq       uint64
}

func (ps *promoState) clearPopup() {
	if ps.timer != nil {
		ps.timer.Stop()
		ps.timer = nil
	}
	ps.seq++
	ps.pending = nil
	ps.shown = nil
	ps.armed = nil
}

func newPromotionScheduler(r *runner, st *state, clock model.Clock, l *logger.Logger) *PromotionScheduler {
	return &PromotionScheduler{
		runner:   r,
		state:    st,
		clock:    clock,
		logger:   l,
		rules:    newAudienceRules(),
		sessions: make(map[uuid.UUID]*promoState),
	}
}

// Sync re-evaluates the session's promotions and returns what to render.
// Admin views never get a popup and cancel any pending one.
func (p *PromotionScheduler) Sync(ctx context.Context, sessionID uuid.UUID, adminView bool) (model.PromotionView, error) {
	promos, env, admin, err := p.snapshot(sessionID)
	if err != nil {
		return model.PromotionView{}, err
	}

	p.mu.Lock()
	ps := p.get(sessionID)
	view, shown := p.evaluate(sessionID, ps, promos, env, adminView && admin)
	p.mu.Unlock()

	p.notifyShown(ctx, sessionID, shown)
	return view, nil
}

// ExitIntent shows an armed exit-intent popup.
func (p *PromotionScheduler) ExitIntent(ctx context.Context, sessionID uuid.UUID) (model.PromotionView, error) {
	promos, env, _, err := p.snapshot(sessionID)
	if err != nil {
		return model.PromotionView{}, err
	}

	p.mu.Lock()
	ps := p.get(sessionID)
	view, shown := p.evaluate(sessionID, ps, promos, env, false)
	if ps.armed != nil && ps.shown == nil {
		ps.shown, ps.armed = ps.armed, nil
		shown = ps.shown
		view.Popup = copyPromotion(ps.shown)
	}
	p.mu.Unlock()

	p.notifyShown(ctx, sessionID, shown)
	return view, nil
}

// Dismiss hides a closable promotion for the rest of the session.
func (p *PromotionScheduler) Dismiss(ctx context.Context, sessionID uuid.UUID, promotionID string) (model.PromotionView, error) {
	promos, env, _, err := p.snapshot(sessionID)
	if err != nil {
		return model.PromotionView{}, err
	}
	idx := slices.IndexFunc(promos, func(pr model.Promotion) bool { return pr.ID == promotionID })
	if idx < 0 {
		return model.PromotionView{}, model.ErrNotFound
	}
	if !promos[idx].Closable {
		return model.PromotionView{}, model.ErrNotClosable
	}

	p.mu.Lock()
	ps := p.get(sessionID)
	ps.dismissed[promotionID] = true
	if ps.candidate == promotionID {
		ps.clearPopup()
		ps.candidate = ""
	}
	view, shown := p.evaluate(sessionID, ps, promos, env, false)
	p.mu.Unlock()

	p.logger.Debug("PromotionScheduler: dismissed", "session_id", sessionID, "promotion_id", promotionID)
	p.notifyShown(ctx, sessionID, shown)
	return view, nil
}

// Close stops every pending popup timer.
func (p *PromotionScheduler) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for _, ps := range p.sessions {
		ps.clearPopup()
	}
}

// reset forgets every session's dismissals and popups.
func (p *PromotionScheduler) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ps := range p.sessions {
		ps.clearPopup()
	}
	p.sessions = make(map[uuid.UUID]*promoState)
}

func (p *PromotionScheduler) snapshot(sessionID uuid.UUID) ([]model.Promotion, map[string]any, bool, error) {
	var (
		promos []model.Promotion
		env    map[string]any
		admin  bool
		err    error
	)
	p.runner.view(func() {
		var s *session
		if s, err = p.state.session(sessionID); err != nil {
			return
		}
		promos = slices.Clone(p.state.promotions)
		cart := s.record.Cart
		env = audienceEnv(cart.Total(), cart.Count(), s.loggedIn(), len(s.record.Wishlist))
		admin = s.admin
	})
	return promos, env, admin, err
}

func (p *PromotionScheduler) get(sessionID uuid.UUID) *promoState {
	ps, ok := p.sessions[sessionID]
	if !ok {
		ps = &promoState{dismissed: make(map[string]bool)}
		p.sessions[sessionID] = ps
	}
	return ps
}

// evaluate must run under p.mu. It returns the view and a popup that just became visible.
func (p *PromotionScheduler) evaluate(sessionID uuid.UUID, ps *promoState, promos []model.Promotion, env map[string]any, adminView bool) (model.PromotionView, *model.Promotion) {
	view := model.PromotionView{Banner: p.first(model.PromotionBanner, ps, promos, env)}
	if adminView || p.closed {
		ps.clearPopup()
		ps.candidate = ""
		return view, nil
	}

	var shown *model.Promotion
	cand := p.first(model.PromotionPopup, ps, promos, env)
	switch {
	case cand == nil:
		if ps.candidate != "" {
			ps.clearPopup()
			ps.candidate = ""
		}
	case cand.ID != ps.candidate:
		ps.clearPopup()
		ps.candidate = cand.ID
		shown = p.offer(sessionID, ps, cand)
	default:
		// Same candidate: pick up edits without restarting its rule.
		if ps.shown != nil {
			ps.shown = cand
		}
		if ps.armed != nil {
			ps.armed = cand
		}
		if ps.pending != nil {
			ps.pending = cand
		}
	}

	view.Popup = copyPromotion(ps.shown)
	return view, shown
}

func (p *PromotionScheduler) offer(sessionID uuid.UUID, ps *promoState, cand *model.Promotion) *model.Promotion {
	switch cand.DisplayRule {
	case model.DisplayExitIntent:
		ps.armed = cand
		return nil
	case model.DisplayDelay:
		if d := cand.Delay(); d > 0 {
			seq := ps.seq
			ps.pending = cand
			ps.timer = p.clock.AfterFunc(d, func() { p.fire(sessionID, seq) })
			return nil
		}
	}
	ps.shown = cand
	return cand
}

// fire shows a delayed popup unless it was cancelled since being scheduled or the
// session no longer qualifies for it.
func (p *PromotionScheduler) fire(sessionID uuid.UUID, seq uint64) {
	promos, env, _, err := p.snapshot(sessionID)
	if err != nil {
		return
	}

	p.mu.Lock()
	ps, ok := p.sessions[sessionID]
	if !ok || p.closed || ps.seq != seq || ps.pending == nil || ps.dismissed[ps.pending.ID] {
		p.mu.Unlock()
		return
	}
	if cand := p.first(model.PromotionPopup, ps, promos, env); cand == nil || cand.ID != ps.pending.ID {
		ps.clearPopup()
		ps.candidate = ""
		p.mu.Unlock()
		p.logger.Debug("PromotionScheduler: delayed popup no longer eligible", "session_id", sessionID)
		return
	}
	ps.shown, ps.pending, ps.timer = ps.pending, nil, nil
	shown := ps.shown
	p.mu.Unlock()

	p.notifyShown(context.Background(), sessionID, shown)
}

func (p *PromotionScheduler) first(kind model.PromotionType, ps *promoState, promos []model.Promotion, env map[string]any) *model.Promotion {
	for i := range promos {
		pr := promos[i]
		if pr.Type != kind || pr.Status != model.PromotionActive || ps.dismissed[pr.ID] {
			continue
		}
		ok, err := p.rules.eval(pr.Audience, env)
		if err != nil {
			p.logger.Warn("PromotionScheduler: audience rule failed", "promotion_id", pr.ID, "error", err)
			continue
		}
		if ok {
			return &pr
		}
	}
	return nil
}

func (p *PromotionScheduler) notifyShown(ctx context.Context, sessionID uuid.UUID, shown *model.Promotion) {
	if shown == nil {
		return
	}
	p.logger.Debug("PromotionScheduler: popup shown", "session_id", sessionID, "promotion_id", shown.ID)
	p.runner.emitter.Emit(ctx, model.Event{
		Verb:       VerbPopupShown,
		ObjectType: "promotion",
		ObjectID:   shown.ID,
		SessionID:  sessionID,
		OccurredAt: p.clock.Now(),
	})
}

func copyPromotion(pr *model.Promotion) *model.Promotion {
	if pr == nil {
		return nil
	}
	out := *pr
	return &out
}
