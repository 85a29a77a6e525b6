package service

import (
	"context"
	"io"
	"time"

	"github.com/dtroode/fyx-storefront/internal/assistant"
	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Options configures a Storefront.
type Options struct {
	Store     model.Store
	Storage   model.Storage
	Assistant model.Assistant
	Clock     model.Clock
	Logger    *logger.Logger
	Hooks     Hooks

	OTPCode        string
	AdminEmail     string
	AdminName      string
	LoginDelay     time.Duration
	FederatedDelay time.Duration

	MerchantUPIID string
	MerchantName  string
}

// Storefront is the commerce state engine. Every user action runs alone
// under one lock and persists with at most one store commit.
type Storefront struct {
	Sessions   *Sessions
	Identity   *IdentityResolver
	Cart       *CartManager
	Checkout   *Checkout
	Ledger     *Ledger
	Promotions *PromotionScheduler
	Catalog    *Catalog
	Copywriter *Copywriter
	Workbench  *Workbench

	runner *runner
	state  *state
	store  model.Store
	logger *logger.Logger
}

// New wires the components. Call Load before serving.
func New(opts Options) *Storefront {
	if opts.Logger == nil {
		opts.Logger = logger.NewWithWriter(io.Discard, 0, "text")
	}
	if opts.Clock == nil {
		opts.Clock = model.SystemClock{}
	}
	if opts.Assistant == nil {
		opts.Assistant = assistant.NewOffline()
	}
	if opts.OTPCode == "" {
		opts.OTPCode = "1234"
	}
	if opts.MerchantName == "" {
		opts.MerchantName = "FYX Store"
	}

	adminKey, err := model.NormalizeEmail(opts.AdminEmail)
	if err != nil {
		adminKey = ""
	}

	l := opts.Logger
	ai := assistant.NewFallback(opts.Assistant, l)
	st := newState(adminKey, opts.AdminName)
	r := newRunner(opts.Store, NewEmitter(opts.Hooks, l), opts.Clock, l)

	sf := &Storefront{runner: r, state: st, store: opts.Store, logger: l}
	sf.Sessions = &Sessions{runner: r, state: st, logger: l}
	sf.Identity = &IdentityResolver{
		runner:         r,
		state:          st,
		logger:         l,
		otpCode:        opts.OTPCode,
		loginDelay:     opts.LoginDelay,
		federatedDelay: opts.FederatedDelay,
	}
	sf.Cart = &CartManager{runner: r, state: st, storage: opts.Storage, logger: l}
	sf.Ledger = &Ledger{runner: r, state: st, clock: opts.Clock, logger: l}
	sf.Checkout = &Checkout{
		runner:        r,
		state:         st,
		storage:       opts.Storage,
		clock:         opts.Clock,
		logger:        l,
		merchantUPIID: opts.MerchantUPIID,
		merchantName:  opts.MerchantName,
	}
	sf.Promotions = newPromotionScheduler(r, st, opts.Clock, l)
	sf.Catalog = &Catalog{runner: r, state: st, clock: opts.Clock, logger: l}
	sf.Copywriter = &Copywriter{runner: r, state: st, assistant: ai, storage: opts.Storage, clock: opts.Clock, logger: l}
	sf.Workbench = newWorkbench(r, st, ai, opts.Storage, l)

	return sf
}

// Load hydrates the engine from the store. Each key degrades to its default independently.
// Loading again clears session-scoped promotion state.
func (sf *Storefront) Load(ctx context.Context) error {
	sf.runner.view(func() {
		sf.state.load(ctx, sf.store, sf.logger)
		for _, s := range sf.state.sessions {
			if rec, ok := sf.state.users[s.identity]; ok && s.loggedIn() {
				s.record = rec.Clone()
			}
		}
	})
	sf.Promotions.reset()
	return ctx.Err()
}

// Close stops promotion timers and waits for background drafts.
func (sf *Storefront) Close() {
	sf.Promotions.Close()
	sf.Workbench.Close()
}
