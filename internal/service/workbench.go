package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// Draft is the admin's in-progress product edit.
type Draft struct {
	ProductID   string `json:"productId"`
	Description string `json:"description,omitempty"`
	ImageRef    string `json:"imageRef,omitempty"`
	Pending     int    `json:"pending"`
}

type productDraft struct {
	productID   string
	generation  uint64
	description string
	imageRef    string
	pending     int
}

func (d productDraft) view() Draft {
	return Draft{ProductID: d.productID, Description: d.description, ImageRef: d.imageRef, Pending: d.pending}
}

// Workbench runs generation for product drafts in the background. A result lands only
// if the session is still editing the product it was requested for.
type Workbench struct {
	runner    *runner
	state     *state
	assistant model.Assistant
	storage   model.Storage
	logger    *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorkbench(r *runner, st *state, ai model.Assistant, storage model.Storage, l *logger.Logger) *Workbench {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workbench{runner: r, state: st, assistant: ai, storage: storage, logger: l, ctx: ctx, cancel: cancel}
}

// Edit starts editing a product, abandoning any earlier draft and its pending results.
func (w *Workbench) Edit(ctx context.Context, sessionID uuid.UUID, productID string) (Draft, error) {
	var out Draft
	err := w.runner.run(ctx, "edit product", func(tx *Tx) error {
		s, err := w.adminSession(sessionID)
		if err != nil {
			return err
		}
		if _, _, err := w.state.product(productID); err != nil {
			return err
		}
		next := productDraft{productID: productID, generation: s.draft.generation + 1}
		tx.OnCommit(func() { s.draft = next })
		out = next.view()
		return nil
	})
	return out, err
}

// Draft returns the session's current draft.
func (w *Workbench) Draft(sessionID uuid.UUID) (Draft, error) {
	var (
		out Draft
		err error
	)
	w.runner.view(func() {
		var s *session
		if s, err = w.adminSession(sessionID); err == nil {
			out = s.draft.view()
		}
	})
	return out, err
}

// GenerateDescription requests a description for the draft's product.
func (w *Workbench) GenerateDescription(ctx context.Context, sessionID uuid.UUID) error {
	p, gen, err := w.begin(ctx, sessionID)
	if err != nil {
		return err
	}

	w.spawn(func(ctx context.Context) {
		text, err := w.assistant.GenerateProductDescription(ctx, p.Name, p.Category, p.Price)
		if err != nil {
			w.logger.Warn("Workbench: description generation failed", "product_id", p.ID, "error", err)
		}
		w.apply(sessionID, p.ID, gen, func(d *productDraft) {
			if text != "" {
				d.description = text
			}
		})
	})
	return nil
}

// GenerateImage requests an image for the draft's product.
func (w *Workbench) GenerateImage(ctx context.Context, sessionID uuid.UUID, prompt string) error {
	p, gen, err := w.begin(ctx, sessionID)
	if err != nil {
		return err
	}
	if prompt == "" {
		prompt = p.Name
	}

	w.spawn(func(ctx context.Context) {
		ref, err := storeGenerated(ctx, w.assistant, w.storage, w.logger, prompt)
		if err != nil {
			w.logger.Warn("Workbench: image generation failed", "product_id", p.ID, "error", err)
		}
		applied := w.apply(sessionID, p.ID, gen, func(d *productDraft) {
			if ref != "" {
				d.imageRef = ref
			}
		})
		if !applied && ref != "" {
			if err := w.storage.Delete(context.Background(), ref); err != nil {
				w.logger.Warn("Workbench: failed to delete stale image", "ref", ref, "error", err)
			}
		}
	})
	return nil
}

// Wait blocks until every background generation finished.
func (w *Workbench) Wait() {
	w.wg.Wait()
}

// Close cancels background generation and waits for it.
func (w *Workbench) Close() {
	w.cancel()
	w.wg.Wait()
}

func (w *Workbench) adminSession(sessionID uuid.UUID) (*session, error) {
	s, err := w.state.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !s.admin {
		return nil, model.ErrAdminRequired
	}
	return s, nil
}

// begin marks a request pending and captures the product and draft generation.
func (w *Workbench) begin(ctx context.Context, sessionID uuid.UUID) (model.Product, uint64, error) {
	var (
		p   model.Product
		gen uint64
	)
	err := w.runner.run(ctx, "start generation", func(tx *Tx) error {
		s, err := w.adminSession(sessionID)
		if err != nil {
			return err
		}
		if s.draft.productID == "" {
			return model.ErrNotFound
		}
		if p, _, err = w.state.product(s.draft.productID); err != nil {
			return err
		}
		gen = s.draft.generation
		tx.OnCommit(func() { s.draft.pending++ })
		return nil
	})
	return p, gen, err
}

func (w *Workbench) spawn(task func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		task(w.ctx)
	}()
}

// apply runs update if the draft still belongs to productID at generation gen.
func (w *Workbench) apply(sessionID uuid.UUID, productID string, gen uint64, update func(d *productDraft)) bool {
	var applied bool
	err := w.runner.run(context.Background(), "apply draft", func(tx *Tx) error {
		s, err := w.state.session(sessionID)
		if err != nil {
			return err
		}
		if s.draft.productID != productID || s.draft.generation != gen {
			return nil
		}

		next := s.draft
		update(&next)
		next.pending--
		tx.OnCommit(func() { s.draft = next })
		tx.Emit(event(VerbDraftUpdated, "product", productID, s))
		applied = true
		return nil
	})
	if err != nil {
		w.logger.Warn("Workbench: failed to apply draft", "session_id", sessionID, "error", err)
		return false
	}
	if !applied {
		w.logger.Info("Workbench: stale result discarded", "session_id", sessionID, "product_id", productID)
	}
	return applied
}
