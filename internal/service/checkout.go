package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
)

// CheckoutStep is a stage of the checkout flow.
type CheckoutStep string

const (
	StepDetails CheckoutStep = "details"
	StepReview  CheckoutStep = "review"
	StepPayment CheckoutStep = "payment"
)

// CheckoutDetails are the shipping contact fields.
type CheckoutDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (d CheckoutDetails) trimmed() CheckoutDetails {
	return CheckoutDetails{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.TrimSpace(d.Phone),
		Address: strings.TrimSpace(d.Address),
	}
}

func (d CheckoutDetails) complete() bool {
	return d.Name != "" && d.Phone != "" && d.Address != ""
}

// CheckoutState is the client view of the flow.
type CheckoutState struct {
	Step      CheckoutStep        `json:"step"`
	Details   CheckoutDetails     `json:"details"`
	Method    model.PaymentMethod `json:"method"`
	ProofRef  string              `json:"proofRef,omitempty"`
	Confirmed bool                `json:"confirmed"`
	CanSubmit bool                `json:"canSubmit"`
	Totals    model.Totals        `json:"totals"`
}

type checkoutFlow struct {
	step       CheckoutStep
	details    CheckoutDetails
	hasDetails bool
	method     model.PaymentMethod
	proofRef   string
	confirmed  bool
}

func (f checkoutFlow) currentStep() CheckoutStep {
	if f.step == "" {
		return StepDetails
	}
	return f.step
}

func (f checkoutFlow) currentMethod() model.PaymentMethod {
	if f.method == "" {
		return model.PaymentMethodUPI
	}
	return f.method
}

// canSubmit: cash on delivery always, UPI only with a proof and the customer's confirmation.
func (f checkoutFlow) canSubmit() bool {
	if f.currentMethod() == model.PaymentMethodCOD {
		return true
	}
	return f.proofRef != "" && f.confirmed
}

// Checkout drives details, review and payment for each session and submits orders.
type Checkout struct {
	runner  *runner
	state   *state
	storage model.Storage
	clock   model.Clock
	logger  *logger.Logger

	merchantUPIID string
	merchantName  string
}

// State returns the flow. Details default to the saved profile.
func (c *Checkout) State(sessionID uuid.UUID) (CheckoutState, error) {
	var (
		out CheckoutState
		err error
	)
	c.runner.view(func() {
		var s *session
		if s, err = c.state.session(sessionID); err == nil {
			out = c.view(s, s.checkout)
		}
	})
	return out, err
}

// Continue submits the details and moves to review.
func (c *Checkout) Continue(ctx context.Context, sessionID uuid.UUID, details CheckoutDetails) (CheckoutState, error) {
	details = details.trimmed()
	return c.step(ctx, sessionID, "checkout continue", func(s *session, f *checkoutFlow) error {
		if f.currentStep() != StepDetails {
			return model.ErrWrongStep
		}
		if !details.complete() {
			return model.ErrDetailsIncomplete
		}
		if len(s.record.Cart) == 0 {
			return model.ErrCartEmpty
		}
		f.details = details
		f.hasDetails = true
		f.step = StepReview
		return nil
	})
}

// ProceedToPayment moves from review to payment.
func (c *Checkout) ProceedToPayment(ctx context.Context, sessionID uuid.UUID) (CheckoutState, error) {
	return c.step(ctx, sessionID, "checkout proceed", func(_ *session, f *checkoutFlow) error {
		if f.currentStep() != StepReview {
			return model.ErrWrongStep
		}
		f.step = StepPayment
		return nil
	})
}

// Edit goes back to details from review or payment.
func (c *Checkout) Edit(ctx context.Context, sessionID uuid.UUID) (CheckoutState, error) {
	return c.step(ctx, sessionID, "checkout edit", func(_ *session, f *checkoutFlow) error {
		if f.currentStep() == StepDetails {
			return model.ErrWrongStep
		}
		f.step = StepDetails
		return nil
	})
}

// SelectMethod chooses UPI or cash on delivery.
func (c *Checkout) SelectMethod(ctx context.Context, sessionID uuid.UUID, method string) (CheckoutState, error) {
	m, err := model.ParsePaymentMethod(method)
	if err != nil {
		return CheckoutState{}, err
	}
	return c.step(ctx, sessionID, "checkout select method", func(_ *session, f *checkoutFlow) error {
		if f.currentStep() != StepPayment {
			return model.ErrWrongStep
		}
		f.method = m
		return nil
	})
}

// AttachProof stores the payment screenshot and records its ref.
func (c *Checkout) AttachProof(ctx context.Context, sessionID uuid.UUID, proof model.Image) (CheckoutState, error) {
	if len(proof.Data) == 0 {
		return CheckoutState{}, model.ErrProofRequired
	}

	var err error
	c.runner.view(func() {
		var s *session
		if s, err = c.state.session(sessionID); err == nil && s.checkout.currentStep() != StepPayment {
			err = model.ErrWrongStep
		}
	})
	if err != nil {
		return CheckoutState{}, err
	}

	ref := fmt.Sprintf("proofs/%s/%s", sessionID, uuid.NewString())
	if err := c.storage.Put(ctx, ref, proof); err != nil {
		return CheckoutState{}, fmt.Errorf("failed to store payment proof: %w", err)
	}

	out, err := c.step(ctx, sessionID, "checkout attach proof", func(_ *session, f *checkoutFlow) error {
		if f.currentStep() != StepPayment {
			return model.ErrWrongStep
		}
		f.proofRef = ref
		return nil
	})
	if err != nil {
		if delErr := c.storage.Delete(context.Background(), ref); delErr != nil {
			c.logger.Warn("Checkout: failed to delete orphan proof", "ref", ref, "error", delErr)
		}
		return CheckoutState{}, err
	}
	return out, nil
}

// ConfirmPayment records the customer's attestation that the UPI payment was made.
func (c *Checkout) ConfirmPayment(ctx context.Context, sessionID uuid.UUID, confirmed bool) (CheckoutState, error) {
	return c.step(ctx, sessionID, "checkout confirm", func(_ *session, f *checkoutFlow) error {
		if f.currentStep() != StepPayment {
			return model.ErrWrongStep
		}
		f.confirmed = confirmed
		return nil
	})
}

// Submit places the order, clears the cart and resets the flow in one commit.
func (c *Checkout) Submit(ctx context.Context, sessionID uuid.UUID) (model.Order, error) {
	var order model.Order
	err := c.runner.run(ctx, "checkout submit", func(tx *Tx) error {
		s, err := c.state.session(sessionID)
		if err != nil {
			return err
		}
		f := s.checkout
		if f.currentStep() != StepPayment {
			return model.ErrWrongStep
		}
		if len(s.record.Cart) == 0 {
			return model.ErrCartEmpty
		}
		if !f.canSubmit() {
			return model.ErrProofRequired
		}

		order, err = c.buildOrder(s, f)
		if err != nil {
			return err
		}
		if err := c.state.placeOrder(tx, order); err != nil {
			return err
		}

		next := s.record.Clone()
		next.Cart = model.Cart{}
		if err := c.state.stage(tx, s, next); err != nil {
			return err
		}
		id := order.ID
		tx.OnCommit(func() {
			s.checkout = checkoutFlow{}
			s.lastOrderID = id
		})

		ev := event(VerbOrderPlaced, "order", order.ID, s)
		ev.Metadata = map[string]any{"orderNumber": order.OrderNumber, "total": order.Total}
		tx.Emit(ev)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	c.logger.Info("Checkout: order placed", "order_id", order.ID, "order_number", order.OrderNumber, "total", order.Total)
	return order.Clone(), nil
}

// PaymentIntent returns the UPI deep link for the current cart's grand total.
func (c *Checkout) PaymentIntent(sessionID uuid.UUID) (string, error) {
	var (
		totals model.Totals
		err    error
	)
	c.runner.view(func() {
		var s *session
		if s, err = c.state.session(sessionID); err == nil {
			totals = c.state.totals(s.record.Cart)
		}
	})
	if err != nil {
		return "", err
	}
	if totals.CartCount == 0 {
		return "", model.ErrCartEmpty
	}

	q := url.Values{}
	q.Set("pa", c.merchantUPIID)
	q.Set("pn", c.merchantName)
	q.Set("am", strconv.FormatFloat(totals.GrandTotal, 'f', -1, 64))
	q.Set("cu", "INR")
	q.Set("tn", "Payment for FYX Order")
	// UPI apps expect %20 rather than "+".
	return "upi://pay?" + strings.ReplaceAll(q.Encode(), "+", "%20"), nil
}

// step applies mutate to a copy of the flow; the copy replaces the flow on success.
func (c *Checkout) step(ctx context.Context, sessionID uuid.UUID, action string, mutate func(s *session, f *checkoutFlow) error) (CheckoutState, error) {
	var out CheckoutState
	err := c.runner.run(ctx, action, func(tx *Tx) error {
		s, err := c.state.session(sessionID)
		if err != nil {
			return err
		}

		next := s.checkout
		if !next.hasDetails {
			next.details = c.prefill(s)
		}
		if err := mutate(s, &next); err != nil {
			return err
		}

		tx.OnCommit(func() { s.checkout = next })
		ev := event(VerbCheckoutStep, "checkout", string(next.currentStep()), s)
		tx.Emit(ev)
		out = c.view(s, next)
		return nil
	})
	return out, err
}

func (c *Checkout) prefill(s *session) CheckoutDetails {
	p := s.record.Profile
	return CheckoutDetails{Name: p.Name, Phone: p.Phone, Address: p.Address}
}

func (c *Checkout) view(s *session, f checkoutFlow) CheckoutState {
	details := f.details
	if !f.hasDetails {
		details = c.prefill(s)
	}
	return CheckoutState{
		Step:      f.currentStep(),
		Details:   details,
		Method:    f.currentMethod(),
		ProofRef:  f.proofRef,
		Confirmed: f.confirmed,
		CanSubmit: f.currentStep() == StepPayment && f.canSubmit(),
		Totals:    c.state.totals(s.record.Cart),
	}
}

func (c *Checkout) buildOrder(s *session, f checkoutFlow) (model.Order, error) {
	suffix, err := orderSuffix()
	if err != nil {
		return model.Order{}, err
	}

	fee := c.state.settings.ShippingFee
	items := s.record.Cart.Clone()
	order := model.Order{
		ID:            uuid.NewString(),
		OrderNumber:   strings.ToUpper(c.state.settings.SiteName) + "-" + suffix,
		IdentityKey:   s.identity,
		SessionID:     s.id.String(),
		CustomerName:  f.details.Name,
		Email:         s.record.Profile.Email,
		Items:         items,
		Total:         items.Total() + fee,
		Shipping:      fee,
		Status:        model.OrderStatusConfirmed,
		PlacedAt:      c.clock.Now(),
		Address:       f.details.Address,
		Phone:         f.details.Phone,
		PaymentMethod: f.currentMethod(),
	}
	if order.PaymentMethod == model.PaymentMethodUPI {
		order.PaymentDetails = &model.PaymentDetails{UPIID: c.merchantUPIID, ProofRef: f.proofRef}
	}
	return order, nil
}

func orderSuffix() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
