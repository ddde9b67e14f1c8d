// Package checkout drives the final stage of a purchase: input
// validation, the simulated payment wait, and sealing the price
// computation into an immutable invoice.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopkart/internal/cart"
	"shopkart/internal/coupon"
	"shopkart/internal/model"
	"shopkart/internal/pricing"
	"shopkart/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State identifies where a checkout attempt is in its lifecycle.
type State string

const (
	StateIdle              State = "idle"
	StateValidatingInput   State = "validating_input"
	StateProcessingPayment State = "processing_payment"
	StateCommitted         State = "committed"
)

// Request is the full checkout submission.
type Request struct {
	Shipping model.ShippingInfo `json:"shippingInfo"`
	Payment  PaymentDetails     `json:"payment"`
	// CouponCode optionally applies a coupon as part of the submission,
	// replacing any previously applied one.
	CouponCode string `json:"couponCode,omitempty"`
}

// Orchestrator is the only component that produces invoices and clears
// the cart. One orchestrator is active per session; a second checkout
// attempt while one is pending is rejected.
type Orchestrator struct {
	mu            sync.Mutex
	state         State
	appliedCoupon *model.Coupon

	cart    *cart.Store
	engine  *pricing.Engine
	coupons coupon.Validator
	gateway PaymentGateway
	store   storage.Store
	clock   func() time.Time
	logger  zerolog.Logger
}

// NewOrchestrator creates a checkout orchestrator in the Idle state.
func NewOrchestrator(
	cartStore *cart.Store,
	engine *pricing.Engine,
	coupons coupon.Validator,
	gateway PaymentGateway,
	store storage.Store,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		state:   StateIdle,
		cart:    cartStore,
		engine:  engine,
		coupons: coupons,
		gateway: gateway,
		store:   store,
		clock:   time.Now,
		logger:  logger.With().Str("component", "checkout").Logger(),
	}
}

// State returns the current checkout state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ApplyCoupon validates the raw code and, when valid, stores it as the
// applied coupon for subsequent summaries and the final commit. An invalid
// code leaves the applied-coupon state unchanged.
func (o *Orchestrator) ApplyCoupon(rawCode string) (*model.Coupon, error) {
	c, err := o.coupons.Validate(rawCode)
	if err != nil {
		o.logger.Warn().Str("coupon_code", rawCode).Err(err).Msg("coupon rejected")
		return nil, err
	}

	o.mu.Lock()
	o.appliedCoupon = c
	o.mu.Unlock()

	o.logger.Info().Str("coupon_code", c.Code).Msg("coupon applied")

	return c, nil
}

// AppliedCoupon returns the currently applied coupon, or nil.
func (o *Orchestrator) AppliedCoupon() *model.Coupon {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.appliedCoupon
}

// Summary computes the current price summary from a fresh cart snapshot
// and the applied coupon.
func (o *Orchestrator) Summary() model.PriceSummary {
	return o.engine.ComputeSummary(o.cart.Snapshot(), o.AppliedCoupon())
}

// LatestInvoice returns the persisted latest invoice, or nil.
func (o *Orchestrator) LatestInvoice(ctx context.Context) (*model.Invoice, error) {
	return o.store.LoadInvoice(ctx)
}

// Checkout runs a full checkout cycle: guard, input validation, payment
// acknowledgement, final recompute, invoice commit, cart clear. On any
// failure the state machine returns to Idle with the cart untouched and no
// invoice written; the attempt is re-enterable.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (*model.Invoice, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil, model.ErrCheckoutInProgress
	}
	o.state = StateValidatingInput
	appliedCoupon := o.appliedCoupon
	o.mu.Unlock()

	attemptID := uuid.New().String()
	logger := o.logger.With().Str("attempt_id", attemptID).Logger()

	committed := false
	defer func() {
		o.mu.Lock()
		if committed {
			// Committed is terminal for this attempt; the next cycle
			// starts a fresh machine at Idle with the now-empty cart.
			o.state = StateIdle
			o.appliedCoupon = nil
		} else {
			o.state = StateIdle
		}
		o.mu.Unlock()
	}()

	// Guard: cannot leave Idle with an empty cart.
	if len(o.cart.Snapshot()) == 0 {
		logger.Warn().Msg("checkout attempted with empty cart")
		return nil, model.ErrEmptyCart
	}

	if field := req.Shipping.MissingField(); field != "" {
		logger.Warn().Str("field", field).Msg("shipping info incomplete")
		return nil, model.ShippingIncomplete(field)
	}

	if err := validatePaymentDetails(req.Payment); err != nil {
		logger.Warn().Str("method", string(req.Payment.Method)).Err(err).Msg("payment details rejected")
		return nil, err
	}

	if req.CouponCode != "" {
		c, err := o.coupons.Validate(req.CouponCode)
		if err != nil {
			logger.Warn().Str("coupon_code", req.CouponCode).Err(err).Msg("coupon rejected at checkout")
			return nil, err
		}
		appliedCoupon = c
	}

	o.setState(StateProcessingPayment, logger)

	// The authorized amount is computed from the cart as displayed; the
	// commit below recomputes against a fresh snapshot in case the cart
	// changed during the wait.
	displayed := o.engine.ComputeSummary(o.cart.Snapshot(), appliedCoupon)

	if err := o.gateway.Authorize(ctx, displayed.Total, req.Payment.Method); err != nil {
		logger.Warn().Err(err).Msg("payment not acknowledged, attempt abandoned")
		return nil, fmt.Errorf("payment not acknowledged: %w", err)
	}

	lines := o.cart.Snapshot()
	if len(lines) == 0 {
		logger.Warn().Msg("cart emptied during payment wait")
		return nil, model.ErrEmptyCart
	}

	summary := o.engine.ComputeSummary(lines, appliedCoupon)

	items := make([]model.InvoiceItem, len(lines))
	for i, line := range lines {
		items[i] = model.InvoiceItem{
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		}
	}

	now := o.clock()
	invoice := &model.Invoice{
		ID:            fmt.Sprintf("INV%d", now.UnixMilli()),
		CreatedAt:     now,
		Shipping:      req.Shipping,
		Items:         items,
		Summary:       summary,
		PaymentMethod: req.Payment.Method,
	}

	// Commit: write the invoice slot, then clear the cart. If the clear
	// fails the invoice slot is restored so no partially-committed
	// checkout is ever observable.
	previous, err := o.store.LoadInvoice(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read latest invoice slot")
		return nil, model.PersistenceFailure("invoice")
	}

	if err := o.store.SaveInvoice(ctx, invoice); err != nil {
		logger.Error().Err(err).Msg("failed to persist invoice")
		return nil, model.PersistenceFailure("invoice")
	}

	if err := o.cart.Clear(ctx); err != nil {
		if undoErr := o.store.SaveInvoice(ctx, previous); undoErr != nil {
			logger.Error().Err(undoErr).Msg("failed to restore invoice slot after cart clear failure")
		}
		logger.Error().Err(err).Msg("failed to clear cart after payment")
		return nil, err
	}

	committed = true
	o.setState(StateCommitted, logger)

	logger.Info().
		Str("invoice_id", invoice.ID).
		Str("total", summary.Total.String()).
		Str("method", string(req.Payment.Method)).
		Int("item_count", len(items)).
		Msg("checkout committed")

	return invoice, nil
}

func (o *Orchestrator) setState(s State, logger zerolog.Logger) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	logger.Debug().Str("state", string(s)).Msg("checkout state transition")
}
