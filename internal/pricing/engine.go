// Package pricing derives the monetary summary for a set of cart lines.
//
// The stage order is fixed: subtotal → discount → taxable base → tax →
// delivery fee → total. The discount is floored and the tax is rounded
// half away from zero; the discount is subtracted before tax is computed,
// so swapping the two changes the result by rounding error.
package pricing

import (
	"shopkart/internal/config"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine computes price summaries from cart lines and an optional coupon.
// ComputeSummary is a pure function of its inputs and the configured
// constants.
type Engine struct {
	taxRate               decimal.Decimal
	freeDeliveryThreshold decimal.Decimal
	flatDeliveryFee       decimal.Decimal
	logger                zerolog.Logger
}

// NewEngine creates a pricing engine from the configured constants.
func NewEngine(cfg config.PricingConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		taxRate:               cfg.TaxRate,
		freeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		flatDeliveryFee:       cfg.FlatDeliveryFee,
		logger:                logger.With().Str("component", "pricing-engine").Logger(),
	}
}

// ComputeSummary derives the full price summary. Malformed lines (missing
// or negative price, non-positive quantity) contribute zero instead of
// failing, and a coupon with a stale rate outside (0, 1) is treated as no
// coupon.
func (e *Engine) ComputeSummary(lines []model.CartLine, coupon *model.Coupon) model.PriceSummary {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.UnitPrice.IsNegative() || line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.LineTotal())
	}

	discount := decimal.Zero
	if coupon.Usable() {
		discount = subtotal.Mul(coupon.DiscountRate).Floor()
	}

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	// Round(0) rounds half away from zero.
	tax := taxable.Mul(e.taxRate).Round(0)

	fee := e.flatDeliveryFee
	if subtotal.IsZero() || subtotal.GreaterThanOrEqual(e.freeDeliveryThreshold) {
		fee = decimal.Zero
	}

	total := taxable.Add(tax).Add(fee)

	summary := model.PriceSummary{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableBase:    taxable,
		TaxAmount:      tax,
		DeliveryFee:    fee,
		Total:          total,
	}

	e.logger.Debug().
		Int("line_count", len(lines)).
		Str("subtotal", subtotal.String()).
		Str("total", total.String()).
		Msg("price summary computed")

	return summary
}
