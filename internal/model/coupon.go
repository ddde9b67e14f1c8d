package model

import "github.com/shopspring/decimal"

// Coupon is a promotional code unlocking a percentage discount on the
// cart subtotal. Coupons come from a static registry and are immutable.
type Coupon struct {
	Code         string          `json:"code"`
	DiscountRate decimal.Decimal `json:"discountRate"`
}

// Usable reports whether the coupon carries a rate the pricing engine can
// apply. A stale or misconfigured rate outside (0, 1) is treated as no
// coupon rather than failing the computation.
func (c *Coupon) Usable() bool {
	if c == nil {
		return false
	}
	return c.DiscountRate.IsPositive() && c.DiscountRate.LessThan(decimal.NewFromInt(1))
}
