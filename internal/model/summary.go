package model

import "github.com/shopspring/decimal"

// PriceSummary is the multi-stage monetary breakdown derived from the cart
// lines and the applied coupon. It is a pure function of those inputs and
// is never persisted on its own, only as part of an Invoice.
type PriceSummary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableBase    decimal.Decimal `json:"taxableBase"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Total          decimal.Decimal `json:"total"`
}
