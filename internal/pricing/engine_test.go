package pricing

import (
	"testing"

	"shopkart/internal/config"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(config.PricingConfig{
		TaxRate:               decimal.RequireFromString("0.05"),
		FreeDeliveryThreshold: decimal.NewFromInt(499),
		FlatDeliveryFee:       decimal.NewFromInt(49),
	}, zerolog.Nop())
}

func line(productID string, price string, qty int) model.CartLine {
	return model.CartLine{
		ProductID: productID,
		Title:     "Product " + productID,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func tenPercentCoupon() *model.Coupon {
	return &model.Coupon{Code: "HM-DEC", DiscountRate: decimal.RequireFromString("0.10")}
}

func TestComputeSummary_EmptyCart(t *testing.T) {
	engine := testEngine(t)

	summary := engine.ComputeSummary(nil, nil)

	assert.True(t, summary.Subtotal.IsZero())
	assert.True(t, summary.DiscountAmount.IsZero())
	assert.True(t, summary.TaxableBase.IsZero())
	assert.True(t, summary.TaxAmount.IsZero())
	assert.True(t, summary.DeliveryFee.IsZero(), "empty cart must not incur a delivery fee")
	assert.True(t, summary.Total.IsZero())
}

func TestComputeSummary_CouponAboveThreshold(t *testing.T) {
	engine := testEngine(t)

	lines := []model.CartLine{line("P001", "500", 2)}

	summary := engine.ComputeSummary(lines, tenPercentCoupon())

	assert.Equal(t, "1000", summary.Subtotal.String())
	assert.Equal(t, "100", summary.DiscountAmount.String())
	assert.Equal(t, "900", summary.TaxableBase.String())
	assert.Equal(t, "45", summary.TaxAmount.String())
	assert.Equal(t, "0", summary.DeliveryFee.String())
	assert.Equal(t, "945", summary.Total.String())
}

func TestComputeSummary_BelowThresholdNoCoupon(t *testing.T) {
	engine := testEngine(t)

	lines := []model.CartLine{line("P001", "100", 2)}

	summary := engine.ComputeSummary(lines, nil)

	assert.Equal(t, "200", summary.Subtotal.String())
	assert.Equal(t, "0", summary.DiscountAmount.String())
	assert.Equal(t, "10", summary.TaxAmount.String())
	assert.Equal(t, "49", summary.DeliveryFee.String())
	assert.Equal(t, "259", summary.Total.String())
}

func TestComputeSummary_DiscountFloorsBeforeTax(t *testing.T) {
	engine := testEngine(t)

	// 10% of 255 is 25.5; the discount floors to 25 before tax applies.
	lines := []model.CartLine{line("P001", "255", 1)}

	summary := engine.ComputeSummary(lines, tenPercentCoupon())

	assert.Equal(t, "25", summary.DiscountAmount.String())
	assert.Equal(t, "230", summary.TaxableBase.String())
	// 230 * 0.05 = 11.5 rounds to 12 (half away from zero).
	assert.Equal(t, "12", summary.TaxAmount.String())
	assert.Equal(t, "291", summary.Total.String())
}

func TestComputeSummary_Idempotent(t *testing.T) {
	engine := testEngine(t)

	lines := []model.CartLine{
		line("P001", "129.99", 3),
		line("P002", "45.50", 1),
	}

	first := engine.ComputeSummary(lines, tenPercentCoupon())
	second := engine.ComputeSummary(lines, tenPercentCoupon())

	assert.Equal(t, first, second)
}

func TestComputeSummary_FieldsNeverNegative(t *testing.T) {
	engine := testEngine(t)

	tests := []struct {
		name   string
		lines  []model.CartLine
		coupon *model.Coupon
	}{
		{
			name:   "regular cart",
			lines:  []model.CartLine{line("P001", "19.99", 2)},
			coupon: nil,
		},
		{
			name:   "coupon larger than any line",
			lines:  []model.CartLine{line("P001", "1", 1)},
			coupon: tenPercentCoupon(),
		},
		{
			name:   "malformed lines only",
			lines:  []model.CartLine{{ProductID: "P001", UnitPrice: decimal.NewFromInt(-5), Quantity: 2}},
			coupon: tenPercentCoupon(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := engine.ComputeSummary(tt.lines, tt.coupon)

			assert.False(t, summary.Subtotal.IsNegative())
			assert.False(t, summary.DiscountAmount.IsNegative())
			assert.False(t, summary.TaxableBase.IsNegative())
			assert.False(t, summary.TaxAmount.IsNegative())
			assert.False(t, summary.DeliveryFee.IsNegative())
			assert.False(t, summary.Total.IsNegative())
		})
	}
}

func TestComputeSummary_MalformedLinesContributeZero(t *testing.T) {
	engine := testEngine(t)

	lines := []model.CartLine{
		line("P001", "100", 1),
		{ProductID: "P002", UnitPrice: decimal.NewFromInt(-10), Quantity: 5},
		{ProductID: "P003", UnitPrice: decimal.NewFromInt(50), Quantity: 0},
		{ProductID: "P004", Quantity: 2}, // zero price
	}

	summary := engine.ComputeSummary(lines, nil)

	assert.Equal(t, "100", summary.Subtotal.String())
}

func TestComputeSummary_StaleCouponTreatedAsNone(t *testing.T) {
	engine := testEngine(t)

	lines := []model.CartLine{line("P001", "500", 2)}

	tests := []struct {
		name   string
		coupon *model.Coupon
	}{
		{"zero rate", &model.Coupon{Code: "STALE", DiscountRate: decimal.Zero}},
		{"negative rate", &model.Coupon{Code: "STALE", DiscountRate: decimal.NewFromInt(-1)}},
		{"rate of one", &model.Coupon{Code: "STALE", DiscountRate: decimal.NewFromInt(1)}},
		{"rate above one", &model.Coupon{Code: "STALE", DiscountRate: decimal.NewFromInt(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := engine.ComputeSummary(lines, tt.coupon)

			require.Equal(t, "0", summary.DiscountAmount.String())
			assert.Equal(t, "1050", summary.Total.String())
		})
	}
}

func TestComputeSummary_FreeDeliveryAtThreshold(t *testing.T) {
	engine := testEngine(t)

	summary := engine.ComputeSummary([]model.CartLine{line("P001", "499", 1)}, nil)

	assert.Equal(t, "0", summary.DeliveryFee.String(), "delivery is free exactly at the threshold")
}
