package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLine_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CartLine
	}{
		{
			name: "canonical shape",
			raw:  `{"productId": "P001", "title": "Headphones", "imageUrl": "img.png", "unitPrice": 100, "quantity": 2}`,
			want: CartLine{ProductID: "P001", Title: "Headphones", ImageURL: "img.png", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		{
			name: "legacy id and price names",
			raw:  `{"id": "P001", "title": "Headphones", "image": "img.png", "price": 100, "quantity": 2}`,
			want: CartLine{ProductID: "P001", Title: "Headphones", ImageURL: "img.png", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		{
			name: "capitalised price and image",
			raw:  `{"productId": "P001", "title": "Headphones", "Image": "img.png", "Price": 100, "quantity": 2}`,
			want: CartLine{ProductID: "P001", Title: "Headphones", ImageURL: "img.png", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		{
			name: "missing quantity defaults to one",
			raw:  `{"productId": "P001", "title": "Headphones", "unitPrice": 100}`,
			want: CartLine{ProductID: "P001", Title: "Headphones", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		},
		{
			name: "negative quantity normalises to one",
			raw:  `{"productId": "P001", "unitPrice": 100, "quantity": -3}`,
			want: CartLine{ProductID: "P001", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var line CartLine
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &line))

			assert.Equal(t, tt.want.ProductID, line.ProductID)
			assert.Equal(t, tt.want.Title, line.Title)
			assert.Equal(t, tt.want.ImageURL, line.ImageURL)
			assert.True(t, tt.want.UnitPrice.Equal(line.UnitPrice), "price %s != %s", tt.want.UnitPrice, line.UnitPrice)
			assert.Equal(t, tt.want.Quantity, line.Quantity)
		})
	}
}

func TestWishlistEntry_UnmarshalVariants(t *testing.T) {
	raw := `{"id": "P001", "title": "Headphones", "image": "img.png", "price": 129.99}`

	var entry WishlistEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))

	assert.Equal(t, "P001", entry.ProductID)
	assert.Equal(t, "img.png", entry.ImageURL)
	assert.Equal(t, "129.99", entry.UnitPrice.String())
}

func TestCartLine_LineTotal(t *testing.T) {
	line := CartLine{UnitPrice: decimal.RequireFromString("129.99"), Quantity: 3}

	assert.Equal(t, "389.97", line.LineTotal().String())
}

func TestShippingInfo_MissingField(t *testing.T) {
	complete := ShippingInfo{
		Name:         "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 Lake View Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Zip:          "560001",
		Country:      "India",
	}
	assert.Equal(t, "", complete.MissingField())

	// AddressLine2 is the only optional field.
	withLine2 := complete
	withLine2.AddressLine2 = "Flat 4B"
	assert.Equal(t, "", withLine2.MissingField())

	tests := []struct {
		field  string
		mutate func(*ShippingInfo)
	}{
		{"name", func(s *ShippingInfo) { s.Name = "" }},
		{"phone", func(s *ShippingInfo) { s.Phone = "   " }},
		{"addressLine1", func(s *ShippingInfo) { s.AddressLine1 = "" }},
		{"city", func(s *ShippingInfo) { s.City = "" }},
		{"state", func(s *ShippingInfo) { s.State = "\t" }},
		{"zip", func(s *ShippingInfo) { s.Zip = "" }},
		{"country", func(s *ShippingInfo) { s.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			info := complete
			tt.mutate(&info)
			assert.Equal(t, tt.field, info.MissingField())
		})
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentUPI.Valid())
	assert.True(t, PaymentCashOnDelivery.Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestCoupon_Usable(t *testing.T) {
	var nilCoupon *Coupon
	assert.False(t, nilCoupon.Usable())

	assert.True(t, (&Coupon{DiscountRate: decimal.RequireFromString("0.10")}).Usable())
	assert.False(t, (&Coupon{DiscountRate: decimal.Zero}).Usable())
	assert.False(t, (&Coupon{DiscountRate: decimal.NewFromInt(1)}).Usable())
	assert.False(t, (&Coupon{DiscountRate: decimal.NewFromInt(-1)}).Usable())
}

func TestProduct_CartLineSnapshotsPrice(t *testing.T) {
	p := Product{
		ID:       "P001",
		Title:    "Headphones",
		ImageURL: "img.png",
		Price:    decimal.RequireFromString("129.99"),
	}

	line := p.CartLine(2)
	assert.Equal(t, "P001", line.ProductID)
	assert.Equal(t, "129.99", line.UnitPrice.String())
	assert.Equal(t, 2, line.Quantity)

	entry := p.WishlistEntry()
	assert.Equal(t, "P001", entry.ProductID)
	assert.Equal(t, "129.99", entry.UnitPrice.String())
}

func TestInvoice_JSONFieldNames(t *testing.T) {
	inv := Invoice{
		ID:            "INV1718447400000",
		PaymentMethod: PaymentCard,
		Items: []InvoiceItem{
			{Title: "Headphones", Quantity: 2, UnitPrice: decimal.NewFromInt(500), LineTotal: decimal.NewFromInt(1000)},
		},
	}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Contains(t, doc, "lineItems")
	assert.Contains(t, doc, "shippingInfo")
	assert.Contains(t, doc, "paymentMethod")

	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["lineItems"], &items))
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "qty")
}
