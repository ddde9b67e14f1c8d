package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how the customer pays at checkout.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentUPI            PaymentMethod = "upi"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

// Valid reports whether the method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCashOnDelivery:
		return true
	}
	return false
}

// ShippingInfo holds the delivery address collected at checkout.
// AddressLine2 is the only optional field.
type ShippingInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
}

// MissingField returns the name of the first required field that is empty
// after trimming, or "" when the shipping info is complete.
func (s ShippingInfo) MissingField() string {
	required := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"phone", s.Phone},
		{"addressLine1", s.AddressLine1},
		{"city", s.City},
		{"state", s.State},
		{"zip", s.Zip},
		{"country", s.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

// InvoiceItem is a cart line frozen at checkout time.
type InvoiceItem struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Invoice is the immutable record of a completed checkout. It is created
// exclusively by the checkout orchestrator and overwrites the single
// latest-invoice slot.
type Invoice struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"createdAt"`
	Shipping      ShippingInfo  `json:"shippingInfo"`
	Items         []InvoiceItem `json:"lineItems"`
	Summary       PriceSummary  `json:"summary"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
