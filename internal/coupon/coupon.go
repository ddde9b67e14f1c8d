package coupon

import (
	"context"

	"shopkart/internal/model"

	"github.com/shopspring/decimal"
)

// Registry maps canonical coupon codes to discount rates. It is static
// configuration: built once at startup and read-only afterwards.
type Registry map[string]decimal.Decimal

// Validator defines the interface for coupon code validation.
type Validator interface {
	// Validate canonicalises the raw code (trim, uppercase) and looks it
	// up in the registry. It is pure: applying the returned coupon is the
	// caller's responsibility.
	Validate(rawCode string) (*model.Coupon, error)
}

// Loader defines the interface for loading a coupon registry.
type Loader interface {
	// Load reads a registry document (a JSON object of code → rate) from
	// the given location.
	Load(ctx context.Context, location string) (Registry, error)
}

// DefaultRegistry returns the built-in registry used when no external
// registry document is configured.
func DefaultRegistry() Registry {
	tenPercent := decimal.RequireFromString("0.10")
	return Registry{
		"HM-DEC": tenPercent,
		"HMDEC":  tenPercent,
	}
}
