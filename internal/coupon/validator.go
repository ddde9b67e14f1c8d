package coupon

import (
	"strings"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator against an in-memory registry.
type validator struct {
	registry Registry
	logger   zerolog.Logger
	// No mutex needed - the registry is read-only after initialization
}

// NewValidator creates a coupon validator over the given registry. A nil
// registry falls back to the built-in default.
func NewValidator(registry Registry, logger zerolog.Logger) Validator {
	if registry == nil {
		registry = DefaultRegistry()
	}

	logger = logger.With().Str("component", "coupon-validator").Logger()
	logger.Info().Int("registry_size", len(registry)).Msg("coupon validator initialised")

	return &validator{
		registry: registry,
		logger:   logger,
	}
}

// Canonicalize maps a raw user-entered code to its canonical registry
// form: trimmed and upper-cased.
func Canonicalize(rawCode string) string {
	return strings.ToUpper(strings.TrimSpace(rawCode))
}

// Validate canonicalises the raw code and looks it up in the registry.
// An empty or whitespace-only code is rejected before lookup.
func (v *validator) Validate(rawCode string) (*model.Coupon, error) {
	code := Canonicalize(rawCode)

	if code == "" {
		v.logger.Debug().Msg("empty coupon code submitted")
		return nil, model.ErrEmptyCouponCode
	}

	rate, ok := v.registry[code]
	if !ok {
		v.logger.Debug().Str("coupon_code", code).Msg("coupon code not in registry")
		return nil, model.ErrInvalidCoupon
	}

	v.logger.Debug().
		Str("coupon_code", code).
		Str("discount_rate", rate.String()).
		Msg("coupon code validated")

	return &model.Coupon{Code: code, DiscountRate: rate}, nil
}
