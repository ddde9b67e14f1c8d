package checkout

import (
	"context"
	"time"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentGateway acknowledges a payment attempt. It stands in for a real
// payment processor; the orchestrator only needs an opaque acknowledgement
// before committing the invoice.
type PaymentGateway interface {
	// Authorize blocks until the payment is acknowledged or the context is
	// cancelled. Cancellation abandons the attempt.
	Authorize(ctx context.Context, amount decimal.Decimal, method model.PaymentMethod) error
}

// simulatedGateway acknowledges every payment after a fixed delay.
type simulatedGateway struct {
	delay  time.Duration
	logger zerolog.Logger
}

// NewSimulatedGateway creates a gateway that approves every payment after
// the given delay.
func NewSimulatedGateway(delay time.Duration, logger zerolog.Logger) PaymentGateway {
	return &simulatedGateway{
		delay:  delay,
		logger: logger.With().Str("component", "simulated-gateway").Logger(),
	}
}

// Authorize waits out the configured delay, honouring cancellation.
func (g *simulatedGateway) Authorize(ctx context.Context, amount decimal.Decimal, method model.PaymentMethod) error {
	g.logger.Debug().
		Str("amount", amount.String()).
		Str("method", string(method)).
		Msg("processing payment")

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		g.logger.Warn().Err(ctx.Err()).Msg("payment abandoned")
		return ctx.Err()
	}

	g.logger.Debug().Str("amount", amount.String()).Msg("payment acknowledged")

	return nil
}
