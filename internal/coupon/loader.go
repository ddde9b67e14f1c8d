package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// fileLoader implements Loader for reading registry documents from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based registry loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a JSON registry document from the given path. The document
// is an object mapping coupon codes to discount rates.
func (l *fileLoader) Load(ctx context.Context, path string) (Registry, error) {
	l.logger.Info().Str("file", path).Msg("loading coupon registry")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read registry file")
		return nil, fmt.Errorf("failed to read coupon registry %s: %w", path, err)
	}

	registry, err := parseRegistry(data, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coupon registry %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("coupons_loaded", len(registry)).
		Msg("coupon registry loaded")

	return registry, nil
}

// parseRegistry decodes a registry document, canonicalising codes and
// dropping entries whose rate is outside (0, 1).
func parseRegistry(data []byte, logger zerolog.Logger) (Registry, error) {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	registry := make(Registry, len(raw))
	for code, rate := range raw {
		canonical := Canonicalize(code)
		if canonical == "" {
			continue
		}
		if !rate.IsPositive() || rate.GreaterThanOrEqual(one) {
			logger.Warn().
				Str("coupon_code", canonical).
				Str("discount_rate", rate.String()).
				Msg("dropping registry entry with rate outside (0, 1)")
			continue
		}
		registry[canonical] = rate
	}

	return registry, nil
}
