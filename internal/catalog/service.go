package catalog

import (
	"context"
	"fmt"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

const (
	defaultLimit = 12
	maxLimit     = 100
)

// Service defines catalogue query operations.
type Service interface {
	// List retrieves one page of products with paging metadata.
	List(ctx context.Context, params ListParams) (*model.ProductPage, error)

	// GetByID retrieves a single product by ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// service implements Service over a Repository.
type service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a catalogue service.
func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// List validates the paging parameters and retrieves one page.
func (s *service) List(ctx context.Context, params ListParams) (*model.ProductPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	totalPages := (total + params.Limit - 1) / params.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &model.ProductPage{
		Data:       products,
		Page:       params.Page,
		TotalPages: totalPages,
	}, nil
}

// GetByID retrieves a single product by ID.
func (s *service) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}
