package catalog

import (
	"context"
	"fmt"
	"strings"

	"shopkart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ListParams are the catalogue query parameters. Zero values mean
// "unfiltered"; Sort and Order are validated against a whitelist.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string
	Order    string
}

// Repository defines the interface for catalogue data access.
type Repository interface {
	// List retrieves one page of products plus the total count matching
	// the filters.
	List(ctx context.Context, params ListParams) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// pgRepository implements Repository using PostgreSQL.
type pgRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRepository creates a new PostgreSQL-backed catalogue repository.
func NewRepository(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &pgRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

const productColumns = "id, title, description, category, image_url, price, created_at"

// List retrieves one page of products plus the total matching count.
func (r *pgRepository) List(ctx context.Context, params ListParams) ([]model.Product, int, error) {
	where, args := buildFilters(params)

	countQuery := "SELECT COUNT(*) FROM products" + where

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	args = append(args, params.Limit, offset)
	listQuery := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderClause(params), len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("page", params.Page).
			Int("limit", params.Limit).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL, &p.Price, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *pgRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL, &p.Price, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

func buildFilters(params ListParams) (string, []any) {
	var conditions []string
	var args []any

	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps the requested sort to a whitelisted ORDER BY. Unknown
// values fall back to title ascending.
func orderClause(params ListParams) string {
	column := "title"
	if params.Sort == "price" {
		column = "price"
	}
	direction := "ASC"
	if strings.EqualFold(params.Order, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
