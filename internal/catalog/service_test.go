package catalog

import (
	"context"
	"errors"
	"testing"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepository is a mock implementation of Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, params ListParams) ([]model.Product, int, error) {
	args := m.Called(ctx, params)
	var products []model.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]model.Product)
	}
	return products, args.Int(1), args.Error(2)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	var product *model.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*model.Product)
	}
	return product, args.Error(1)
}

func sampleProducts(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			ID:    "P00" + string(rune('1'+i)),
			Title: "Product",
			Price: decimal.NewFromInt(100),
		}
	}
	return products
}

func TestList_DefaultsPageAndLimit(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, ListParams{Page: 1, Limit: defaultLimit}).
		Return(sampleProducts(3), 3, nil)

	page, err := svc.List(context.Background(), ListParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Data, 3)
	repo.AssertExpectations(t)
}

func TestList_ClampsLimitToMaximum(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, ListParams{Page: 2, Limit: maxLimit}).
		Return(sampleProducts(1), 250, nil)

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 5000})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestList_TotalPagesRoundsUp(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, ListParams{Page: 1, Limit: 10}).
		Return(sampleProducts(1), 21, nil)

	page, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
}

func TestList_EmptyCatalogue(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, nil)

	page, err := svc.List(context.Background(), ListParams{})

	require.NoError(t, err)
	assert.NotNil(t, page.Data, "data must serialise as an empty array, not null")
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.TotalPages)
}

func TestList_RepositoryError(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, mock.Anything).
		Return(nil, 0, errors.New("connection refused"))

	page, err := svc.List(context.Background(), ListParams{})

	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestGetByID(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, zerolog.Nop())

	want := &model.Product{ID: "P001", Title: "Headphones", Price: decimal.NewFromInt(100)}
	repo.On("GetByID", mock.Anything, "P001").Return(want, nil)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	product, err := svc.GetByID(context.Background(), "P001")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Headphones", product.Title)

	product, err = svc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, product, "an absent product is nil, not an error")
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		params    ListParams
		wantWhere string
		wantArgs  int
	}{
		{"no filters", ListParams{}, "", 0},
		{"category only", ListParams{Category: "audio"}, " WHERE category = $1", 1},
		{"search only", ListParams{Search: "head"}, " WHERE (title ILIKE $1 OR description ILIKE $1)", 1},
		{
			"category and search",
			ListParams{Category: "audio", Search: "head"},
			" WHERE category = $1 AND (title ILIKE $2 OR description ILIKE $2)",
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildFilters(tt.params)
			assert.Equal(t, tt.wantWhere, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{"defaults", ListParams{}, "title ASC"},
		{"price ascending", ListParams{Sort: "price"}, "price ASC"},
		{"price descending", ListParams{Sort: "price", Order: "desc"}, "price DESC"},
		{"unknown sort falls back", ListParams{Sort: "created_at; DROP TABLE products"}, "title ASC"},
		{"unknown order falls back", ListParams{Order: "sideways"}, "title ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.params))
		})
	}
}
