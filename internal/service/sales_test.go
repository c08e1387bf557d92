package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"saletracker-api/internal/domain"
	"saletracker-api/internal/repository"
	"saletracker-api/pkg/apierror"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// failingRepo simulates a broken store for error-mapping tests.
type failingRepo struct{}

var errStore = errors.New("connection reset")

func (failingRepo) Create(context.Context, string, *domain.SaleCreate) (*domain.Sale, error) {
	return nil, errStore
}
func (failingRepo) Get(context.Context, string, string) (*domain.Sale, error) {
	return nil, errStore
}
func (failingRepo) List(context.Context, string, int) ([]*domain.Sale, error) {
	return nil, errStore
}
func (failingRepo) Update(context.Context, string, string, *domain.SaleUpdate) (*domain.Sale, error) {
	return nil, errStore
}
func (failingRepo) Delete(context.Context, string, string) (bool, error) {
	return false, errStore
}
func (failingRepo) DashboardStats(context.Context, string) (*domain.DashboardStats, error) {
	return nil, errStore
}
func (failingRepo) RecentSales(context.Context, string, int) ([]*domain.RecentSale, error) {
	return nil, errStore
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.StatusCode
}

func validCreate() *domain.SaleCreate {
	return &domain.SaleCreate{
		ProductName: "Nike Air Jordan 1",
		Amount:      180.0,
		SaleDate:    "2024-01-15T10:30:00Z",
		Platform:    domain.PlatformStockx,
	}
}

func TestCreateSale(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))

	sale, err := svc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, "u1", sale.UserID)
	assert.Greater(t, sale.Amount, 0.0)
	assert.Equal(t, sale.CreatedAt, sale.UpdatedAt)
}

func TestCreateSaleValidation(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.SaleCreate)
	}{
		{"empty product name", func(c *domain.SaleCreate) { c.ProductName = "" }},
		{"product name too long", func(c *domain.SaleCreate) {
			name := make([]byte, 201)
			for i := range name {
				name[i] = 'x'
			}
			c.ProductName = string(name)
		}},
		{"zero amount", func(c *domain.SaleCreate) { c.Amount = 0 }},
		{"negative amount", func(c *domain.SaleCreate) { c.Amount = -5 }},
		{"missing sale date", func(c *domain.SaleCreate) { c.SaleDate = "" }},
		{"unknown platform", func(c *domain.SaleCreate) { c.Platform = "amazon" }},
		{"customer name too long", func(c *domain.SaleCreate) {
			name := make([]byte, 101)
			for i := range name {
				name[i] = 'x'
			}
			c.CustomerName = strPtr(string(name))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(req)

			sale, err := svc.Create(ctx, "u1", req)
			assert.Nil(t, sale)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}
}

func TestGetSaleNotFound(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))

	sale, err := svc.Get(context.Background(), "u1", "missing")
	assert.Nil(t, sale)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUpdateSale(t *testing.T) {
	repo := repository.NewMemorySaleRepository()
	svc := NewSalesService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", created.ID, &domain.SaleUpdate{Amount: floatPtr(185.0)})
	require.NoError(t, err)
	assert.Equal(t, 185.0, updated.Amount)
	assert.Equal(t, created.ProductName, updated.ProductName)
}

func TestUpdateSaleInvalidAmountDoesNotMutate(t *testing.T) {
	repo := repository.NewMemorySaleRepository()
	svc := NewSalesService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", created.ID, &domain.SaleUpdate{Amount: floatPtr(-5.0)})
	assert.Nil(t, updated)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	// Stored record is unchanged
	got, err := svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Amount, got.Amount)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdateSaleNotFound(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))

	updated, err := svc.Update(context.Background(), "u1", "missing", &domain.SaleUpdate{Amount: floatPtr(5.0)})
	assert.Nil(t, updated)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeleteSaleNotFound(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))

	err := svc.Delete(context.Background(), "u1", "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestTenantIsolation(t *testing.T) {
	svc := NewSalesService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "tenantA", validCreate())
	require.NoError(t, err)

	_, err = svc.Get(ctx, "tenantB", created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.Delete(ctx, "tenantB", created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	list, err := svc.List(ctx, "tenantB")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStoreFailuresMapTo500(t *testing.T) {
	svc := NewSalesService(failingRepo{}, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.List(ctx, "u1")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	_, err = svc.Create(ctx, "u1", validCreate())
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	_, err = svc.Get(ctx, "u1", "id")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	_, err = svc.Update(ctx, "u1", "id", &domain.SaleUpdate{Amount: floatPtr(5.0)})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	err = svc.Delete(ctx, "u1", "id")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestOfflineModeBehavior(t *testing.T) {
	repo := repository.NewOfflineSaleRepository(zaptest.NewLogger(t))
	svc := NewSalesService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	// Reads come back empty, writes fail loudly
	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, "u1", validCreate())
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}
