package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"saletracker-api/internal/domain"
	"saletracker-api/internal/repository"
)

func seedSales(t *testing.T, repo *repository.MemorySaleRepository, userID string, n int) {
	t.Helper()
	svc := NewSalesService(repo, zaptest.NewLogger(t))
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), userID, validCreate())
		require.NoError(t, err)
	}
}

func TestRecentClampsLimit(t *testing.T) {
	repo := repository.NewMemorySaleRepository()
	seedSales(t, repo, "u1", 25)
	svc := NewDashboardService(repo, zaptest.NewLogger(t))
	ctx := context.Background()

	// Requests beyond the hard cap are clamped to 20
	recent, err := svc.Recent(ctx, "u1", 100)
	require.NoError(t, err)
	assert.Len(t, recent, 20)

	// Zero or negative falls back to the default of 5
	recent, err = svc.Recent(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = svc.Recent(ctx, "u1", -3)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = svc.Recent(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}

func TestStatsEmptyTenantInvariant(t *testing.T) {
	svc := NewDashboardService(repository.NewMemorySaleRepository(), zaptest.NewLogger(t))

	stats, err := svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalItems)
	assert.Zero(t, stats.TotalSales)
	assert.Zero(t, stats.AvgPrice)
}

func TestStatsConsistency(t *testing.T) {
	repo := repository.NewMemorySaleRepository()
	seedSales(t, repo, "u1", 7)
	svc := NewDashboardService(repo, zaptest.NewLogger(t))

	stats, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalItems)
	assert.InDelta(t, stats.TotalSales, stats.AvgPrice*float64(stats.TotalItems), 1e-6)
}

func TestCombined(t *testing.T) {
	repo := repository.NewMemorySaleRepository()
	seedSales(t, repo, "u1", 8)
	svc := NewDashboardService(repo, zaptest.NewLogger(t))

	data, err := svc.Combined(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, data.Stats)
	assert.Equal(t, 8, data.Stats.TotalItems)
	// Combined always uses the fixed five-item recent list
	assert.Len(t, data.RecentSales, 5)
}

func TestCombinedPropagatesStoreFailure(t *testing.T) {
	svc := NewDashboardService(failingRepo{}, zaptest.NewLogger(t))

	data, err := svc.Combined(context.Background(), "u1")
	assert.Nil(t, data)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestCombinedOffline(t *testing.T) {
	repo := repository.NewOfflineSaleRepository(zaptest.NewLogger(t))
	svc := NewDashboardService(repo, zaptest.NewLogger(t))

	data, err := svc.Combined(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &domain.DashboardStats{}, data.Stats)
	assert.Empty(t, data.RecentSales)
}
