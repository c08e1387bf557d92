package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"saletracker-api/internal/domain"
	"saletracker-api/internal/repository"
	"saletracker-api/pkg/apierror"
)

const (
	// defaultRecentLimit is the recent-sales list size when none is requested.
	defaultRecentLimit = 5
	// maxRecentLimit is the hard cap on the recent-sales list size.
	maxRecentLimit = 20
)

// DashboardService computes per-tenant dashboard payloads on top of the
// sale repository's aggregate queries.
type DashboardService struct {
	repo   repository.SaleRepository
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repo repository.SaleRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		logger: logger,
	}
}

// Stats returns the tenant's aggregate numbers.
func (s *DashboardService) Stats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get dashboard stats", zap.String("userId", userID), zap.Error(err))
		return nil, apierror.InternalError("Failed to retrieve dashboard stats")
	}
	return stats, nil
}

// Recent returns the tenant's most recent sales, clamping the requested
// limit to the hard cap before it reaches the store.
func (s *DashboardService) Recent(ctx context.Context, userID string, limit int) ([]*domain.RecentSale, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	recent, err := s.repo.RecentSales(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to get recent sales", zap.String("userId", userID), zap.Error(err))
		return nil, apierror.InternalError("Failed to retrieve recent sales")
	}
	return recent, nil
}

// Combined returns stats plus a fixed five-item recent list. The two
// sub-fetches are independent, so they run concurrently.
func (s *DashboardService) Combined(ctx context.Context, userID string) (*domain.DashboardData, error) {
	data := &domain.DashboardData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.DashboardStats(gctx, userID)
		if err != nil {
			return err
		}
		data.Stats = stats
		return nil
	})
	g.Go(func() error {
		recent, err := s.repo.RecentSales(gctx, userID, defaultRecentLimit)
		if err != nil {
			return err
		}
		data.RecentSales = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to get dashboard data", zap.String("userId", userID), zap.Error(err))
		return nil, apierror.InternalError("Failed to retrieve dashboard data")
	}

	return data, nil
}
