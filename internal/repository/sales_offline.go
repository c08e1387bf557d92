package repository

import (
	"context"

	"go.uber.org/zap"

	"saletracker-api/internal/domain"
)

// OfflineSaleRepository is the degraded no-store mode used when no database
// is reachable at startup: reads return empty collections and zeroed stats,
// writes fail loudly. Intended for local development only, never production.
type OfflineSaleRepository struct {
	logger *zap.Logger
}

// NewOfflineSaleRepository creates the offline fallback repository.
func NewOfflineSaleRepository(logger *zap.Logger) *OfflineSaleRepository {
	return &OfflineSaleRepository{logger: logger}
}

// Create fails: writes are not silently dropped in offline mode.
func (r *OfflineSaleRepository) Create(ctx context.Context, userID string, req *domain.SaleCreate) (*domain.Sale, error) {
	r.logger.Warn("offline mode: rejecting sale create", zap.String("userId", userID))
	return nil, domain.ErrStoreUnavailable
}

// Get reports every sale as absent.
func (r *OfflineSaleRepository) Get(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	return nil, nil
}

// List returns an empty collection.
func (r *OfflineSaleRepository) List(ctx context.Context, userID string, limit int) ([]*domain.Sale, error) {
	r.logger.Warn("offline mode: returning empty sales list", zap.String("userId", userID))
	return []*domain.Sale{}, nil
}

// Update fails: writes are not silently dropped in offline mode.
func (r *OfflineSaleRepository) Update(ctx context.Context, userID, saleID string, req *domain.SaleUpdate) (*domain.Sale, error) {
	r.logger.Warn("offline mode: rejecting sale update", zap.String("userId", userID))
	return nil, domain.ErrStoreUnavailable
}

// Delete fails: writes are not silently dropped in offline mode.
func (r *OfflineSaleRepository) Delete(ctx context.Context, userID, saleID string) (bool, error) {
	r.logger.Warn("offline mode: rejecting sale delete", zap.String("userId", userID))
	return false, domain.ErrStoreUnavailable
}

// DashboardStats returns zeroed stats.
func (r *OfflineSaleRepository) DashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	r.logger.Warn("offline mode: returning zeroed dashboard stats", zap.String("userId", userID))
	return &domain.DashboardStats{}, nil
}

// RecentSales returns an empty collection.
func (r *OfflineSaleRepository) RecentSales(ctx context.Context, userID string, limit int) ([]*domain.RecentSale, error) {
	r.logger.Warn("offline mode: returning empty recent sales", zap.String("userId", userID))
	return []*domain.RecentSale{}, nil
}
