package repository

import (
	"context"

	"saletracker-api/internal/domain"
)

// SaleRepository defines sale data access methods. Every operation is scoped
// by the tenant's userID partition key; a record belonging to another tenant
// is indistinguishable from a missing one.
//
// Point lookups report absence as (nil, nil) / (false, nil), not as an
// error. Errors mean the store itself failed.
type SaleRepository interface {
	// Create persists a new sale with a generated id and timestamps.
	// Returns domain.ErrConflict if the generated id already exists.
	Create(ctx context.Context, userID string, req *domain.SaleCreate) (*domain.Sale, error)

	// Get returns the sale, or nil if it does not exist for this tenant.
	Get(ctx context.Context, userID, saleID string) (*domain.Sale, error)

	// List returns up to limit sales for the tenant, newest saleDate first.
	List(ctx context.Context, userID string, limit int) ([]*domain.Sale, error)

	// Update applies the non-nil fields of req to an existing sale and
	// refreshes updatedAt. Returns nil if the sale does not exist; never
	// upserts.
	Update(ctx context.Context, userID, saleID string, req *domain.SaleUpdate) (*domain.Sale, error)

	// Delete removes the sale and reports whether it existed.
	Delete(ctx context.Context, userID, saleID string) (bool, error)

	// DashboardStats computes the tenant's aggregate numbers.
	DashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error)

	// RecentSales returns up to limit recent-sale projections, newest
	// saleDate first.
	RecentSales(ctx context.Context, userID string, limit int) ([]*domain.RecentSale, error)
}
