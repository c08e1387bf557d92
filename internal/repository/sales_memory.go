package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"saletracker-api/internal/domain"
)

// MemorySaleRepository is a map-backed SaleRepository used in tests and as a
// throwaway store for local experiments. It mirrors the gateway semantics:
// tenant scoping, saleDate-descending ordering, and aggregate zero-defaults.
type MemorySaleRepository struct {
	mu    sync.RWMutex
	sales map[string]map[string]*domain.Sale // userID -> saleID -> sale
}

// NewMemorySaleRepository creates an empty in-memory sale repository.
func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{
		sales: make(map[string]map[string]*domain.Sale),
	}
}

func (r *MemorySaleRepository) Create(ctx context.Context, userID string, req *domain.SaleCreate) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := nowISO()
	sale := &domain.Sale{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductName:  req.ProductName,
		Amount:       req.Amount,
		SaleDate:     req.SaleDate,
		CustomerName: req.CustomerName,
		Platform:     req.Platform,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if r.sales[userID] == nil {
		r.sales[userID] = make(map[string]*domain.Sale)
	}
	if _, exists := r.sales[userID][sale.ID]; exists {
		return nil, domain.ErrConflict
	}

	stored := *sale
	r.sales[userID][sale.ID] = &stored
	return sale, nil
}

func (r *MemorySaleRepository) Get(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.sales[userID][saleID]
	if !ok {
		return nil, nil
	}
	copied := *sale
	return &copied, nil
}

func (r *MemorySaleRepository) List(ctx context.Context, userID string, limit int) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := r.sorted(userID)
	if len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (r *MemorySaleRepository) Update(ctx context.Context, userID, saleID string, req *domain.SaleUpdate) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale, ok := r.sales[userID][saleID]
	if !ok {
		return nil, nil
	}

	if req.ProductName != nil {
		sale.ProductName = *req.ProductName
	}
	if req.Amount != nil {
		sale.Amount = *req.Amount
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	if req.CustomerName != nil {
		sale.CustomerName = req.CustomerName
	}
	if req.Platform != nil {
		sale.Platform = *req.Platform
	}
	sale.UpdatedAt = nowISO()

	copied := *sale
	return &copied, nil
}

func (r *MemorySaleRepository) Delete(ctx context.Context, userID, saleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sales[userID][saleID]; !ok {
		return false, nil
	}
	delete(r.sales[userID], saleID)
	return true, nil
}

func (r *MemorySaleRepository) DashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	currentMonth := time.Now().UTC().Format("2006-01")
	stats := &domain.DashboardStats{}

	for _, sale := range r.sales[userID] {
		stats.TotalSales += sale.Amount
		stats.TotalItems++
		if len(sale.SaleDate) >= len(currentMonth) && sale.SaleDate[:len(currentMonth)] == currentMonth {
			stats.ThisMonth += sale.Amount
		}
	}
	if stats.TotalItems > 0 {
		stats.AvgPrice = stats.TotalSales / float64(stats.TotalItems)
	}

	return stats, nil
}

func (r *MemorySaleRepository) RecentSales(ctx context.Context, userID string, limit int) ([]*domain.RecentSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := r.sorted(userID)
	if len(sales) > limit {
		sales = sales[:limit]
	}

	recent := make([]*domain.RecentSale, 0, len(sales))
	for _, sale := range sales {
		recent = append(recent, &domain.RecentSale{
			ID:           sale.ID,
			ProductName:  sale.ProductName,
			Amount:       sale.Amount,
			SaleDate:     sale.SaleDate,
			Platform:     sale.Platform,
			CustomerName: sale.CustomerName,
		})
	}
	return recent, nil
}

// sorted returns copies of the tenant's sales ordered by saleDate descending.
// Callers must hold at least a read lock.
func (r *MemorySaleRepository) sorted(userID string) []*domain.Sale {
	sales := make([]*domain.Sale, 0, len(r.sales[userID]))
	for _, sale := range r.sales[userID] {
		copied := *sale
		sales = append(sales, &copied)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].SaleDate > sales[j].SaleDate
	})
	return sales
}
