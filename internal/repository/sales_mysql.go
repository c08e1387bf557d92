package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"saletracker-api/internal/domain"
)

// mysqlErrDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlErrDuplicateEntry = 1062

// MySQLSaleRepository implements SaleRepository using MySQL. The composite
// primary key (user_id, id) gives every tenant its own partition: a lookup
// with the wrong user_id sees nothing, same as a missing row.
type MySQLSaleRepository struct {
	db *sql.DB
}

// NewMySQLSaleRepository creates a MySQL sale repository and ensures the
// sales table exists.
func NewMySQLSaleRepository(db *sql.DB) (*MySQLSaleRepository, error) {
	r := &MySQLSaleRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to ensure sales schema: %w", err)
	}
	return r, nil
}

func (r *MySQLSaleRepository) ensureSchema() error {
	// Date columns are ISO-8601 strings on purpose: saleDate is compared by
	// string prefix for monthly aggregation and is otherwise opaque.
	schema := `
		CREATE TABLE IF NOT EXISTS sales (
			user_id       VARCHAR(128) NOT NULL,
			id            VARCHAR(64)  NOT NULL,
			product_name  VARCHAR(200) NOT NULL,
			amount        DOUBLE       NOT NULL,
			sale_date     VARCHAR(64)  NOT NULL,
			customer_name VARCHAR(100) NULL,
			platform      VARCHAR(16)  NOT NULL,
			created_at    VARCHAR(64)  NOT NULL,
			updated_at    VARCHAR(64)  NOT NULL,
			PRIMARY KEY (user_id, id),
			INDEX idx_sales_user_date (user_id, sale_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// nowISO returns the current UTC time as an ISO-8601 string. Nanosecond
// precision keeps updatedAt strictly increasing across rapid mutations.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Create persists a new sale with a server-generated id and timestamps.
func (r *MySQLSaleRepository) Create(ctx context.Context, userID string, req *domain.SaleCreate) (*domain.Sale, error) {
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

	query := `
		INSERT INTO sales (user_id, id, product_name, amount, sale_date, customer_name, platform, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		sale.UserID, sale.ID, sale.ProductName, sale.Amount, sale.SaleDate,
		sale.CustomerName, string(sale.Platform), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	return sale, nil
}

// Get returns the sale for this tenant, or nil if it does not exist.
func (r *MySQLSaleRepository) Get(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	query := `
		SELECT user_id, id, product_name, amount, sale_date, customer_name, platform, created_at, updated_at
		FROM sales
		WHERE user_id = ? AND id = ?`

	sale, err := scanSale(r.db.QueryRowContext(ctx, query, userID, saleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return sale, nil
}

// List returns up to limit sales for the tenant. Ordering by sale_date is
// done by the store, not the application.
func (r *MySQLSaleRepository) List(ctx context.Context, userID string, limit int) ([]*domain.Sale, error) {
	query := `
		SELECT user_id, id, product_name, amount, sale_date, customer_name, platform, created_at, updated_at
		FROM sales
		WHERE user_id = ?
		ORDER BY sale_date DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}

// Update is a read-merge-write: only the fields present in req change, and
// updatedAt is refreshed. The sequence is not guarded by any lock or version
// token, so two concurrent updates to the same sale can race and the later
// write wins silently. Accepted limitation.
func (r *MySQLSaleRepository) Update(ctx context.Context, userID, saleID string, req *domain.SaleUpdate) (*domain.Sale, error) {
	sale, err := r.Get(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
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

	query := `
		UPDATE sales
		SET product_name = ?, amount = ?, sale_date = ?, customer_name = ?, platform = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	_, err = r.db.ExecContext(ctx, query,
		sale.ProductName, sale.Amount, sale.SaleDate, sale.CustomerName,
		string(sale.Platform), sale.UpdatedAt, userID, saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	return sale, nil
}

// Delete removes the sale and reports whether a row existed.
func (r *MySQLSaleRepository) Delete(ctx context.Context, userID, saleID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE user_id = ? AND id = ?`, userID, saleID)
	if err != nil {
		return false, fmt.Errorf("failed to delete sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete sale: %w", err)
	}

	return affected > 0, nil
}

// DashboardStats runs four independent aggregate queries over the tenant's
// records. They are deliberately not composed into one query and not run in
// a transaction: each aggregate sees its own snapshot, so the four numbers
// may drift slightly against a concurrently-mutating dataset. Accepted
// tradeoff for aggregate robustness.
func (r *MySQLSaleRepository) DashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	currentMonth := time.Now().UTC().Format("2006-01")

	stats := &domain.DashboardStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM sales WHERE user_id = ?`,
		userID,
	).Scan(&stats.TotalSales)
	if err != nil {
		return nil, fmt.Errorf("failed to get total sales: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sales WHERE user_id = ?`,
		userID,
	).Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to get total items: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(amount), 0) FROM sales WHERE user_id = ?`,
		userID,
	).Scan(&stats.AvgPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get average price: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM sales WHERE user_id = ? AND sale_date LIKE CONCAT(?, '%')`,
		userID, currentMonth,
	).Scan(&stats.ThisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to get this month's sales: %w", err)
	}

	return stats, nil
}

// RecentSales returns up to limit recent-sale projections for the tenant.
func (r *MySQLSaleRepository) RecentSales(ctx context.Context, userID string, limit int) ([]*domain.RecentSale, error) {
	query := `
		SELECT id, product_name, amount, sale_date, platform, customer_name
		FROM sales
		WHERE user_id = ?
		ORDER BY sale_date DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}
	defer rows.Close()

	recent := make([]*domain.RecentSale, 0)
	for rows.Next() {
		var (
			sale         domain.RecentSale
			platform     string
			customerName sql.NullString
		)
		if err := rows.Scan(&sale.ID, &sale.ProductName, &sale.Amount, &sale.SaleDate, &platform, &customerName); err != nil {
			return nil, fmt.Errorf("failed to scan recent sale: %w", err)
		}
		sale.Platform = domain.Platform(platform)
		if customerName.Valid {
			sale.CustomerName = &customerName.String
		}
		recent = append(recent, &sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}

	return recent, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var (
		sale         domain.Sale
		platform     string
		customerName sql.NullString
	)

	err := row.Scan(
		&sale.UserID, &sale.ID, &sale.ProductName, &sale.Amount, &sale.SaleDate,
		&customerName, &platform, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.Platform = domain.Platform(platform)
	if customerName.Valid {
		sale.CustomerName = &customerName.String
	}

	return &sale, nil
}
