package domain

// Platform identifies where a sale occurred.
type Platform string

const (
	PlatformEbay   Platform = "ebay"
	PlatformGoat   Platform = "goat"
	PlatformStockx Platform = "stockx"
	PlatformManual Platform = "manual"
)

// Valid reports whether the platform is one of the supported values.
func (p Platform) Valid() bool {
	switch p {
	case PlatformEbay, PlatformGoat, PlatformStockx, PlatformManual:
		return true
	}
	return false
}

// Sale is the persisted sale record. Date fields are ISO-8601 strings rather
// than time.Time: saleDate is client-supplied and only ever compared by
// string prefix, so the raw form is stored as-is.
type Sale struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	ProductName  string   `json:"productName"`
	Amount       float64  `json:"amount"`
	SaleDate     string   `json:"saleDate"`
	CustomerName *string  `json:"customerName"`
	Platform     Platform `json:"platform"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// SaleCreate is the payload for creating a sale. System fields (id, userId,
// timestamps) are always assigned server-side.
type SaleCreate struct {
	ProductName  string   `json:"productName" validate:"required,min=1,max=200"`
	Amount       float64  `json:"amount" validate:"required,gt=0"`
	SaleDate     string   `json:"saleDate" validate:"required"`
	CustomerName *string  `json:"customerName" validate:"omitempty,max=100"`
	Platform     Platform `json:"platform" validate:"required,oneof=ebay goat stockx manual"`
}

// SaleUpdate is the partial-update payload. Nil pointers leave the stored
// field untouched.
type SaleUpdate struct {
	ProductName  *string   `json:"productName" validate:"omitempty,min=1,max=200"`
	Amount       *float64  `json:"amount" validate:"omitempty,gt=0"`
	SaleDate     *string   `json:"saleDate" validate:"omitempty"`
	CustomerName *string   `json:"customerName" validate:"omitempty,max=100"`
	Platform     *Platform `json:"platform" validate:"omitempty,oneof=ebay goat stockx manual"`
}

// DashboardStats holds the per-tenant aggregate numbers. Zero values are the
// defined result for a tenant with no sales.
type DashboardStats struct {
	TotalSales float64 `json:"totalSales"`
	TotalItems int     `json:"totalItems"`
	ThisMonth  float64 `json:"thisMonth"`
	AvgPrice   float64 `json:"avgPrice"`
}

// DashboardData is the combined dashboard payload: stats plus a fixed-size
// recent list, fetched independently.
type DashboardData struct {
	Stats       *DashboardStats `json:"stats"`
	RecentSales []*RecentSale   `json:"recentSales"`
}

// RecentSale is the trimmed projection used on the dashboard.
type RecentSale struct {
	ID           string   `json:"id"`
	ProductName  string   `json:"productName"`
	Amount       float64  `json:"amount"`
	SaleDate     string   `json:"saleDate"`
	Platform     Platform `json:"platform"`
	CustomerName *string  `json:"customerName"`
}
