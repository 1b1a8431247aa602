package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventorySummary is a read model for the current stock position
type InventorySummary struct {
	OwnerID       uuid.UUID       `json:"owner_id"`
	ProductCount  int64           `json:"product_count"`
	TotalUnits    int64           `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"`  // sum of stock * cost
	RetailValue   decimal.Decimal `json:"retail_value"` // sum of stock * retail price
	OutOfStock    int64           `json:"out_of_stock"`
	LowStockCount int64           `json:"low_stock_count"`
}

// StockLevel is one product's stock position
type StockLevel struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Stock       int64           `json:"stock"`
	Cost        decimal.Decimal `json:"cost"`
	StockValue  decimal.Decimal `json:"stock_value"`
}

// InventoryReportRepository provides read-side aggregation queries over
// the product catalog
type InventoryReportRepository interface {
	// GetInventorySummary returns the owner's aggregate stock position.
	// lowStockThreshold bounds the LowStockCount bucket.
	GetInventorySummary(ctx context.Context, ownerID uuid.UUID, lowStockThreshold int64) (*InventorySummary, error)

	// GetLowStockProducts returns products at or below the threshold
	GetLowStockProducts(ctx context.Context, ownerID uuid.UUID, threshold int64) ([]StockLevel, error)
}
