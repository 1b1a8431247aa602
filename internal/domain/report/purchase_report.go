package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseReportFilter scopes a purchase report query to an owner and period
type PurchaseReportFilter struct {
	OwnerID uuid.UUID
	From    time.Time
	To      time.Time
	Limit   int
}

// SupplierPurchaseRanking ranks suppliers by procurement spend over a period
type SupplierPurchaseRanking struct {
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	PurchaseCount int64           `json:"purchase_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}

// PurchaseReportRepository provides read-side aggregation queries over the
// procurement documents
type PurchaseReportRepository interface {
	// GetSupplierPurchaseRanking returns the top suppliers by spend
	GetSupplierPurchaseRanking(ctx context.Context, filter PurchaseReportFilter) ([]SupplierPurchaseRanking, error)
}
