package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReportFilter scopes a sales report query to an owner and period
type SalesReportFilter struct {
	OwnerID uuid.UUID
	From    time.Time
	To      time.Time
	Limit   int
}

// SalesSummary is a read model for aggregated sales over a period
type SalesSummary struct {
	OwnerID       uuid.UUID       `json:"owner_id"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	InvoiceCount  int64           `json:"invoice_count"`
	GrossSales    decimal.Decimal `json:"gross_sales"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
	DiscountGiven decimal.Decimal `json:"discount_given"`
	Refunds       decimal.Decimal `json:"refunds"`
	NetSales      decimal.Decimal `json:"net_sales"` // GrossSales - Refunds
}

// DailySalesTrend is one day of sales trend data
type DailySalesTrend struct {
	Date         time.Time       `json:"date"`
	InvoiceCount int64           `json:"invoice_count"`
	GrossSales   decimal.Decimal `json:"gross_sales"`
	Refunds      decimal.Decimal `json:"refunds"`
}

// ProductSalesRanking ranks products by revenue over a period
type ProductSalesRanking struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// CustomerSalesRanking ranks customers by revenue over a period
type CustomerSalesRanking struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceCount int64           `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportRepository provides read-side aggregation queries over the
// sale documents
type SalesReportRepository interface {
	// GetSalesSummary returns aggregated sales for the period
	GetSalesSummary(ctx context.Context, filter SalesReportFilter) (*SalesSummary, error)

	// GetDailySalesTrend returns per-day sales within the period
	GetDailySalesTrend(ctx context.Context, filter SalesReportFilter) ([]DailySalesTrend, error)

	// GetProductSalesRanking returns the top products by revenue
	GetProductSalesRanking(ctx context.Context, filter SalesReportFilter) ([]ProductSalesRanking, error)

	// GetCustomerSalesRanking returns the top customers by revenue
	GetCustomerSalesRanking(ctx context.Context, filter SalesReportFilter) ([]CustomerSalesRanking, error)
}
