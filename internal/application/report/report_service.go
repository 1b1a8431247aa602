package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/report"
	"github.com/storekit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultRankingLimit      = 10
	maxRankingLimit          = 100
	defaultLowStockThreshold = 5
)

// ReportService serves read-side reports over sales, purchases, inventory
// and finance
type ReportService struct {
	sales     report.SalesReportRepository
	purchases report.PurchaseReportRepository
	inventory report.InventoryReportRepository
	finance   report.FinanceReportRepository
	logger    *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	sales report.SalesReportRepository,
	purchases report.PurchaseReportRepository,
	inventory report.InventoryReportRepository,
	finance report.FinanceReportRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		sales:     sales,
		purchases: purchases,
		inventory: inventory,
		finance:   finance,
		logger:    logger,
	}
}

// normalizePeriod validates a reporting period and fills open ends.
// An open start goes back thirty days from the end.
func normalizePeriod(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Period start must not be after period end")
	}
	return from, to, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRankingLimit
	}
	if limit > maxRankingLimit {
		return maxRankingLimit
	}
	return limit
}

// GetSalesSummary returns aggregated sales for the period
func (s *ReportService) GetSalesSummary(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*report.SalesSummary, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.sales.GetSalesSummary(ctx, report.SalesReportFilter{OwnerID: ownerID, From: from, To: to})
}

// GetDailySalesTrend returns per-day sales within the period
func (s *ReportService) GetDailySalesTrend(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.DailySalesTrend, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.sales.GetDailySalesTrend(ctx, report.SalesReportFilter{OwnerID: ownerID, From: from, To: to})
}

// GetProductSalesRanking returns the top selling products for the period
func (s *ReportService) GetProductSalesRanking(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]report.ProductSalesRanking, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.sales.GetProductSalesRanking(ctx, report.SalesReportFilter{
		OwnerID: ownerID, From: from, To: to, Limit: clampLimit(limit),
	})
}

// GetCustomerSalesRanking returns the top customers for the period
func (s *ReportService) GetCustomerSalesRanking(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]report.CustomerSalesRanking, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.sales.GetCustomerSalesRanking(ctx, report.SalesReportFilter{
		OwnerID: ownerID, From: from, To: to, Limit: clampLimit(limit),
	})
}

// GetSupplierPurchaseRanking returns the top suppliers by spend for the period
func (s *ReportService) GetSupplierPurchaseRanking(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]report.SupplierPurchaseRanking, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.purchases.GetSupplierPurchaseRanking(ctx, report.PurchaseReportFilter{
		OwnerID: ownerID, From: from, To: to, Limit: clampLimit(limit),
	})
}

// GetInventorySummary returns the owner's aggregate stock position
func (s *ReportService) GetInventorySummary(ctx context.Context, ownerID uuid.UUID, lowStockThreshold int64) (*report.InventorySummary, error) {
	if lowStockThreshold <= 0 {
		lowStockThreshold = defaultLowStockThreshold
	}
	return s.inventory.GetInventorySummary(ctx, ownerID, lowStockThreshold)
}

// GetLowStockProducts returns products at or below the threshold
func (s *ReportService) GetLowStockProducts(ctx context.Context, ownerID uuid.UUID, threshold int64) ([]report.StockLevel, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return s.inventory.GetLowStockProducts(ctx, ownerID, threshold)
}

// GetProfitLoss computes the profit and loss statement for the period
func (s *ReportService) GetProfitLoss(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*report.ProfitLossStatement, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.finance.GetProfitLoss(ctx, ownerID, from, to)
}

// GetExpenseBreakdown returns expenses grouped by category for the period
func (s *ReportService) GetExpenseBreakdown(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.ExpenseBreakdown, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.finance.GetExpenseBreakdown(ctx, ownerID, from, to)
}
