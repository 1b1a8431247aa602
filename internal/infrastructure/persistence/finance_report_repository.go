package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormFinanceReportRepository implements report.FinanceReportRepository using GORM
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// GetProfitLoss computes the profit and loss statement for the period.
// COGS uses the cost recorded on the product at report time; invoices do
// not snapshot cost per line.
func (r *GormFinanceReportRepository) GetProfitLoss(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*report.ProfitLossStatement, error) {
	var salesRevenue decimal.Decimal
	if err := r.db.WithContext(ctx).Table("invoices").
		Select("COALESCE(SUM(total), 0)").
		Where("owner_id = ?", ownerID).
		Where("date BETWEEN ? AND ?", from, to).
		Scan(&salesRevenue).Error; err != nil {
		return nil, err
	}

	var salesReturns decimal.Decimal
	if err := r.db.WithContext(ctx).Table("invoice_returns").
		Select("COALESCE(SUM(total), 0)").
		Where("owner_id = ?", ownerID).
		Where("date BETWEEN ? AND ?", from, to).
		Scan(&salesReturns).Error; err != nil {
		return nil, err
	}

	var cogs decimal.Decimal
	if err := r.db.WithContext(ctx).Table("invoice_items ii").
		Select("COALESCE(SUM(ii.quantity * p.cost), 0)").
		Joins("JOIN invoices i ON i.id = ii.invoice_id").
		Joins("JOIN products p ON p.id = ii.product_id").
		Where("i.owner_id = ?", ownerID).
		Where("i.date BETWEEN ? AND ?", from, to).
		Scan(&cogs).Error; err != nil {
		return nil, err
	}

	var expenses decimal.Decimal
	if err := r.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ?", ownerID).
		Where("date BETWEEN ? AND ?", from, to).
		Scan(&expenses).Error; err != nil {
		return nil, err
	}

	netRevenue := salesRevenue.Sub(salesReturns)
	grossProfit := netRevenue.Sub(cogs)

	return &report.ProfitLossStatement{
		OwnerID:      ownerID,
		PeriodStart:  from,
		PeriodEnd:    to,
		SalesRevenue: salesRevenue,
		SalesReturns: salesReturns,
		NetRevenue:   netRevenue,
		COGS:         cogs,
		GrossProfit:  grossProfit,
		Expenses:     expenses,
		NetProfit:    grossProfit.Sub(expenses),
	}, nil
}

// GetExpenseBreakdown returns expenses grouped by category for the period
func (r *GormFinanceReportRepository) GetExpenseBreakdown(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.ExpenseBreakdown, error) {
	var breakdown []report.ExpenseBreakdown
	if err := r.db.WithContext(ctx).Table("expenses").
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Where("owner_id = ?", ownerID).
		Where("date BETWEEN ? AND ?", from, to).
		Group("category").
		Order("amount DESC").
		Scan(&breakdown).Error; err != nil {
		return nil, err
	}
	return breakdown, nil
}
