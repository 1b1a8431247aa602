package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitLossStatement is a read model for profit and loss over a period
type ProfitLossStatement struct {
	OwnerID      uuid.UUID       `json:"owner_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
	SalesReturns decimal.Decimal `json:"sales_returns"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`  // SalesRevenue - SalesReturns
	COGS         decimal.Decimal `json:"cogs"`         // cost snapshot of sold units
	GrossProfit  decimal.Decimal `json:"gross_profit"` // NetRevenue - COGS
	Expenses     decimal.Decimal `json:"expenses"`
	NetProfit    decimal.Decimal `json:"net_profit"` // GrossProfit - Expenses
}

// ExpenseBreakdown is one expense category's share of the period
type ExpenseBreakdown struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// FinanceReportRepository provides read-side aggregation queries across
// sales, purchases and expenses
type FinanceReportRepository interface {
	// GetProfitLoss computes the profit and loss statement for the period
	GetProfitLoss(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*ProfitLossStatement, error)

	// GetExpenseBreakdown returns expenses grouped by category for the period
	GetExpenseBreakdown(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]ExpenseBreakdown, error)
}
