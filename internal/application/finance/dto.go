package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/finance"
)

// CreateExpenseRequest records a new operating expense
type CreateExpenseRequest struct {
	Title         string          `json:"title" binding:"required"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// UpdateExpenseRequest replaces an expense's fields
type UpdateExpenseRequest struct {
	Title         string          `json:"title" binding:"required"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// ExpenseResponse is the API view of an expense
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseListResponse is a paginated list of expenses
type ExpenseListResponse struct {
	Items      []ExpenseResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ToExpenseResponse converts an expense entity to its API representation
func ToExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID.String(),
		Title:         e.Title,
		Category:      e.Category,
		Amount:        e.Amount,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}
