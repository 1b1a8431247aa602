package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Expense is an operating cost recorded outside the trading documents
type Expense struct {
	shared.OwnedEntity
	Title         string          `gorm:"not null"`
	Category      string          `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
	PaymentMethod string
	Notes         string
}

// NewExpense creates an expense entry
func NewExpense(ownerID uuid.UUID, title, category string, amount decimal.Decimal,
	date time.Time, paymentMethod, notes string) (*Expense, error) {

	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense title cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Expense{
		OwnedEntity:   shared.NewOwnedEntity(ownerID),
		Title:         title,
		Category:      category,
		Amount:        amount,
		Date:          date,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}, nil
}

// Update replaces the mutable fields of the expense
func (e *Expense) Update(title, category string, amount decimal.Decimal,
	date time.Time, paymentMethod, notes string) error {

	if title == "" {
		return shared.NewDomainError("INVALID_INPUT", "Expense title cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Expense amount must be positive")
	}

	e.Title = title
	e.Category = category
	e.Amount = amount
	if !date.IsZero() {
		e.Date = date
	}
	e.PaymentMethod = paymentMethod
	e.Notes = notes
	e.UpdatedAt = time.Now()
	return nil
}
