package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Tax represents a percentage tax the owner can apply to documents
type Tax struct {
	shared.OwnedEntity
	Name     string          `gorm:"not null"`
	Rate     decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	IsActive bool            `gorm:"not null;default:true"`
}

// NewTax creates a new tax for the owning user
func NewTax(ownerID uuid.UUID, name string, rate decimal.Decimal) (*Tax, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tax name cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
	}

	return &Tax{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Rate:        rate,
		IsActive:    true,
	}, nil
}

// AmountOn computes the tax amount for the given base
func (t *Tax) AmountOn(base decimal.Decimal) decimal.Decimal {
	return base.Mul(t.Rate).Div(decimal.NewFromInt(100))
}

// Activate enables the tax
func (t *Tax) Activate() {
	t.IsActive = true
}

// Deactivate disables the tax without deleting it
func (t *Tax) Deactivate() {
	t.IsActive = false
}
