package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Product represents a sellable item in the owner's catalog.
// Stock is mutated exclusively by the stock ledger operations during
// invoice/purchase/return processing; generic edits never touch it.
type Product struct {
	shared.OwnedEntity
	Name           string `gorm:"not null;index"`
	Category       string
	Company        string
	Cost           decimal.Decimal `gorm:"type:decimal(14,2)"`
	RetailPrice    decimal.Decimal `gorm:"type:decimal(14,2)"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(14,2)"`
	Stock          int64           `gorm:"not null;default:0"`
}

// NewProduct creates a new product for the owning user
func NewProduct(ownerID uuid.UUID, name, category, company string, cost, retailPrice, wholesalePrice decimal.Decimal, stock int64) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if cost.IsNegative() || retailPrice.IsNegative() || wholesalePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product stock cannot be negative")
	}

	return &Product{
		OwnedEntity:    shared.NewOwnedEntity(ownerID),
		Name:           name,
		Category:       category,
		Company:        company,
		Cost:           cost,
		RetailPrice:    retailPrice,
		WholesalePrice: wholesalePrice,
		Stock:          stock,
	}, nil
}

// Deduct removes quantity from stock, failing when stock would go negative
func (p *Product) Deduct(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Deduct quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Insufficient stock for product %s", p.Name)
	}
	p.Stock -= quantity
	return nil
}

// Restock adds quantity back to stock
func (p *Product) Restock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Restock quantity must be positive")
	}
	p.Stock += quantity
	return nil
}

// UpdateDetails updates the descriptive fields; stock is deliberately untouched
func (p *Product) UpdateDetails(name, category, company string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	p.Name = name
	p.Category = category
	p.Company = company
	return nil
}

// UpdatePricing updates the price snapshot fields
func (p *Product) UpdatePricing(cost, retailPrice, wholesalePrice decimal.Decimal) error {
	if cost.IsNegative() || retailPrice.IsNegative() || wholesalePrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	p.Cost = cost
	p.RetailPrice = retailPrice
	p.WholesalePrice = wholesalePrice
	return nil
}
