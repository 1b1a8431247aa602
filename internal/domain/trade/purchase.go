package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// PurchaseStatus represents the settlement status of a procurement document
type PurchaseStatus string

const (
	PurchaseStatusPending       PurchaseStatus = "Pending"
	PurchaseStatusCompleted     PurchaseStatus = "Completed"
	PurchaseStatusPartiallyPaid PurchaseStatus = "Partially Paid"
)

// PurchaseItem is a line item on a purchase, carrying the price snapshot
// applied to the product at receipt time
type PurchaseItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       int64           `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	RetailPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// PurchaseTax is a tax snapshot applied to a purchase at creation time
type PurchaseTax struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	TaxID      uuid.UUID `gorm:"type:uuid;not null"`
	Name       string
	Rate       decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// PurchaseLineInput is a resolved purchase line: the product already exists
// (or has just been created) and its ID is known.
type PurchaseLineInput struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitPrice      decimal.Decimal
	RetailPrice    decimal.Decimal
	WholesalePrice decimal.Decimal
}

// Purchase represents a procurement document
type Purchase struct {
	shared.OwnedEntity
	PurchaseNumber string          `gorm:"not null;index"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date           time.Time       `gorm:"not null;index"`
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Taxes          []PurchaseTax   `gorm:"foreignKey:PurchaseID"`
	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentMethod  string          `gorm:"not null"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	BalanceDue     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status         PurchaseStatus  `gorm:"not null"`
	Notes          string
}

// NewPurchase builds a purchase document from resolved lines, computing line
// totals, subtotal, tax amounts, grand total, balance due and status.
func NewPurchase(ownerID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, date time.Time,
	lines []PurchaseLineInput, taxes []TaxChargeInput, paymentMethod string,
	amountPaid decimal.Decimal, notes string) (*Purchase, error) {

	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase must reference a supplier")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one line item")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment method cannot be empty")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount paid cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	p := &Purchase{
		OwnedEntity:    shared.NewOwnedEntity(ownerID),
		PurchaseNumber: purchaseNumber,
		SupplierID:     supplierID,
		Date:           date,
		Subtotal:       decimal.Zero,
		PaymentMethod:  paymentMethod,
		AmountPaid:     amountPaid,
		Notes:          notes,
	}

	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: product ID cannot be empty", i+1)
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: quantity must be positive", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: unit price cannot be negative", i+1)
		}
		total := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		p.Items = append(p.Items, PurchaseItem{
			ID:             uuid.New(),
			PurchaseID:     p.ID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			RetailPrice:    line.RetailPrice,
			WholesalePrice: line.WholesalePrice,
			Total:          total,
		})
		p.Subtotal = p.Subtotal.Add(total)
	}

	taxTotal := decimal.Zero
	for _, charge := range taxes {
		if charge.Rate.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
		}
		amount := p.Subtotal.Mul(charge.Rate).Div(decimal.NewFromInt(100)).Round(2)
		p.Taxes = append(p.Taxes, PurchaseTax{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			TaxID:      charge.TaxID,
			Name:       charge.Name,
			Rate:       charge.Rate,
			Amount:     amount,
		})
		taxTotal = taxTotal.Add(amount)
	}

	p.Total = p.Subtotal.Add(taxTotal)
	p.BalanceDue = p.Total.Sub(amountPaid)
	if amountPaid.GreaterThanOrEqual(p.Total) {
		p.Status = PurchaseStatusCompleted
	} else {
		p.Status = PurchaseStatusPending
	}

	return p, nil
}

// TaxTotal returns the sum of applied tax amounts
func (p *Purchase) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tax := range p.Taxes {
		total = total.Add(tax.Amount)
	}
	return total
}
