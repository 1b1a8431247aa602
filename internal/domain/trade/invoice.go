package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle status of a sale document
type InvoiceStatus string

const (
	InvoiceStatusCompleted         InvoiceStatus = "Completed"
	InvoiceStatusPartiallyReturned InvoiceStatus = "Partially Returned"
	InvoiceStatusReturned          InvoiceStatus = "Returned"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusCompleted, InvoiceStatusPartiallyReturned, InvoiceStatusReturned:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// The only transitions reachable from the core are driven by the return flow.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusCompleted:
		return target == InvoiceStatusPartiallyReturned || target == InvoiceStatusReturned
	case InvoiceStatusPartiallyReturned:
		return target == InvoiceStatusReturned || target == InvoiceStatusPartiallyReturned
	case InvoiceStatusReturned:
		return false // terminal
	}
	return false
}

// InvoiceItem is a line item on an invoice. Total is always Quantity * Price.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// InvoiceTax is a tax snapshot applied to an invoice at creation time
type InvoiceTax struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	TaxID     uuid.UUID `gorm:"type:uuid;not null"`
	Name      string
	Rate      decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// InvoiceLineInput is the caller-supplied line item for invoice creation
type InvoiceLineInput struct {
	ProductID uuid.UUID
	Quantity  int64
	Price     decimal.Decimal
}

// TaxChargeInput is a resolved tax to apply to a document at creation time
type TaxChargeInput struct {
	TaxID uuid.UUID
	Name  string
	Rate  decimal.Decimal
}

// Invoice represents a sale document. Monetary fields are computed once at
// creation and are immutable afterwards except through the return flow.
type Invoice struct {
	shared.OwnedEntity
	// Numbers are unique per owning user, not globally; the schema carries a
	// composite unique index on (owner_id, invoice_number).
	InvoiceNumber string `gorm:"not null;index"`
	IsQuickSale   bool
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	Date          time.Time       `gorm:"not null;index"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Taxes         []InvoiceTax    `gorm:"foreignKey:InvoiceID"`
	Discount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentMethod string          `gorm:"not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status        InvoiceStatus   `gorm:"not null"`
	Notes         string
	ReturnID      *uuid.UUID `gorm:"type:uuid"`
}

// NewInvoice builds an invoice from validated inputs, computing line totals,
// subtotal, tax amounts and the grand total. It does not touch stock or the
// store; the orchestrator sequences those effects.
func NewInvoice(ownerID uuid.UUID, invoiceNumber string, isQuickSale bool, customerID *uuid.UUID,
	lines []InvoiceLineInput, taxes []TaxChargeInput, discount decimal.Decimal,
	paymentMethod string, amountPaid decimal.Decimal, notes string) (*Invoice, error) {

	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	if !isQuickSale && customerID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer details are required for non-quick sales")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice requires at least one line item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount paid cannot be negative")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment method cannot be empty")
	}

	inv := &Invoice{
		OwnedEntity:   shared.NewOwnedEntity(ownerID),
		InvoiceNumber: invoiceNumber,
		IsQuickSale:   isQuickSale,
		CustomerID:    customerID,
		Date:          time.Now(),
		Subtotal:      decimal.Zero,
		Discount:      discount,
		PaymentMethod: paymentMethod,
		AmountPaid:    amountPaid,
		Status:        InvoiceStatusCompleted,
		Notes:         notes,
	}

	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: product ID cannot be empty", i+1)
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: quantity must be positive", i+1)
		}
		if line.Price.IsNegative() {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Line %d: price cannot be negative", i+1)
		}
		total := line.Price.Mul(decimal.NewFromInt(line.Quantity))
		inv.Items = append(inv.Items, InvoiceItem{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     total,
		})
		inv.Subtotal = inv.Subtotal.Add(total)
	}

	taxTotal := decimal.Zero
	for _, charge := range taxes {
		if charge.Rate.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
		}
		amount := inv.Subtotal.Mul(charge.Rate).Div(decimal.NewFromInt(100)).Round(2)
		inv.Taxes = append(inv.Taxes, InvoiceTax{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			TaxID:     charge.TaxID,
			Name:      charge.Name,
			Rate:      charge.Rate,
			Amount:    amount,
		})
		taxTotal = taxTotal.Add(amount)
	}

	inv.Total = inv.Subtotal.Add(taxTotal).Sub(discount)
	if inv.Total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount cannot exceed subtotal plus taxes")
	}

	return inv, nil
}

// ItemByProduct returns the line item for the given product, or nil
func (inv *Invoice) ItemByProduct(productID uuid.UUID) *InvoiceItem {
	for idx := range inv.Items {
		if inv.Items[idx].ProductID == productID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// TaxTotal returns the sum of applied tax amounts
func (inv *Invoice) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tax := range inv.Taxes {
		total = total.Add(tax.Amount)
	}
	return total
}

// RecordReturn applies the outcome of a return document to the invoice,
// linking the return and moving the status machine.
func (inv *Invoice) RecordReturn(returnID uuid.UUID, fullyReturned bool) error {
	target := InvoiceStatusPartiallyReturned
	if fullyReturned {
		target = InvoiceStatusReturned
	}
	if !inv.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot return invoice in %s status", inv.Status)
	}
	inv.Status = target
	inv.ReturnID = &returnID
	inv.UpdatedAt = time.Now()
	return nil
}

// IsReturned returns true once every line has been fully returned
func (inv *Invoice) IsReturned() bool {
	return inv.Status == InvoiceStatusReturned
}
