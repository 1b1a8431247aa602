package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// ReturnStatus represents the lifecycle status of a return document
type ReturnStatus string

const (
	ReturnStatusCompleted ReturnStatus = "Completed"
	ReturnStatusPending   ReturnStatus = "Pending"
)

// ReturnItem is a line item on an invoice return
type ReturnItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// ReturnLineInput is the caller-supplied line item for return creation
type ReturnLineInput struct {
	ProductID uuid.UUID
	Quantity  int64
	Price     decimal.Decimal
}

// InvoiceReturn represents goods coming back against a sale document
type InvoiceReturn struct {
	shared.OwnedEntity
	ReturnNumber   string          `gorm:"not null;index"`
	InvoiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date           time.Time       `gorm:"not null"`
	Items          []ReturnItem    `gorm:"foreignKey:ReturnID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	RefundMethod   string          `gorm:"not null"`
	AmountRefunded decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status         ReturnStatus    `gorm:"not null"`
	Notes          string
}

// NewInvoiceReturn builds a return document against an invoice. Line
// validation against the parent invoice (membership, remaining quantity) is
// the orchestrator's job; this constructor enforces local invariants and
// computes the subtotal.
func NewInvoiceReturn(ownerID uuid.UUID, returnNumber string, invoiceID uuid.UUID,
	lines []ReturnLineInput, refundMethod string, amountRefunded decimal.Decimal, notes string) (*InvoiceReturn, error) {

	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Return number cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Return must reference an invoice")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Return requires at least one line item")
	}
	if refundMethod == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Refund method cannot be empty")
	}
	if amountRefunded.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount refunded cannot be negative")
	}

	ret := &InvoiceReturn{
		OwnedEntity:    shared.NewOwnedEntity(ownerID),
		ReturnNumber:   returnNumber,
		InvoiceID:      invoiceID,
		Date:           time.Now(),
		Subtotal:       decimal.Zero,
		RefundMethod:   refundMethod,
		AmountRefunded: amountRefunded,
		Status:         ReturnStatusCompleted,
		Notes:          notes,
	}

	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Return line %d: product ID cannot be empty", i+1)
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Return line %d: quantity must be positive", i+1)
		}
		if line.Price.IsNegative() {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "Return line %d: price cannot be negative", i+1)
		}
		total := line.Price.Mul(decimal.NewFromInt(line.Quantity))
		ret.Items = append(ret.Items, ReturnItem{
			ID:        uuid.New(),
			ReturnID:  ret.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     total,
		})
		ret.Subtotal = ret.Subtotal.Add(total)
	}

	ret.Total = ret.AmountRefunded
	return ret, nil
}

// QuantityForProduct returns the returned quantity for the given product
func (r *InvoiceReturn) QuantityForProduct(productID uuid.UUID) int64 {
	var total int64
	for _, item := range r.Items {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total
}
