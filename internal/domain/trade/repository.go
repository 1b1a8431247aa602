package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for sale documents
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	FindByNumberForOwner(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (*Invoice, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]Invoice, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	// UpdateReturnState persists the status transition and return linkage
	// applied by Invoice.RecordReturn.
	UpdateReturnState(ctx context.Context, invoice *Invoice) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// InvoiceReturnRepository defines persistence operations for return documents
type InvoiceReturnRepository interface {
	Create(ctx context.Context, ret *InvoiceReturn) error
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceReturn, error)
	FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]InvoiceReturn, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]InvoiceReturn, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// PurchaseRepository defines persistence operations for procurement documents
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Purchase, error)
	FindByNumberForOwner(ctx context.Context, ownerID uuid.UUID, purchaseNumber string) (*Purchase, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Purchase, error)
	FindBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]Purchase, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	// DeleteForOwner is also the compensation hook: a purchase persisted
	// before a later step fails is removed best-effort.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
