package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
//
// DeductStock and Restock are the stock ledger operations: each is a single
// atomic conditional update against the store, so a deduction can never race
// stock below zero. They are the only writes allowed to change Stock.
type ProductRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error

	// Update persists the descriptive and pricing columns for (id, owner).
	// Stock is not among the written columns, so a copy read before a
	// concurrent ledger movement cannot write a stale stock value back.
	// Fails with NOT_FOUND when no product matches.
	Update(ctx context.Context, product *Product) error

	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// DeductStock atomically decrements stock by quantity and returns the
	// updated product. Fails with NOT_FOUND when no product matches
	// (id, owner), INSUFFICIENT_STOCK when stock < quantity and
	// INVALID_INPUT when quantity is not positive.
	DeductStock(ctx context.Context, ownerID, id uuid.UUID, quantity int64) (*Product, error)

	// Restock atomically increments stock by quantity and returns the
	// updated product. Fails with NOT_FOUND when no product matches and
	// INVALID_INPUT when quantity is not positive.
	Restock(ctx context.Context, ownerID, id uuid.UUID, quantity int64) (*Product, error)
}

// TaxRepository defines persistence operations for taxes
type TaxRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Tax, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Tax, error)
	Save(ctx context.Context, tax *Tax) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
