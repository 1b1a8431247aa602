package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers.
//
// ApplyBalanceDelta is the only write that moves Balance: it is a single
// atomic increment in the store, so concurrent sales and settlements cannot
// lose each other's deltas. Save and Update never touch the column.
type CustomerRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)
	// FindByPhone finds a customer by (phone number, owning user); NOT_FOUND
	// when absent. Used by the party resolver.
	FindByPhone(ctx context.Context, ownerID uuid.UUID, phoneNumber string) (*Customer, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error

	// Update persists the contact columns for (id, owner). Balance is not
	// among the written columns. Fails with NOT_FOUND when no customer
	// matches.
	Update(ctx context.Context, customer *Customer) error

	// ApplyBalanceDelta atomically moves the balance by the signed delta and
	// returns the updated customer. Fails with NOT_FOUND when no customer
	// matches.
	ApplyBalanceDelta(ctx context.Context, ownerID, id uuid.UUID, delta decimal.Decimal) (*Customer, error)

	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// SupplierRepository defines persistence operations for suppliers. Balance
// handling follows the same rules as CustomerRepository.
type SupplierRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Supplier, error)
	// FindByNameAndPhone finds a supplier by (name, phone number, owning
	// user); NOT_FOUND when absent. Used by the party resolver.
	FindByNameAndPhone(ctx context.Context, ownerID uuid.UUID, name, phoneNumber string) (*Supplier, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error

	// Update persists the contact columns for (id, owner). Balance is not
	// among the written columns. Fails with NOT_FOUND when no supplier
	// matches.
	Update(ctx context.Context, supplier *Supplier) error

	// ApplyBalanceDelta atomically moves the balance by the signed delta and
	// returns the updated supplier. Fails with NOT_FOUND when no supplier
	// matches.
	ApplyBalanceDelta(ctx context.Context, ownerID, id uuid.UUID, delta decimal.Decimal) (*Supplier, error)

	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
