package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	Save(ctx context.Context, expense *Expense) error
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Expense, error)
	FindByDateRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]Expense, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
