package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/finance"
	"github.com/storekit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseService manages operating expense records
type ExpenseService struct {
	expenses finance.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, logger: logger}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, ownerID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(ownerID, req.Title, req.Category, req.Amount,
		req.Date, req.PaymentMethod, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense recorded",
		zap.String("owner_id", ownerID.String()),
		zap.String("expense_id", expense.ID.String()),
		zap.String("amount", expense.Amount.String()))

	return ToExpenseResponse(expense), nil
}

// Update replaces the fields of an existing expense
func (s *ExpenseService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(req.Title, req.Category, req.Amount,
		req.Date, req.PaymentMethod, req.Notes); err != nil {
		return nil, err
	}

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	return ToExpenseResponse(expense), nil
}

// GetByID returns one expense
func (s *ExpenseService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(expense), nil
}

// List returns a page of expenses
func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*ExpenseListResponse, error) {
	expenses, err := s.expenses.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.expenses.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &ExpenseListResponse{
		Items:      make([]ExpenseResponse, 0, len(expenses)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range expenses {
		resp.Items = append(resp.Items, *ToExpenseResponse(&expenses[i]))
	}
	return resp, nil
}

// Delete removes an expense record
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.expenses.DeleteForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted",
		zap.String("owner_id", ownerID.String()),
		zap.String("expense_id", id.String()))
	return nil
}
