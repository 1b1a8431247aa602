package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
)

// SupplierService handles supplier bookkeeping operations
type SupplierService struct {
	suppliers partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, ownerID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	existing, err := s.suppliers.FindByNameAndPhone(ctx, ownerID, req.Name, req.PhoneNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name and phone number already exists")
	}

	supplier, err := partner.NewSupplier(ownerID, req.Name, req.PhoneNumber, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Update updates a supplier's contact details
func (s *SupplierService) Update(ctx context.Context, ownerID, id uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.UpdateContact(req.Name, req.PhoneNumber, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// SettleBalance records a payment made to the supplier, reducing the amount
// owed to them
func (s *SupplierService) SettleBalance(ctx context.Context, ownerID, id uuid.UUID, req SettleBalanceRequest) (*SupplierResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Settlement amount must be positive")
	}

	supplier, err := s.suppliers.ApplyBalanceDelta(ctx, ownerID, id, req.Amount.Neg())
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetByID returns the supplier with the given ID
func (s *SupplierService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List returns a page of the owner's suppliers
func (s *SupplierService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*SupplierListResponse, error) {
	suppliers, err := s.suppliers.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.suppliers.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &SupplierListResponse{
		Items:      make([]SupplierResponse, 0, len(suppliers)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range suppliers {
		resp.Items = append(resp.Items, *ToSupplierResponse(&suppliers[i]))
	}
	return resp, nil
}

// Delete removes a supplier. Suppliers still owed money cannot be removed.
func (s *SupplierService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	supplier, err := s.suppliers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !supplier.Balance.Equal(decimal.Zero) {
		return shared.NewDomainError("INVALID_STATE", "Supplier has an outstanding balance")
	}
	return s.suppliers.DeleteForOwner(ctx, ownerID, id)
}
