package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
)

// CustomerService handles customer bookkeeping operations
type CustomerService struct {
	customers partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers partner.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create creates a new customer. Phone numbers are unique per owner since
// the document flow uses them for lookup.
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customers.FindByPhone(ctx, ownerID, req.PhoneNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone number already exists")
	}

	customer, err := partner.NewCustomer(ownerID, req.Name, req.PhoneNumber, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// Update updates a customer's contact details
func (s *CustomerService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := customer.UpdateContact(req.Name, req.PhoneNumber, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// SettleBalance records a payment received from the customer, reducing the
// amount they owe
func (s *CustomerService) SettleBalance(ctx context.Context, ownerID, id uuid.UUID, req SettleBalanceRequest) (*CustomerResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Settlement amount must be positive")
	}

	customer, err := s.customers.ApplyBalanceDelta(ctx, ownerID, id, req.Amount.Neg())
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// GetByID returns the customer with the given ID
func (s *CustomerService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// List returns a page of the owner's customers
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*CustomerListResponse, error) {
	customers, err := s.customers.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &CustomerListResponse{
		Items:      make([]CustomerResponse, 0, len(customers)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range customers {
		resp.Items = append(resp.Items, *ToCustomerResponse(&customers[i]))
	}
	return resp, nil
}

// Delete removes a customer. Customers with an outstanding balance cannot
// be removed.
func (s *CustomerService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	customer, err := s.customers.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !customer.Balance.Equal(decimal.Zero) {
		return shared.NewDomainError("INVALID_STATE", "Customer has an outstanding balance")
	}
	return s.customers.DeleteForOwner(ctx, ownerID, id)
}
