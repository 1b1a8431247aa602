package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
)

// TaxService handles tax definition operations
type TaxService struct {
	taxes catalog.TaxRepository
}

// NewTaxService creates a new TaxService
func NewTaxService(taxes catalog.TaxRepository) *TaxService {
	return &TaxService{taxes: taxes}
}

// Create creates a new tax definition
func (s *TaxService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaxRequest) (*TaxResponse, error) {
	tax, err := catalog.NewTax(ownerID, req.Name, req.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.taxes.Save(ctx, tax); err != nil {
		return nil, err
	}
	return ToTaxResponse(tax), nil
}

// SetActive activates or deactivates a tax
func (s *TaxService) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) (*TaxResponse, error) {
	tax, err := s.taxes.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if active {
		tax.Activate()
	} else {
		tax.Deactivate()
	}
	if err := s.taxes.Save(ctx, tax); err != nil {
		return nil, err
	}
	return ToTaxResponse(tax), nil
}

// List returns all of the owner's taxes
func (s *TaxService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]TaxResponse, error) {
	taxes, err := s.taxes.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TaxResponse, 0, len(taxes))
	for i := range taxes {
		out = append(out, *ToTaxResponse(&taxes[i]))
	}
	return out, nil
}

// Delete removes a tax definition
func (s *TaxService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.taxes.DeleteForOwner(ctx, ownerID, id)
}
