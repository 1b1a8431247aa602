package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
)

// PartyInput identifies the counterparty of a document either by ID or by
// contact details. When only details are given the party is created on the
// fly as part of the transaction.
type PartyInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Email       string     `json:"email,omitempty"`
	Address     string     `json:"address,omitempty"`
}

// partyResolver implements the find-or-create step shared by the document
// orchestrators. A resolver reports whether it created the party so the
// caller can record the matching undo step.
type partyResolver struct {
	customers partner.CustomerRepository
	suppliers partner.SupplierRepository
}

// resolveCustomer finds an existing customer or creates one from the given
// details. Lookup is by ID when present, otherwise by phone number.
func (r *partyResolver) resolveCustomer(ctx context.Context, ownerID uuid.UUID, input PartyInput) (*partner.Customer, bool, error) {
	if input.ID != nil {
		customer, err := r.customers.FindByIDForOwner(ctx, ownerID, *input.ID)
		if err != nil {
			return nil, false, err
		}
		return customer, false, nil
	}

	if input.PhoneNumber != "" {
		customer, err := r.customers.FindByPhone(ctx, ownerID, input.PhoneNumber)
		if err == nil {
			return customer, false, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
	}

	customer, err := partner.NewCustomer(ownerID, input.Name, input.PhoneNumber, input.Email, input.Address)
	if err != nil {
		return nil, false, err
	}
	if err := r.customers.Save(ctx, customer); err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

// resolveSupplier finds an existing supplier or creates one. Lookup is by ID
// when present, otherwise by the (name, phone) pair. Balance changes are the
// orchestrator's job; a new supplier starts at zero.
func (r *partyResolver) resolveSupplier(ctx context.Context, ownerID uuid.UUID, input PartyInput) (*partner.Supplier, bool, error) {
	if input.ID != nil {
		supplier, err := r.suppliers.FindByIDForOwner(ctx, ownerID, *input.ID)
		if err != nil {
			return nil, false, err
		}
		return supplier, false, nil
	}

	if input.Name != "" && input.PhoneNumber != "" {
		supplier, err := r.suppliers.FindByNameAndPhone(ctx, ownerID, input.Name, input.PhoneNumber)
		if err == nil {
			return supplier, false, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
	}

	supplier, err := partner.NewSupplier(ownerID, input.Name, input.PhoneNumber, input.Email, input.Address)
	if err != nil {
		return nil, false, err
	}
	if err := r.suppliers.Save(ctx, supplier); err != nil {
		return nil, false, err
	}
	return supplier, true, nil
}
