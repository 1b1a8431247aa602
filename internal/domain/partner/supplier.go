package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Supplier represents a supplying party. The running balance is the signed
// amount the owner owes the supplier, moved by purchase settlement only.
type Supplier struct {
	shared.OwnedEntity
	Name        string `gorm:"not null;index"`
	PhoneNumber string `gorm:"not null;index"`
	Email       string
	Address     string
	Balance     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// NewSupplier creates a new supplier for the owning user
func NewSupplier(ownerID uuid.UUID, name, phoneNumber, email, address string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier phone number cannot be empty")
	}

	return &Supplier{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		PhoneNumber: phoneNumber,
		Email:       email,
		Address:     address,
		Balance:     decimal.Zero,
	}, nil
}

// ApplyBalanceDelta moves the running balance by the signed delta
func (s *Supplier) ApplyBalanceDelta(delta decimal.Decimal) {
	s.Balance = s.Balance.Add(delta)
}

// UpdateContact updates the contact fields
func (s *Supplier) UpdateContact(name, phoneNumber, email, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	if phoneNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Supplier phone number cannot be empty")
	}
	s.Name = name
	s.PhoneNumber = phoneNumber
	s.Email = email
	s.Address = address
	return nil
}
