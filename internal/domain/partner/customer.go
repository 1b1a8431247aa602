package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Customer represents a buying party. The running balance is the signed
// amount the customer owes the owner; it is only moved by settlement logic.
type Customer struct {
	shared.OwnedEntity
	Name        string `gorm:"not null"`
	PhoneNumber string `gorm:"not null;index"`
	Email       string
	Address     string
	Balance     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// NewCustomer creates a new customer for the owning user
func NewCustomer(ownerID uuid.UUID, name, phoneNumber, email, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer phone number cannot be empty")
	}

	return &Customer{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		PhoneNumber: phoneNumber,
		Email:       email,
		Address:     address,
		Balance:     decimal.Zero,
	}, nil
}

// ApplyBalanceDelta moves the running balance by the signed delta
func (c *Customer) ApplyBalanceDelta(delta decimal.Decimal) {
	c.Balance = c.Balance.Add(delta)
}

// UpdateContact updates the contact fields; balance is never reset here
func (c *Customer) UpdateContact(name, phoneNumber, email, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if phoneNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer phone number cannot be empty")
	}
	c.Name = name
	c.PhoneNumber = phoneNumber
	c.Email = email
	c.Address = address
	return nil
}
