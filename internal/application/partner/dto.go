package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/partner"
)

// CreateCustomerRequest creates a customer record
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UpdateCustomerRequest updates a customer's contact details
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SettleBalanceRequest records a payment against a party's running balance
type SettleBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes,omitempty"`
}

// CustomerResponse is the external representation of a customer
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToCustomerResponse converts a customer to its response representation
func ToCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		Balance:     c.Balance,
		CreatedAt:   c.CreatedAt,
	}
}

// CustomerListResponse is a paginated list of customers
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// CreateSupplierRequest creates a supplier record
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SupplierResponse is the external representation of a supplier
type SupplierResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToSupplierResponse converts a supplier to its response representation
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
		Balance:     s.Balance,
		CreatedAt:   s.CreatedAt,
	}
}

// SupplierListResponse is a paginated list of suppliers
type SupplierListResponse struct {
	Items      []SupplierResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}
