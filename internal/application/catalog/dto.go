package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/catalog"
)

// CreateProductRequest creates a catalog product
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Category       string          `json:"category,omitempty"`
	Company        string          `json:"company,omitempty"`
	Cost           decimal.Decimal `json:"cost"`
	RetailPrice    decimal.Decimal `json:"retail_price" binding:"required"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Stock          int64           `json:"stock"`
}

// UpdateProductRequest updates product details and pricing. Stock is
// deliberately absent: stock only moves through documents and adjustments.
type UpdateProductRequest struct {
	Name           string           `json:"name" binding:"required"`
	Category       string           `json:"category,omitempty"`
	Company        string           `json:"company,omitempty"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	RetailPrice    *decimal.Decimal `json:"retail_price,omitempty"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price,omitempty"`
}

// AdjustStockRequest applies a manual stock adjustment
type AdjustStockRequest struct {
	Quantity int64  `json:"quantity" binding:"required"`
	Reason   string `json:"reason,omitempty"`
}

// ProductResponse is the external representation of a product
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Company        string          `json:"company,omitempty"`
	Cost           decimal.Decimal `json:"cost"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Stock          int64           `json:"stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response representation
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Company:        p.Company,
		Cost:           p.Cost,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		Stock:          p.Stock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// CreateTaxRequest creates a tax definition
type CreateTaxRequest struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// TaxResponse is the external representation of a tax
type TaxResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToTaxResponse converts a tax to its response representation
func ToTaxResponse(t *catalog.Tax) *TaxResponse {
	return &TaxResponse{
		ID:        t.ID,
		Name:      t.Name,
		Rate:      t.Rate,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}
