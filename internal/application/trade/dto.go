package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/trade"
)

// InvoiceLineRequest is one line of an invoice creation request
type InvoiceLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CreateInvoiceRequest creates a sale document together with its stock and
// customer side effects
type CreateInvoiceRequest struct {
	IsQuickSale   bool                 `json:"is_quick_sale"`
	Customer      *PartyInput          `json:"customer,omitempty"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1"`
	TaxIDs        []uuid.UUID          `json:"tax_ids,omitempty"`
	Discount      decimal.Decimal      `json:"discount"`
	PaymentMethod string               `json:"payment_method" binding:"required"`
	AmountPaid    decimal.Decimal      `json:"amount_paid"`
	Notes         string               `json:"notes,omitempty"`
}

// InvoiceItemResponse is one line of an invoice response
type InvoiceItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceTaxResponse is one applied tax of an invoice response
type InvoiceTaxResponse struct {
	TaxID  uuid.UUID       `json:"tax_id"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the external representation of a sale document
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	IsQuickSale   bool                  `json:"is_quick_sale"`
	CustomerID    *uuid.UUID            `json:"customer_id,omitempty"`
	Date          time.Time             `json:"date"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Taxes         []InvoiceTaxResponse  `json:"taxes,omitempty"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod string                `json:"payment_method"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	ReturnID      *uuid.UUID            `json:"return_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts an invoice to its response representation
func ToInvoiceResponse(inv *trade.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		IsQuickSale:   inv.IsQuickSale,
		CustomerID:    inv.CustomerID,
		Date:          inv.Date,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		AmountPaid:    inv.AmountPaid,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		ReturnID:      inv.ReturnID,
		CreatedAt:     inv.CreatedAt,
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}
	for _, tax := range inv.Taxes {
		resp.Taxes = append(resp.Taxes, InvoiceTaxResponse{
			TaxID:  tax.TaxID,
			Name:   tax.Name,
			Rate:   tax.Rate,
			Amount: tax.Amount,
		})
	}
	return resp
}

// ReturnLineRequest is one line of a return creation request
type ReturnLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CreateInvoiceReturnRequest records goods coming back against an invoice
type CreateInvoiceReturnRequest struct {
	InvoiceNumber  string              `json:"invoice_number" binding:"required,docnumber"`
	Lines          []ReturnLineRequest `json:"lines" binding:"required,min=1"`
	RefundMethod   string              `json:"refund_method" binding:"required"`
	AmountRefunded decimal.Decimal     `json:"amount_refunded"`
	Notes          string              `json:"notes,omitempty"`
}

// ReturnItemResponse is one line of a return response
type ReturnItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceReturnResponse is the external representation of a return document
type InvoiceReturnResponse struct {
	ID             uuid.UUID            `json:"id"`
	ReturnNumber   string               `json:"return_number"`
	InvoiceID      uuid.UUID            `json:"invoice_id"`
	Date           time.Time            `json:"date"`
	Items          []ReturnItemResponse `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Total          decimal.Decimal      `json:"total"`
	RefundMethod   string               `json:"refund_method"`
	AmountRefunded decimal.Decimal      `json:"amount_refunded"`
	Status         string               `json:"status"`
	InvoiceStatus  string               `json:"invoice_status"`
	Notes          string               `json:"notes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ToInvoiceReturnResponse converts a return document to its response
// representation. invoiceStatus carries the parent invoice's status after
// the return was applied.
func ToInvoiceReturnResponse(ret *trade.InvoiceReturn, invoiceStatus trade.InvoiceStatus) *InvoiceReturnResponse {
	resp := &InvoiceReturnResponse{
		ID:             ret.ID,
		ReturnNumber:   ret.ReturnNumber,
		InvoiceID:      ret.InvoiceID,
		Date:           ret.Date,
		Subtotal:       ret.Subtotal,
		Total:          ret.Total,
		RefundMethod:   ret.RefundMethod,
		AmountRefunded: ret.AmountRefunded,
		Status:         string(ret.Status),
		InvoiceStatus:  string(invoiceStatus),
		Notes:          ret.Notes,
		CreatedAt:      ret.CreatedAt,
	}
	for _, item := range ret.Items {
		resp.Items = append(resp.Items, ReturnItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}
	return resp
}

// PurchaseLineRequest is one line of a purchase creation request referencing
// an existing product
type PurchaseLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	// Optional new selling prices to apply to the product on receipt
	RetailPrice    *decimal.Decimal `json:"retail_price,omitempty"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price,omitempty"`
}

// NewProductPurchaseLineRequest is one line of a purchase that introduces a
// product not yet in the catalog
type NewProductPurchaseLineRequest struct {
	Name           string          `json:"name" binding:"required"`
	Category       string          `json:"category,omitempty"`
	Company        string          `json:"company,omitempty"`
	Quantity       int64           `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unit_price" binding:"required"`
	RetailPrice    decimal.Decimal `json:"retail_price" binding:"required"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// CreatePurchaseRequest creates a procurement document against existing
// catalog products
type CreatePurchaseRequest struct {
	Supplier      PartyInput            `json:"supplier" binding:"required"`
	Date          time.Time             `json:"date,omitempty"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1"`
	TaxIDs        []uuid.UUID           `json:"tax_ids,omitempty"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	Notes         string                `json:"notes,omitempty"`
}

// CreatePurchaseWithNewProductsRequest creates a purchase whose lines may
// mix existing products and products created as part of the transaction
type CreatePurchaseWithNewProductsRequest struct {
	Supplier      PartyInput                      `json:"supplier" binding:"required"`
	Date          time.Time                       `json:"date,omitempty"`
	Lines         []PurchaseLineRequest           `json:"lines,omitempty"`
	NewProducts   []NewProductPurchaseLineRequest `json:"new_products,omitempty"`
	TaxIDs        []uuid.UUID                     `json:"tax_ids,omitempty"`
	PaymentMethod string                          `json:"payment_method" binding:"required"`
	AmountPaid    decimal.Decimal                 `json:"amount_paid"`
	Notes         string                          `json:"notes,omitempty"`
}

// PurchaseItemResponse is one line of a purchase response
type PurchaseItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseResponse is the external representation of a procurement document
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	Date           time.Time              `json:"date"`
	Items          []PurchaseItemResponse `json:"items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Taxes          []InvoiceTaxResponse   `json:"taxes,omitempty"`
	Total          decimal.Decimal        `json:"total"`
	PaymentMethod  string                 `json:"payment_method"`
	AmountPaid     decimal.Decimal        `json:"amount_paid"`
	BalanceDue     decimal.Decimal        `json:"balance_due"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ToPurchaseResponse converts a purchase to its response representation
func ToPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	resp := &PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		Date:           p.Date,
		Subtotal:       p.Subtotal,
		Total:          p.Total,
		PaymentMethod:  p.PaymentMethod,
		AmountPaid:     p.AmountPaid,
		BalanceDue:     p.BalanceDue,
		Status:         string(p.Status),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, PurchaseItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	for _, tax := range p.Taxes {
		resp.Taxes = append(resp.Taxes, InvoiceTaxResponse{
			TaxID:  tax.TaxID,
			Name:   tax.Name,
			Rate:   tax.Rate,
			Amount: tax.Amount,
		})
	}
	return resp
}

// InvoiceListResponse is a paginated list of invoices
type InvoiceListResponse struct {
	Items      []InvoiceResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// PurchaseListResponse is a paginated list of purchases
type PurchaseListResponse struct {
	Items      []PurchaseResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}
