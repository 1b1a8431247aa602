package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/storekit/backend/internal/application/trade"
)

// InvoiceHandler handles sale document endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *tradeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *tradeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create runs the invoice transaction: party resolution, stock deduction,
// balance update and document persistence as one orchestrated unit.
func (h *InvoiceHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByNumber returns a sale document by its business number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	resp, err := h.invoiceService.GetByNumber(c.Request.Context(), owner, c.Param("number"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a sale document by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListForCustomer returns all sale documents billed to a customer
func (h *InvoiceHandler) ListForCustomer(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	customerID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.invoiceService.ListForCustomer(c.Request.Context(), owner, customerID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of sale documents
func (h *InvoiceHandler) List(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if from := c.Query("date_from"); from != "" {
		filter.Filters["date_from"] = from
	}
	if to := c.Query("date_to"); to != "" {
		filter.Filters["date_to"] = to
	}

	resp, err := h.invoiceService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}
