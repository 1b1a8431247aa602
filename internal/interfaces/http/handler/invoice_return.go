package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/storekit/backend/internal/application/trade"
)

// InvoiceReturnHandler handles return document endpoints
type InvoiceReturnHandler struct {
	BaseHandler
	returnService *tradeapp.InvoiceReturnService
}

// NewInvoiceReturnHandler creates a new InvoiceReturnHandler
func NewInvoiceReturnHandler(returnService *tradeapp.InvoiceReturnService) *InvoiceReturnHandler {
	return &InvoiceReturnHandler{returnService: returnService}
}

// Create records goods coming back against an invoice, restocking them and
// moving the invoice's return state.
func (h *InvoiceReturnHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreateInvoiceReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.returnService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one return document
func (h *InvoiceReturnHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	resp, err := h.returnService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListForInvoice returns all returns recorded against an invoice
func (h *InvoiceReturnHandler) ListForInvoice(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.returnService.ListForInvoice(c.Request.Context(), owner, invoiceID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}
