package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storekit/backend/internal/application/catalog"
)

// TaxHandler handles tax definition endpoints
type TaxHandler struct {
	BaseHandler
	taxService *catalogapp.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *catalogapp.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Create defines a new tax
func (h *TaxHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req catalogapp.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.taxService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// SetActive toggles whether a tax is offered on new documents
func (h *TaxHandler) SetActive(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.taxService.SetActive(c.Request.Context(), owner, id, *req.Active)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the owner's tax definitions
func (h *TaxHandler) List(c *gin.Context) {
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

	resp, err := h.taxService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a tax definition
func (h *TaxHandler) Delete(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.Delete(c.Request.Context(), owner, id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
