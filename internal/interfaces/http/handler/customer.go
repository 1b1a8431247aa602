package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/storekit/backend/internal/application/partner"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), owner, id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SettleBalance records a payment against the customer's owed balance
func (h *CustomerHandler) SettleBalance(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.SettleBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.SettleBalance(c.Request.Context(), owner, id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customerService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of customers
func (h *CustomerHandler) List(c *gin.Context) {
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

	resp, err := h.customerService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Delete removes a customer; blocked while a balance is outstanding
func (h *CustomerHandler) Delete(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), owner, id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
