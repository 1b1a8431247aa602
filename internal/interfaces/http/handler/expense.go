package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/storekit/backend/internal/application/finance"
)

// ExpenseHandler handles operating expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create records a new expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenseService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update modifies an existing expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenseService.Update(c.Request.Context(), owner, id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns an expense by ID
func (h *ExpenseHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	resp, err := h.expenseService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of expenses
func (h *ExpenseHandler) List(c *gin.Context) {
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
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	resp, err := h.expenseService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), owner, id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
