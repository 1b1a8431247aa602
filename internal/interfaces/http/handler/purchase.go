package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/storekit/backend/internal/application/trade"
)

// PurchaseHandler handles procurement document endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create records a purchase against existing catalog products
func (h *PurchaseHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.purchaseService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateWithNewProducts records a purchase whose lines may introduce
// products not yet in the catalog
func (h *PurchaseHandler) CreateWithNewProducts(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req tradeapp.CreatePurchaseWithNewProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.purchaseService.CreateWithNewProducts(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByNumber returns a purchase by its business number
func (h *PurchaseHandler) GetByNumber(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	resp, err := h.purchaseService.GetByNumber(c.Request.Context(), owner, c.Param("number"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.purchaseService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListForSupplier returns all purchases received from a supplier
func (h *PurchaseHandler) ListForSupplier(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	supplierID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	resp, err := h.purchaseService.ListForSupplier(c.Request.Context(), owner, supplierID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of purchases
func (h *PurchaseHandler) List(c *gin.Context) {
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

	resp, err := h.purchaseService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}
