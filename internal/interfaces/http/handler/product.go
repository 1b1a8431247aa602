package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storekit/backend/internal/application/catalog"
)

// ProductHandler handles catalog product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), owner, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a product's details and pricing
func (h *ProductHandler) Update(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), owner, id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustStock applies a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.productService.AdjustStock(c.Request.Context(), owner, id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one product
func (h *ProductHandler) Get(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.productService.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of products
func (h *ProductHandler) List(c *gin.Context) {
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

	resp, err := h.productService.List(c.Request.Context(), owner, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), owner, id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
