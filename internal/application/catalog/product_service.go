package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(ownerID, req.Name, req.Category, req.Company,
		req.Cost, req.RetailPrice, req.WholesalePrice, req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("name", product.Name),
	)
	return ToProductResponse(product), nil
}

// Update updates a product's details and, when given, its pricing
func (s *ProductService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Category, req.Company); err != nil {
		return nil, err
	}

	if req.Cost != nil || req.RetailPrice != nil || req.WholesalePrice != nil {
		cost, retail, wholesale := product.Cost, product.RetailPrice, product.WholesalePrice
		if req.Cost != nil {
			cost = *req.Cost
		}
		if req.RetailPrice != nil {
			retail = *req.RetailPrice
		}
		if req.WholesalePrice != nil {
			wholesale = *req.WholesalePrice
		}
		if err := product.UpdatePricing(cost, retail, wholesale); err != nil {
			return nil, err
		}
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// AdjustStock applies a manual stock adjustment. Positive quantities go
// through the same atomic increment as purchase receipts, negative ones
// through the same guarded decrement as sales.
func (s *ProductService) AdjustStock(ctx context.Context, ownerID, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if req.Quantity == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment quantity cannot be zero")
	}

	var product *catalog.Product
	var err error
	if req.Quantity > 0 {
		product, err = s.products.Restock(ctx, ownerID, id, req.Quantity)
	} else {
		product, err = s.products.DeductStock(ctx, ownerID, id, -req.Quantity)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", id.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int64("quantity", req.Quantity),
		zap.String("reason", req.Reason),
	)
	return ToProductResponse(product), nil
}

// GetByID returns the product with the given ID
func (s *ProductService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns a page of the owner's products
func (s *ProductService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*ProductListResponse, error) {
	products, err := s.products.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &ProductListResponse{
		Items:      make([]ProductResponse, 0, len(products)),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}
	for i := range products {
		resp.Items = append(resp.Items, *ToProductResponse(&products[i]))
	}
	return resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.products.DeleteForOwner(ctx, ownerID, id)
}
