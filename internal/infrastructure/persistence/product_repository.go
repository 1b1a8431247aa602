package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.scopedQuery(ctx, ownerID, filter)
	if err := query.
		Order(orderClause(filter, "created_at DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scopedQuery(ctx, ownerID, filter).
		Model(&catalog.Product{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return err
	}
	return nil
}

// Update writes only the descriptive and pricing columns. Stock is excluded
// from the column list; DeductStock and Restock are the only writes that
// move it.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("owner_id = ? AND id = ?", product.OwnerID, product.ID).
		Updates(map[string]interface{}{
			"name":            product.Name,
			"category":        product.Category,
			"company":         product.Company,
			"cost":            product.Cost,
			"retail_price":    product.RetailPrice,
			"wholesale_price": product.WholesalePrice,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeductStock decrements stock with a single conditional UPDATE so that
// concurrent deductions can never drive stock below zero. A zero row count
// is disambiguated by re-reading the product: either it does not exist or
// its stock was short.
func (r *GormProductRepository) DeductStock(ctx context.Context, ownerID, id uuid.UUID, quantity int64) (*catalog.Product, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Deduct quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("owner_id = ? AND id = ? AND stock >= ?", ownerID, id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		product, err := r.FindByIDForOwner(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK",
			"Insufficient stock for product %s: have %d, need %d", product.Name, product.Stock, quantity)
	}

	return r.FindByIDForOwner(ctx, ownerID, id)
}

// Restock increments stock with a single UPDATE.
func (r *GormProductRepository) Restock(ctx context.Context, ownerID, id uuid.UUID, quantity int64) (*catalog.Product, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Restock quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	return r.FindByIDForOwner(ctx, ownerID, id)
}

func (r *GormProductRepository) scopedQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR category LIKE ? OR company LIKE ?", pattern, pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	return query
}
