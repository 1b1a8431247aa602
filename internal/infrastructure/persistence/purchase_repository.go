package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(purchase).Error
	})
}

func (r *GormPurchaseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *GormPurchaseRepository) FindByNumberForOwner(ctx context.Context, ownerID uuid.UUID, purchaseNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND purchase_number = ?", ownerID, purchaseNumber).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *GormPurchaseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	if err := r.scopedQuery(ctx, ownerID, filter).
		Preload("Items").
		Preload("Taxes").
		Order(orderClause(filter, "date DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND supplier_id = ?", ownerID, supplierID).
		Order("date DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *GormPurchaseRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scopedQuery(ctx, ownerID, filter).
		Model(&trade.Purchase{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&trade.Purchase{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseTax{}).Error
	})
}

func (r *GormPurchaseRepository) scopedQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("purchase_number LIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}
