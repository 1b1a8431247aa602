package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormInvoiceReturnRepository implements trade.InvoiceReturnRepository using GORM
type GormInvoiceReturnRepository struct {
	db *gorm.DB
}

// NewGormInvoiceReturnRepository creates a new GormInvoiceReturnRepository
func NewGormInvoiceReturnRepository(db *gorm.DB) *GormInvoiceReturnRepository {
	return &GormInvoiceReturnRepository{db: db}
}

func (r *GormInvoiceReturnRepository) Create(ctx context.Context, ret *trade.InvoiceReturn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ret).Error
	})
}

func (r *GormInvoiceReturnRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*trade.InvoiceReturn, error) {
	var ret trade.InvoiceReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *GormInvoiceReturnRepository) FindByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]trade.InvoiceReturn, error) {
	var returns []trade.InvoiceReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND invoice_id = ?", ownerID, invoiceID).
		Order("date ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

func (r *GormInvoiceReturnRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]trade.InvoiceReturn, error) {
	var returns []trade.InvoiceReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ?", ownerID).
		Order(orderClause(filter, "date DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

func (r *GormInvoiceReturnRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.InvoiceReturn{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvoiceReturnRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&trade.InvoiceReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("return_id = ?", id).Delete(&trade.ReturnItem{}).Error
	})
}
