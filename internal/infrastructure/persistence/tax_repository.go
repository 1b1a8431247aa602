package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTaxRepository implements catalog.TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

func (r *GormTaxRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Tax, error) {
	var tax catalog.Tax
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

func (r *GormTaxRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Tax, error) {
	var taxes []catalog.Tax
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(orderClause(filter, "created_at ASC")).
		Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

func (r *GormTaxRepository) Save(ctx context.Context, tax *catalog.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

func (r *GormTaxRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&catalog.Tax{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
