package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/partner"
	"github.com/storekit/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindByNameAndPhone(ctx context.Context, ownerID uuid.UUID, name, phoneNumber string) (*partner.Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ? AND phone_number = ?", ownerID, name, phoneNumber).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	if err := r.scopedQuery(ctx, ownerID, filter).
		Order(orderClause(filter, "created_at DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormSupplierRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scopedQuery(ctx, ownerID, filter).
		Model(&partner.Supplier{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Update writes only the contact columns. Balance is excluded from the
// column list; ApplyBalanceDelta is the only write that moves it.
func (r *GormSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("owner_id = ? AND id = ?", supplier.OwnerID, supplier.ID).
		Updates(map[string]interface{}{
			"name":         supplier.Name,
			"phone_number": supplier.PhoneNumber,
			"email":        supplier.Email,
			"address":      supplier.Address,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ApplyBalanceDelta moves the balance with a single increment UPDATE and
// returns the re-read supplier.
func (r *GormSupplierRepository) ApplyBalanceDelta(ctx context.Context, ownerID, id uuid.UUID, delta decimal.Decimal) (*partner.Supplier, error) {
	result := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByIDForOwner(ctx, ownerID, id)
}

func (r *GormSupplierRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&partner.Supplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSupplierRepository) scopedQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone_number LIKE ?", pattern, pattern)
	}
	return query
}
