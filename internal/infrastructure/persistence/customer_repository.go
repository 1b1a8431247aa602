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

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) FindByPhone(ctx context.Context, ownerID uuid.UUID, phoneNumber string) (*partner.Customer, error) {
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Phone number cannot be empty")
	}
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND phone_number = ?", ownerID, phoneNumber).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	if err := r.scopedQuery(ctx, ownerID, filter).
		Order(orderClause(filter, "created_at DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scopedQuery(ctx, ownerID, filter).
		Model(&partner.Customer{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Update writes only the contact columns. Balance is excluded from the
// column list; ApplyBalanceDelta is the only write that moves it.
func (r *GormCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("owner_id = ? AND id = ?", customer.OwnerID, customer.ID).
		Updates(map[string]interface{}{
			"name":         customer.Name,
			"phone_number": customer.PhoneNumber,
			"email":        customer.Email,
			"address":      customer.Address,
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
// returns the re-read customer.
func (r *GormCustomerRepository) ApplyBalanceDelta(ctx context.Context, ownerID, id uuid.UUID, delta decimal.Decimal) (*partner.Customer, error) {
	result := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
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

func (r *GormCustomerRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&partner.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) scopedQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone_number LIKE ?", pattern, pattern)
	}
	return query
}
