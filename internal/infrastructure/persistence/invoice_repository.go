package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements trade.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create persists the invoice with its line items and tax snapshots in one
// transaction
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
}

func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByNumberForOwner(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND invoice_number = ?", ownerID, invoiceNumber).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]trade.Invoice, error) {
	var invoices []trade.Invoice
	if err := r.scopedQuery(ctx, ownerID, filter).
		Preload("Items").
		Preload("Taxes").
		Order(orderClause(filter, "date DESC")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]trade.Invoice, error) {
	var invoices []trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Taxes").
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Order("date DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *GormInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scopedQuery(ctx, ownerID, filter).
		Model(&trade.Invoice{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateReturnState persists only the fields moved by Invoice.RecordReturn
func (r *GormInvoiceRepository) UpdateReturnState(ctx context.Context, invoice *trade.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Invoice{}).
		Where("owner_id = ? AND id = ?", invoice.OwnerID, invoice.ID).
		Updates(map[string]interface{}{
			"status":     invoice.Status,
			"return_id":  invoice.ReturnID,
			"updated_at": invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&trade.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&trade.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Where("invoice_id = ?", id).Delete(&trade.InvoiceTax{}).Error
	})
}

func (r *GormInvoiceRepository) scopedQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if from, ok := filter.Filters["date_from"]; ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filter.Filters["date_to"]; ok {
		query = query.Where("date <= ?", to)
	}
	return query
}
