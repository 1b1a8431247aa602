package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormInventoryReportRepository implements report.InventoryReportRepository using GORM
type GormInventoryReportRepository struct {
	db *gorm.DB
}

// NewGormInventoryReportRepository creates a new GormInventoryReportRepository
func NewGormInventoryReportRepository(db *gorm.DB) *GormInventoryReportRepository {
	return &GormInventoryReportRepository{db: db}
}

func (r *GormInventoryReportRepository) GetInventorySummary(ctx context.Context, ownerID uuid.UUID, lowStockThreshold int64) (*report.InventorySummary, error) {
	var summary report.InventorySummary
	if err := r.db.WithContext(ctx).Table("products").
		Select(`COUNT(*) AS product_count,
			COALESCE(SUM(stock), 0) AS total_units,
			COALESCE(SUM(stock * cost), 0) AS stock_value,
			COALESCE(SUM(stock * retail_price), 0) AS retail_value,
			COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock,
			COALESCE(SUM(CASE WHEN stock > 0 AND stock <= ? THEN 1 ELSE 0 END), 0) AS low_stock_count`,
			lowStockThreshold).
		Where("owner_id = ?", ownerID).
		Scan(&summary).Error; err != nil {
		return nil, err
	}
	summary.OwnerID = ownerID
	return &summary, nil
}

func (r *GormInventoryReportRepository) GetLowStockProducts(ctx context.Context, ownerID uuid.UUID, threshold int64) ([]report.StockLevel, error) {
	var levels []report.StockLevel
	if err := r.db.WithContext(ctx).Table("products").
		Select(`id AS product_id,
			name AS product_name,
			category,
			stock,
			cost,
			stock * cost AS stock_value`).
		Where("owner_id = ?", ownerID).
		Where("stock <= ?", threshold).
		Order("stock ASC, name ASC").
		Scan(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}
