package persistence

import (
	"context"

	"github.com/storekit/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormPurchaseReportRepository implements report.PurchaseReportRepository
// using GORM
type GormPurchaseReportRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReportRepository creates a new GormPurchaseReportRepository
func NewGormPurchaseReportRepository(db *gorm.DB) *GormPurchaseReportRepository {
	return &GormPurchaseReportRepository{db: db}
}

func (r *GormPurchaseReportRepository) GetSupplierPurchaseRanking(ctx context.Context, filter report.PurchaseReportFilter) ([]report.SupplierPurchaseRanking, error) {
	var ranking []report.SupplierPurchaseRanking
	if err := r.db.WithContext(ctx).Table("purchases pu").
		Select(`pu.supplier_id,
			s.name AS supplier_name,
			COUNT(*) AS purchase_count,
			COALESCE(SUM(pu.total), 0) AS total_spent`).
		Joins("JOIN suppliers s ON s.id = pu.supplier_id").
		Where("pu.owner_id = ?", filter.OwnerID).
		Where("pu.date BETWEEN ? AND ?", filter.From, filter.To).
		Group("pu.supplier_id, s.name").
		Order("total_spent DESC").
		Limit(filter.Limit).
		Scan(&ranking).Error; err != nil {
		return nil, err
	}
	return ranking, nil
}
