package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentSequence is one per-day counter row. The composite primary key
// makes the upsert below target exactly one row per (owner, kind, day).
type DocumentSequence struct {
	OwnerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind    string    `gorm:"primaryKey;size:8"`
	Day     string    `gorm:"primaryKey;size:6"`
	LastSeq int64     `gorm:"not null"`
}

// TableName pins the table name used by the raw upsert
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// GormDocumentSequenceRepository implements trade.DocumentSequenceRepository
// using GORM
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

// NewGormDocumentSequenceRepository creates a new GormDocumentSequenceRepository
func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

// Next allocates the next sequence value for (owner, kind, day) with a
// single atomic upsert increment. Reading the counter back and deriving
// the next value client-side would race; the RETURNING clause hands each
// caller a value no other caller can observe.
func (r *GormDocumentSequenceRepository) Next(ctx context.Context, ownerID uuid.UUID, kind trade.DocumentKind, day time.Time) (int64, error) {
	seq := DocumentSequence{
		OwnerID: ownerID,
		Kind:    kind.String(),
		Day:     day.Format("060102"),
		LastSeq: 1,
	}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "owner_id"}, {Name: "kind"}, {Name: "day"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"last_seq": gorm.Expr("document_sequences.last_seq + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_seq"}}},
		).
		Create(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq.LastSeq, nil
}
