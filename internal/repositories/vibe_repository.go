package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vibenav/internal/models/db_models"
)

type VibeSummaryRepository interface {
	Upsert(ctx context.Context, summary *db_models.VibeSummary) error
	GetByPlaceID(ctx context.Context, placeID uuid.UUID) (*db_models.VibeSummary, error)
}

type vibeSummaryRepository struct {
	db *gorm.DB
}

func NewVibeSummaryRepository(db *gorm.DB) VibeSummaryRepository {
	return &vibeSummaryRepository{db: db}
}

// Upsert inserts the summary or, when one already exists for the place,
// replaces its content in place. The unique index on place_id carries the
// at-most-one-per-place invariant.
func (r *vibeSummaryRepository) Upsert(ctx context.Context, summary *db_models.VibeSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "mood_tags", "key_themes", "updated_at"}),
	}).Create(summary).Error
}

func (r *vibeSummaryRepository) GetByPlaceID(ctx context.Context, placeID uuid.UUID) (*db_models.VibeSummary, error) {
	var summary db_models.VibeSummary
	err := r.db.WithContext(ctx).First(&summary, "place_id = ?", placeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
