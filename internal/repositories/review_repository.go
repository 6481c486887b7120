package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vibenav/internal/models/db_models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *db_models.Review) error
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]db_models.Review, error)
	ContentsByPlace(ctx context.Context, placeID uuid.UUID) ([]string, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ContentsByPlace returns just the review texts, in insertion order, for the
// summarizer prompt.
func (r *reviewRepository) ContentsByPlace(ctx context.Context, placeID uuid.UUID) ([]string, error) {
	var contents []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("place_id = ?", placeID).
		Order("created_at").
		Pluck("content", &contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}
