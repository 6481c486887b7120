package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vibenav/internal/models/db_models"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *db_models.Place) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error)
	List(ctx context.Context, city, category string) ([]db_models.Place, error)
	Search(ctx context.Context, query, city string) ([]db_models.Place, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *db_models.Place) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		return uuid.Nil, err
	}
	return place.ID, nil
}

// GetByID follows the repository convention of nil value + nil error when
// no row is found; the service maps that to a not-found sentinel.
func (r *placeRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

// List filters by exact city and category when provided.
func (r *placeRepository) List(ctx context.Context, city, category string) ([]db_models.Place, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Place{})
	if city != "" {
		q = q.Where("city = ?", city)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var places []db_models.Place
	if err := q.Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// Search joins places with their vibe summaries and matches the query
// case-insensitively against name, category, summary and the serialized tag
// lists. Matching against serialized JSON can hit punctuation as well as tag
// content; that mirrors the LIKE-over-text design and is a known limitation.
func (r *placeRepository) Search(ctx context.Context, query, city string) ([]db_models.Place, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Place{}).
		Joins("LEFT JOIN vibe_summaries ON vibe_summaries.place_id = places.id")

	if city != "" {
		q = q.Where("LOWER(places.city) LIKE ?", likePattern(city))
	}
	if query != "" {
		pattern := likePattern(query)
		q = q.Where(
			`LOWER(places.name) LIKE ? OR LOWER(places.category) LIKE ? OR
			 LOWER(vibe_summaries.summary) LIKE ? OR LOWER(vibe_summaries.mood_tags) LIKE ? OR
			 LOWER(vibe_summaries.key_themes) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var places []db_models.Place
	if err := q.Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
