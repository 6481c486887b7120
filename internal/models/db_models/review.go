package db_models

import "github.com/google/uuid"

// Review rows are only ever written by the scrape-and-store flow. There is
// no uniqueness constraint on content, so a re-scrape accumulates duplicates.
type Review struct {
	BaseModel
	PlaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Source  string    `gorm:"not null"`
	Content string    `gorm:"not null"`
	Rating  *float64
	Date    *string
}
