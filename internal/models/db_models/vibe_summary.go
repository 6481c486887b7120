package db_models

import "github.com/google/uuid"

// VibeSummary holds at most one AI-generated summary per place. MoodTags and
// KeyThemes are stored as serialized JSON arrays and decoded at the service
// layer on read.
type VibeSummary struct {
	BaseModel
	PlaceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Summary   string    `gorm:"not null"`
	MoodTags  string    `gorm:"not null"`
	KeyThemes string    `gorm:"not null"`
}
