package db_models

type Place struct {
	BaseModel
	Name     string `gorm:"not null"`
	City     string `gorm:"not null;index"`
	Category string `gorm:"not null"`

	Address   *string
	Latitude  *float64
	Longitude *float64

	Reviews []Review     `gorm:"foreignKey:PlaceID"`
	Vibe    *VibeSummary `gorm:"foreignKey:PlaceID"`
}
