package request_models

import "github.com/google/uuid"

type ScrapeReviewsRequest struct {
	PlaceID       uuid.UUID `json:"place_id" binding:"required"`
	GoogleMapsURL *string   `json:"google_maps_url"`
	RedditURL     *string   `json:"reddit_url"`
}

type CreatePlaceAndScrapeRequest struct {
	Name      string   `json:"name" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	GoogleMapsURL *string `json:"google_maps_url"`
	RedditURL     *string `json:"reddit_url"`
}
