package request_models

type CreatePlaceRequest struct {
	Name      string   `json:"name" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
