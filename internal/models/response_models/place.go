package response_models

type Place struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Category  string   `json:"category"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Review struct {
	ID      string   `json:"id"`
	PlaceID string   `json:"place_id"`
	Source  string   `json:"source"`
	Content string   `json:"content"`
	Rating  *float64 `json:"rating,omitempty"`
	Date    *string  `json:"date,omitempty"`
}

type VibeSummary struct {
	ID        string   `json:"id"`
	PlaceID   string   `json:"place_id"`
	Summary   string   `json:"summary"`
	MoodTags  []string `json:"mood_tags"`
	KeyThemes []string `json:"key_themes"`
}

type SearchResult struct {
	Query   string  `json:"query"`
	Results []Place `json:"results"`
}
