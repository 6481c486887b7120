package response_models

type ScrapeAccepted struct {
	TaskID  string `json:"task_id"`
	PlaceID string `json:"place_id"`
	Message string `json:"message"`
}

type SourceResult struct {
	Source  string `json:"source"`
	Reviews int    `json:"reviews"`
	Error   string `json:"error,omitempty"`
}

type TaskStatus struct {
	ID               string         `json:"id"`
	PlaceID          string         `json:"place_id"`
	Status           string         `json:"status"`
	Sources          []SourceResult `json:"sources"`
	ReviewsScraped   int            `json:"reviews_scraped"`
	SummaryGenerated bool           `json:"summary_generated"`
	Error            string         `json:"error,omitempty"`
}
