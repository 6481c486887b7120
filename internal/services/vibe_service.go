package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"vibenav/internal/models/db_models"
	"vibenav/internal/models/response_models"
	"vibenav/internal/repositories"
	"vibenav/pkg/utils"
)

type VibeServiceInterface interface {
	GetByPlace(ctx context.Context, placeID uuid.UUID) (response_models.VibeSummary, error)
	UpsertFromPayload(ctx context.Context, placeID uuid.UUID, rawPayload string) error
}

type VibeService struct {
	vibeRepo repositories.VibeSummaryRepository
}

func NewVibeService(vibeRepo repositories.VibeSummaryRepository) VibeServiceInterface {
	return &VibeService{vibeRepo: vibeRepo}
}

func (s *VibeService) GetByPlace(ctx context.Context, placeID uuid.UUID) (response_models.VibeSummary, error) {
	summary, err := s.vibeRepo.GetByPlaceID(ctx, placeID)
	if err != nil {
		log.Printf("Error fetching vibe summary: %v", err)
		return response_models.VibeSummary{}, utils.ErrDatabaseError
	}
	if summary == nil {
		return response_models.VibeSummary{}, utils.ErrVibeNotFound
	}

	return response_models.VibeSummary{
		ID:        summary.ID.String(),
		PlaceID:   summary.PlaceID.String(),
		Summary:   summary.Summary,
		MoodTags:  decodeTagList(summary.MoodTags),
		KeyThemes: decodeTagList(summary.KeyThemes),
	}, nil
}

// UpsertFromPayload parses the summarizer's JSON reply and upserts the row.
// The payload is trusted to carry the three keys; a reply that is not JSON
// at all is rejected.
func (s *VibeService) UpsertFromPayload(ctx context.Context, placeID uuid.UUID, rawPayload string) error {
	var payload utils.VibePayload
	if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
		return fmt.Errorf("summarizer reply is not valid JSON: %w", err)
	}

	moodTags, err := json.Marshal(payload.MoodTags)
	if err != nil {
		return fmt.Errorf("encode mood tags: %w", err)
	}
	keyThemes, err := json.Marshal(payload.KeyThemes)
	if err != nil {
		return fmt.Errorf("encode key themes: %w", err)
	}

	summary := &db_models.VibeSummary{
		PlaceID:   placeID,
		Summary:   payload.Summary,
		MoodTags:  string(moodTags),
		KeyThemes: string(keyThemes),
	}

	if err := s.vibeRepo.Upsert(ctx, summary); err != nil {
		log.Printf("Error upserting vibe summary: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func decodeTagList(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		log.Printf("Error decoding tag list %q: %v", raw, err)
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
