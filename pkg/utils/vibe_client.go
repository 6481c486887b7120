package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// VibePayload is the shape every summarizer reply decodes into. The three
// keys are always present, even when the upstream call failed.
type VibePayload struct {
	Summary   string   `json:"summary"`
	MoodTags  []string `json:"mood_tags"`
	KeyThemes []string `json:"key_themes"`
}

// VibeClientInterface summarizes review texts into a vibe payload. The
// return value is always a string that parses as a VibePayload; transport
// and configuration failures are folded into the payload itself so callers
// never see an error.
type VibeClientInterface interface {
	SummarizeReviews(ctx context.Context, reviews []string) string
}

const vibeSystemPrompt = "You are a helpful assistant that analyzes customer reviews and summarizes the vibe of a place into a JSON format."

func buildVibePrompt(reviews []string) string {
	reviewsText := strings.Join(reviews, "\n- ")

	return fmt.Sprintf(`Based on the following user reviews, analyze the overall vibe of the place.
Provide a summary that includes a short description, mood tags, and key themes.

Reviews:
- %s

Please provide your response as a JSON object with the following keys: "summary", "mood_tags", "key_themes".
- The "summary" should be a short, catchy description with 1-3 emojis.
- The "mood_tags" should be a list of 3-5 relevant string tags (e.g., "cozy", "lively", "quiet").
- The "key_themes" should be a list of 3-5 relevant string themes (e.g., "good for dates", "great coffee", "noisy").`, reviewsText)
}

func notConfiguredPayload() string {
	return marshalPayload(VibePayload{
		Summary:   "AI Summarizer is not configured. Missing API Key.",
		MoodTags:  []string{"error"},
		KeyThemes: []string{"configuration"},
	})
}

func apiFailurePayload(err error) string {
	return marshalPayload(VibePayload{
		Summary:   fmt.Sprintf("An error occurred while generating the AI summary: %v", err),
		MoodTags:  []string{"error"},
		KeyThemes: []string{"api_failure"},
	})
}

func marshalPayload(p VibePayload) string {
	data, err := json.Marshal(p)
	if err != nil {
		// A flat struct of strings cannot fail to marshal.
		return `{"summary":"internal error","mood_tags":["error"],"key_themes":["api_failure"]}`
	}
	return string(data)
}

// NewVibeClient builds a summarizer for the configured provider.
func NewVibeClient(provider, apiKey, model string) (VibeClientInterface, error) {
	switch strings.ToLower(provider) {
	case "", "openai":
		return NewOpenAIVibeClient(apiKey, model), nil
	case "gemini":
		return NewGeminiVibeClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
