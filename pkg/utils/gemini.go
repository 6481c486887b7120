package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiVibeClient implements VibeClientInterface on Google's Gemini models.
// The free tier is enough for this workload.
type GeminiVibeClient struct {
	client *genai.Client
	model  string
}

func NewGeminiVibeClient(apiKey, model string) (*GeminiVibeClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	c := &GeminiVibeClient{model: model}
	if apiKey == "" {
		// Unconfigured client still satisfies the interface; every call
		// returns the stub payload.
		return c, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *GeminiVibeClient) SummarizeReviews(ctx context.Context, reviews []string) string {
	if c.client == nil {
		log.Println("GEMINI_API_KEY not set, returning stub vibe payload")
		return notConfiguredPayload()
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(250)

	prompt := vibeSystemPrompt + "\n\n" + buildVibePrompt(reviews)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Gemini API call failed: %v", err)
		return apiFailurePayload(err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Println("Gemini API returned no candidates")
		return apiFailurePayload(errNoContent)
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
}

func (c *GeminiVibeClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
