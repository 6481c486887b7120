package utils

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIVibeClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIVibeClient(apiKey, model string) *OpenAIVibeClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	c := &OpenAIVibeClient{model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// NewOpenAIVibeClientWithConfig allows pointing the client at any
// OpenAI-compatible endpoint. Tests use it with an httptest server.
func NewOpenAIVibeClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIVibeClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIVibeClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIVibeClient) SummarizeReviews(ctx context.Context, reviews []string) string {
	if c.client == nil {
		log.Println("OPENAI_API_KEY not set, returning stub vibe payload")
		return notConfiguredPayload()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: vibeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildVibePrompt(reviews)},
		},
		Temperature: 0.7,
		MaxTokens:   250,
	})
	if err != nil {
		log.Printf("OpenAI API call failed: %v", err)
		return apiFailurePayload(err)
	}

	if len(resp.Choices) == 0 {
		log.Println("OpenAI API returned no choices")
		return apiFailurePayload(errNoContent)
	}

	return resp.Choices[0].Message.Content
}
