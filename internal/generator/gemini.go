package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
)

// GeminiGenerator generates questions with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// Compile-time check: *GeminiGenerator satisfies the Generator interface.
var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini client. baseURL overrides the API endpoint when set.
func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string) (*GeminiGenerator, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate asks Gemini for count questions
func (g *GeminiGenerator) Generate(ctx context.Context, topic, difficulty string, count int) ([]models.QuestionDraft, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(topic, difficulty, count)), nil)
	if err != nil {
		return nil, apperr.Upstream("gemini request failed", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, apperr.Upstream("gemini returned empty content", nil)
	}
	return ParseQuestions(text, count)
}
