package generator

import (
	"context"

	"skillsprint/internal/config"
)

// New picks the generator backend from configuration: Gemini when an API key
// is set, otherwise an OpenAI-compatible endpoint when LLM_URL is set,
// otherwise Disabled.
func New(ctx context.Context, cfg *config.Config) (Generator, string, error) {
	switch {
	case cfg.GeminiAPIKey != "" && cfg.GeminiAPIKey != "your_api_key_here":
		g, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, "", err
		}
		return g, "gemini", nil
	case cfg.LLMURL != "":
		return NewChatGenerator(cfg.LLMURL, cfg.LLMModel, cfg.GeneratorTimeout), "chat", nil
	default:
		return Disabled{}, "disabled", nil
	}
}
