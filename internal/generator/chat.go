package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
)

// ChatGenerator generates questions by calling an OpenAI-compatible
// chat completions endpoint (Ollama, LM Studio, vLLM, etc.).
type ChatGenerator struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls
}

// Compile-time check: *ChatGenerator satisfies the Generator interface.
var _ Generator = (*ChatGenerator)(nil)

const defaultChatTimeout = 10 * time.Second

// NewChatGenerator creates a generator that calls the given LLM endpoint.
// A non-positive timeout uses the default.
func NewChatGenerator(url, model string, timeout time.Duration) *ChatGenerator {
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &ChatGenerator{
		url:   strings.TrimRight(url, "/"),
		model: model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends a single request. There is no retry.
func (g *ChatGenerator) Generate(ctx context.Context, topic, difficulty string, count int) ([]models.QuestionDraft, error) {
	content, err := g.call(ctx, BuildPrompt(topic, difficulty, count))
	if err != nil {
		return nil, apperr.Upstream("llm request failed", err)
	}
	return ParseQuestions(content, count)
}

func (g *ChatGenerator) call(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("LLM returned no content")
	}

	return chatResp.Choices[0].Message.Content, nil
}
