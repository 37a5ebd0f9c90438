// Package generator produces multiple choice questions from a generative
// text API. Responses must be a raw JSON array matching a fixed schema;
// anything else is reported as an upstream failure.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
)

// ErrDisabled is returned when no generative backend is configured
var ErrDisabled = errors.New("question generation is disabled")

// Generator creates new questions for a topic and difficulty
type Generator interface {
	Generate(ctx context.Context, topic, difficulty string, count int) ([]models.QuestionDraft, error)
}

// Disabled is the Generator used when no API credentials are configured
type Disabled struct{}

func (Disabled) Generate(context.Context, string, string, int) ([]models.QuestionDraft, error) {
	return nil, ErrDisabled
}

// BuildPrompt returns the instruction sent to the generative API
func BuildPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`Generate %d multiple choice questions about %s at a %s level.
Return ONLY a raw JSON array of objects. No markdown formatting, no code blocks, just the JSON.
Each object must have exactly these keys:
- "question_text": The question string
- "options": An object with exactly 4 string keys "A", "B", "C", "D" mapping to the 4 choices
- "correct_option": A string "A", "B", "C", or "D"
- "explanation": A brief string explaining why the answer is correct
`, count, topic, difficulty)
}

// StripCodeFences removes a surrounding markdown code fence, if any
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

var requiredKeys = []string{"correct_option", "explanation", "options", "question_text"}

// ParseQuestions decodes and validates a generator response. At most limit
// questions are returned when limit is positive.
func ParseQuestions(text string, limit int) ([]models.QuestionDraft, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &raw); err != nil {
		return nil, apperr.Upstream("generator returned malformed JSON", err)
	}
	if len(raw) == 0 {
		return nil, apperr.Upstream("generator returned no questions", nil)
	}

	drafts := make([]models.QuestionDraft, 0, len(raw))
	for i, obj := range raw {
		draft, err := parseDraft(obj)
		if err != nil {
			return nil, apperr.Upstream(fmt.Sprintf("generator question %d is invalid", i), err)
		}
		drafts = append(drafts, draft)
	}

	if limit > 0 && len(drafts) > limit {
		drafts = drafts[:limit]
	}
	return drafts, nil
}

func parseDraft(obj map[string]json.RawMessage) (models.QuestionDraft, error) {
	var draft models.QuestionDraft

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if strings.Join(keys, ",") != strings.Join(requiredKeys, ",") {
		return draft, fmt.Errorf("unexpected keys %v", keys)
	}

	if err := json.Unmarshal(obj["question_text"], &draft.QuestionText); err != nil {
		return draft, fmt.Errorf("question_text: %w", err)
	}
	if strings.TrimSpace(draft.QuestionText) == "" {
		return draft, errors.New("question_text is empty")
	}
	if err := json.Unmarshal(obj["explanation"], &draft.Explanation); err != nil {
		return draft, fmt.Errorf("explanation: %w", err)
	}
	if err := json.Unmarshal(obj["correct_option"], &draft.CorrectOption); err != nil {
		return draft, fmt.Errorf("correct_option: %w", err)
	}
	if err := json.Unmarshal(obj["options"], &draft.Options); err != nil {
		return draft, fmt.Errorf("options: %w", err)
	}

	if len(draft.Options) != len(models.OptionKeys) {
		return draft, fmt.Errorf("options must have exactly %d entries", len(models.OptionKeys))
	}
	for _, key := range models.OptionKeys {
		if strings.TrimSpace(draft.Options[key]) == "" {
			return draft, fmt.Errorf("option %s is missing", key)
		}
	}
	if _, ok := draft.Options[draft.CorrectOption]; !ok {
		return draft, fmt.Errorf("correct_option %q is not one of A-D", draft.CorrectOption)
	}

	return draft, nil
}
