// Package questionbank holds the built-in questions served when neither the
// database nor the generative API can satisfy a request.
package questionbank

import (
	"strings"

	"skillsprint/internal/models"
)

type bankKey struct {
	topic      string
	difficulty string
}

// Bank is an immutable set of questions keyed by topic and difficulty
type Bank struct {
	questions map[bankKey][]models.QuestionDraft
}

// New returns the built-in bank
func New() *Bank {
	return NewFromEntries(builtinEntries())
}

// Entry is one question of a bank together with its key
type Entry struct {
	Topic      string
	Difficulty string
	Question   models.QuestionDraft
}

// NewFromEntries builds a bank from arbitrary entries
func NewFromEntries(entries []Entry) *Bank {
	b := &Bank{questions: make(map[bankKey][]models.QuestionDraft)}
	for _, e := range entries {
		k := key(e.Topic, e.Difficulty)
		b.questions[k] = append(b.questions[k], e.Question)
	}
	return b
}

func key(topic, difficulty string) bankKey {
	return bankKey{
		topic:      strings.ToLower(strings.TrimSpace(topic)),
		difficulty: strings.ToLower(strings.TrimSpace(difficulty)),
	}
}

// Questions returns up to count questions for topic and difficulty, in bank
// order, skipping any whose text is in exclude. Lookup ignores case.
func (b *Bank) Questions(topic, difficulty string, count int, exclude map[string]bool) []models.QuestionDraft {
	var out []models.QuestionDraft
	for _, q := range b.questions[key(topic, difficulty)] {
		if len(out) >= count {
			break
		}
		if exclude[q.QuestionText] {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Size returns the number of questions held for topic and difficulty
func (b *Bank) Size(topic, difficulty string) int {
	return len(b.questions[key(topic, difficulty)])
}

func q(text, a, b, c, d, correct, explanation string) models.QuestionDraft {
	return models.QuestionDraft{
		QuestionText:  text,
		Options:       map[string]string{"A": a, "B": b, "C": c, "D": d},
		CorrectOption: correct,
		Explanation:   explanation,
	}
}

func group(topic, difficulty string, questions ...models.QuestionDraft) []Entry {
	entries := make([]Entry, 0, len(questions))
	for _, question := range questions {
		entries = append(entries, Entry{Topic: topic, Difficulty: difficulty, Question: question})
	}
	return entries
}
