package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/generator"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
)

const (
	DefaultQuestionCount = 5
	MaxGenerateCount     = 10
	DefaultTopic         = "Python"
	DefaultDifficulty    = "beginner"
	anyTopicFallback     = 5

	DefaultGenerateTimeout = 10 * time.Second
)

// QuestionStore is the persisted tier of the fallback chain
type QuestionStore interface {
	RandomQuestions(ctx context.Context, topic, difficulty string, limit int) ([]models.Question, error)
	RandomAnyQuestions(ctx context.Context, limit int) ([]models.Question, error)
	QuestionTexts(ctx context.Context, topic, difficulty string) (map[string]bool, error)
	CreateQuestion(ctx context.Context, q *models.Question) error
}

// QuestionBank is the static tier of the fallback chain
type QuestionBank interface {
	Questions(topic, difficulty string, count int, exclude map[string]bool) []models.QuestionDraft
}

// GoalReader loads a user's goal
type GoalReader interface {
	GetGoal(ctx context.Context, userID string) (*models.UserGoal, error)
}

// QuestionService resolves practice questions from storage, the generator and the built-in bank
type QuestionService struct {
	store     QuestionStore
	generator generator.Generator
	bank      QuestionBank
	goals     GoalReader
	log       *logger.Logger

	generateTimeout time.Duration
}

// NewQuestionService creates a new question service
func NewQuestionService(store QuestionStore, gen generator.Generator, bank QuestionBank, goals GoalReader, log *logger.Logger) *QuestionService {
	if gen == nil {
		gen = generator.Disabled{}
	}
	return &QuestionService{
		store:     store,
		generator: gen,
		bank:      bank,
		goals:     goals,
		log:       log,

		generateTimeout: DefaultGenerateTimeout,
	}
}

// SetGenerateTimeout bounds each generator call. Non-positive values keep the current bound.
func (s *QuestionService) SetGenerateTimeout(d time.Duration) {
	if d > 0 {
		s.generateTimeout = d
	}
}

// Resolve returns up to count questions for topic and difficulty.
// Only generated or bank questions are written, and only when storage falls short.
func (s *QuestionService) Resolve(ctx context.Context, topic, difficulty string, count int) (*models.Resolution, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	existing, err := s.store.RandomQuestions(ctx, topic, difficulty, count)
	if err != nil {
		return nil, err
	}
	if len(existing) >= count {
		return &models.Resolution{Questions: existing[:count], Source: models.SourceStored}, nil
	}

	shortfall := count - len(existing)
	source := models.SourceGenerated
	drafts := s.generate(ctx, topic, difficulty, shortfall)

	if len(drafts) == 0 && s.bank != nil {
		known, err := s.store.QuestionTexts(ctx, topic, difficulty)
		if err != nil {
			return nil, err
		}
		drafts = s.bank.Questions(topic, difficulty, shortfall, known)
		source = models.SourceBuiltin
	}

	if len(drafts) == 0 {
		if len(existing) == 0 {
			return &models.Resolution{
				Questions: []models.Question{},
				Source:    models.SourceNone,
				Message:   fmt.Sprintf("No questions available for %s/%s.", topic, difficulty),
			}, nil
		}
		return &models.Resolution{Questions: existing, Source: models.SourcePartial}, nil
	}

	questions := existing
	added := 0
	for _, d := range drafts {
		q := models.Question{
			Topic:         topic,
			Difficulty:    difficulty,
			QuestionText:  d.QuestionText,
			Options:       d.Options,
			CorrectOption: d.CorrectOption,
			Explanation:   d.Explanation,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.store.CreateQuestion(ctx, &q); err != nil {
			if len(questions) == 0 {
				return nil, err
			}
			s.log.Warn("failed to save question, serving those already saved",
				"topic", topic, "difficulty", difficulty, "saved", added, "error", err)
			source = models.SourcePartial
			break
		}
		questions = append(questions, q)
		added++
	}

	s.log.Debug("resolved questions",
		"topic", topic, "difficulty", difficulty,
		"stored", len(existing), "added", added, "source", string(source))

	return &models.Resolution{Questions: questions, Source: source}, nil
}

// generate asks the generator for questions and degrades to none on any
// failure, including the call outliving generateTimeout
func (s *QuestionService) generate(ctx context.Context, topic, difficulty string, count int) []models.QuestionDraft {
	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	drafts, err := s.generator.Generate(ctx, topic, difficulty, count)
	if err != nil {
		if !errors.Is(err, generator.ErrDisabled) {
			s.log.Warn("question generation failed", "topic", topic, "difficulty", difficulty, "error", err)
		}
		return nil
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts
}

// Generate resolves questions for an explicit request, applying defaults and the count cap
func (s *QuestionService) Generate(ctx context.Context, topic, difficulty string, count int) (*models.Resolution, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if count > MaxGenerateCount {
		count = MaxGenerateCount
	}
	return s.Resolve(ctx, topic, difficulty, count)
}

// Daily resolves the questions for a user's goal, falling back to any topic when nothing matches
func (s *QuestionService) Daily(ctx context.Context, userID string) (*models.Resolution, error) {
	goal, err := s.goals.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, apperr.Validation("Please set a learning goal first")
	}

	res, err := s.Resolve(ctx, goal.Topic, goal.Difficulty, goal.DailyTarget())
	if err != nil {
		return nil, err
	}
	if len(res.Questions) > 0 {
		return res, nil
	}

	others, err := s.store.RandomAnyQuestions(ctx, anyTopicFallback)
	if err != nil {
		return nil, err
	}
	if len(others) == 0 {
		return res, nil
	}
	return &models.Resolution{Questions: others, Source: models.SourcePartial}, nil
}
