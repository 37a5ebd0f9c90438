package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/apperr"
	"skillsprint/internal/generator"
	"skillsprint/internal/models"
	"skillsprint/internal/questionbank"
	"skillsprint/internal/repository"
)

type fakeGenerator struct {
	drafts    []models.QuestionDraft
	err       error
	calls     int
	lastCount int
}

func (g *fakeGenerator) Generate(_ context.Context, _, _ string, count int) ([]models.QuestionDraft, error) {
	g.calls++
	g.lastCount = count
	if g.err != nil {
		return nil, g.err
	}
	return g.drafts, nil
}

// stallingGenerator never answers on its own and only returns once ctx ends
type stallingGenerator struct{}

func (stallingGenerator) Generate(ctx context.Context, _, _ string, _ int) ([]models.QuestionDraft, error) {
	<-ctx.Done()
	return nil, apperr.Upstream("llm request failed", ctx.Err())
}

// failingStore fails every CreateQuestion after the first failAfter succeed
type failingStore struct {
	*repository.QuestionRepository
	failAfter int
	created   int
}

func (s *failingStore) CreateQuestion(ctx context.Context, q *models.Question) error {
	if s.created >= s.failAfter {
		return errors.New("disk full")
	}
	s.created++
	return s.QuestionRepository.CreateQuestion(ctx, q)
}

func emptyBank() *questionbank.Bank {
	return questionbank.NewFromEntries(nil)
}

func newTestQuestionService(t *testing.T, gen generator.Generator, bank QuestionBank) (*QuestionService, *repository.QuestionRepository) {
	t.Helper()
	db := setupTestDB(t)
	repo := repository.NewQuestionRepository(db)
	return NewQuestionService(repo, gen, bank, repository.NewGoalRepository(db), testLogger()), repo
}

func TestResolveUsesStoredQuestionsWithoutWrites(t *testing.T) {
	db := setupTestDB(t)
	createTestQuestions(t, db, "Go", "beginner", 6)
	repo := repository.NewQuestionRepository(db)
	gen := &fakeGenerator{}
	svc := NewQuestionService(repo, gen, emptyBank(), repository.NewGoalRepository(db), testLogger())

	res, err := svc.Resolve(context.Background(), "Go", "beginner", 5)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
	assert.Equal(t, models.SourceStored, res.Source)
	assert.Zero(t, gen.calls)

	all, err := repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestResolveGeneratesShortfallAndPersists(t *testing.T) {
	db := setupTestDB(t)
	createTestQuestions(t, db, "Go", "beginner", 3)
	repo := repository.NewQuestionRepository(db)
	gen := &fakeGenerator{drafts: []models.QuestionDraft{draft("Generated 1?"), draft("Generated 2?")}}
	svc := NewQuestionService(repo, gen, emptyBank(), repository.NewGoalRepository(db), testLogger())

	res, err := svc.Resolve(context.Background(), "Go", "beginner", 5)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
	assert.Equal(t, models.SourceGenerated, res.Source)
	assert.Equal(t, 2, gen.lastCount)

	seen := map[int64]bool{}
	for _, q := range res.Questions {
		assert.NotZero(t, q.ID)
		assert.False(t, seen[q.ID], "question %d returned twice", q.ID)
		seen[q.ID] = true
	}

	texts, err := repo.QuestionTexts(context.Background(), "Go", "beginner")
	require.NoError(t, err)
	assert.Len(t, texts, 5)
	assert.True(t, texts["Generated 1?"])
	assert.True(t, texts["Generated 2?"])
}

func TestResolveFallsBackToBank(t *testing.T) {
	bank := questionbank.NewFromEntries([]questionbank.Entry{
		{Topic: "Go", Difficulty: "beginner", Question: draft("Bank 1?")},
		{Topic: "Go", Difficulty: "beginner", Question: draft("Bank 2?")},
		{Topic: "Go", Difficulty: "beginner", Question: draft("Bank 3?")},
	})
	gen := &fakeGenerator{err: apperr.Upstream("boom", errors.New("timeout"))}
	svc, repo := newTestQuestionService(t, gen, bank)

	res, err := svc.Resolve(context.Background(), "Go", "beginner", 2)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 2)
	assert.Equal(t, models.SourceBuiltin, res.Source)
	assert.Equal(t, 1, gen.calls)

	// Bank texts already persisted are not offered again
	res, err = svc.Resolve(context.Background(), "Go", "beginner", 5)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 3)

	all, err := repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestResolveShortfall(t *testing.T) {
	t.Run("returns available subset", func(t *testing.T) {
		db := setupTestDB(t)
		createTestQuestions(t, db, "Go", "advanced", 2)
		repo := repository.NewQuestionRepository(db)
		svc := NewQuestionService(repo, generator.Disabled{}, emptyBank(), repository.NewGoalRepository(db), testLogger())

		res, err := svc.Resolve(context.Background(), "Go", "advanced", 5)
		require.NoError(t, err)
		assert.Len(t, res.Questions, 2)
		assert.Equal(t, models.SourcePartial, res.Source)
		assert.Empty(t, res.Message)
	})

	t.Run("explicit message when nothing exists", func(t *testing.T) {
		svc, _ := newTestQuestionService(t, generator.Disabled{}, emptyBank())

		res, err := svc.Resolve(context.Background(), "Go", "advanced", 5)
		require.NoError(t, err)
		assert.NotNil(t, res.Questions)
		assert.Empty(t, res.Questions)
		assert.Equal(t, models.SourceNone, res.Source)
		assert.Equal(t, "No questions available for Go/advanced.", res.Message)
	})
}

func TestGenerateDefaultsAndCap(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestQuestionService(t, gen, emptyBank())

	_, err := svc.Generate(context.Background(), "", "", 50)
	require.NoError(t, err)
	assert.Equal(t, MaxGenerateCount, gen.lastCount)

	_, err = svc.Generate(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuestionCount, gen.lastCount)
}

func TestDaily(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "daily@example.com")
	repo := repository.NewQuestionRepository(db)
	svc := NewQuestionService(repo, generator.Disabled{}, emptyBank(), repository.NewGoalRepository(db), testLogger())

	_, err := svc.Daily(context.Background(), user.ID)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	setTestGoal(t, db, user.ID, "Rust", "beginner", 3)

	res, err := svc.Daily(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Questions)

	// Nothing for the goal, so up to five questions of any topic are served
	createTestQuestions(t, db, "Go", "beginner", 7)
	res, err = svc.Daily(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
	for _, q := range res.Questions {
		assert.Equal(t, "Go", q.Topic)
	}

	createTestQuestions(t, db, "Rust", "beginner", 4)
	res, err = svc.Daily(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, res.Questions, 3)
	for _, q := range res.Questions {
		assert.Equal(t, "Rust", q.Topic, fmt.Sprintf("question %d", q.ID))
	}
}

func TestResolveBoundsSlowGenerator(t *testing.T) {
	bank := questionbank.NewFromEntries([]questionbank.Entry{
		{Topic: "Go", Difficulty: "beginner", Question: draft("Bank 1?")},
		{Topic: "Go", Difficulty: "beginner", Question: draft("Bank 2?")},
	})
	svc, _ := newTestQuestionService(t, stallingGenerator{}, bank)
	svc.SetGenerateTimeout(50 * time.Millisecond)

	start := time.Now()
	res, err := svc.Resolve(context.Background(), "Go", "beginner", 2)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, models.SourceBuiltin, res.Source)
	assert.Len(t, res.Questions, 2)
}

func TestSetGenerateTimeoutIgnoresNonPositive(t *testing.T) {
	svc, _ := newTestQuestionService(t, generator.Disabled{}, emptyBank())
	svc.SetGenerateTimeout(0)
	assert.Equal(t, DefaultGenerateTimeout, svc.generateTimeout)

	svc.SetGenerateTimeout(3 * time.Second)
	assert.Equal(t, 3*time.Second, svc.generateTimeout)
}

func TestResolveSaveFailure(t *testing.T) {
	drafts := []models.QuestionDraft{draft("Generated 1?"), draft("Generated 2?"), draft("Generated 3?")}

	t.Run("serves the questions saved before the failure", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repository.NewQuestionRepository(db)
		store := &failingStore{QuestionRepository: repo, failAfter: 2}
		svc := NewQuestionService(store, &fakeGenerator{drafts: drafts}, emptyBank(), repository.NewGoalRepository(db), testLogger())

		res, err := svc.Resolve(context.Background(), "Go", "beginner", 3)
		require.NoError(t, err)
		assert.Len(t, res.Questions, 2)
		assert.Equal(t, models.SourcePartial, res.Source)

		all, err := repo.ListQuestions(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("fails when nothing could be saved", func(t *testing.T) {
		db := setupTestDB(t)
		store := &failingStore{QuestionRepository: repository.NewQuestionRepository(db)}
		svc := NewQuestionService(store, &fakeGenerator{drafts: drafts}, emptyBank(), repository.NewGoalRepository(db), testLogger())

		_, err := svc.Resolve(context.Background(), "Go", "beginner", 3)
		assert.Error(t, err)
	})
}
