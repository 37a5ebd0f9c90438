package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillsprint/internal/database"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
	"skillsprint/internal/security"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(context.Background()))
	return db
}

func createTestUser(t *testing.T, db *database.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           security.NewUserID(),
		Email:        email,
		PasswordHash: "hash",
		Timezone:     "UTC",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repository.NewUserRepository(db).CreateUser(context.Background(), user))
	return user
}

func setTestGoal(t *testing.T, db *database.DB, userID, topic, difficulty string, target int) {
	t.Helper()

	goal := &models.UserGoal{UserID: userID, Topic: topic, Difficulty: difficulty, DailyQuestionTarget: target}
	require.NoError(t, repository.NewGoalRepository(db).UpsertGoal(context.Background(), goal))
}

func createTestQuestions(t *testing.T, db *database.DB, topic, difficulty string, n int) []models.Question {
	t.Helper()

	repo := repository.NewQuestionRepository(db)
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			Topic:         topic,
			Difficulty:    difficulty,
			QuestionText:  fmt.Sprintf("%s %s question %d?", topic, difficulty, i+1),
			Options:       map[string]string{"A": "one", "B": "two", "C": "three", "D": "four"},
			CorrectOption: "A",
			Explanation:   "A is right.",
			CreatedAt:     time.Now().UTC(),
		}
		require.NoError(t, repo.CreateQuestion(context.Background(), &q))
		questions = append(questions, q)
	}
	return questions
}

func draft(text string) models.QuestionDraft {
	return models.QuestionDraft{
		QuestionText:  text,
		Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		CorrectOption: "B",
		Explanation:   "Because B.",
	}
}

func fixedClock(day string) func() time.Time {
	d, err := models.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return d.Add(12 * time.Hour) }
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}
