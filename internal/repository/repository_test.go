package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(context.Background()))
	return db
}

func createTestUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		Timezone:     "UTC",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "learner@example.com")

	t.Run("get by email ignores case", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "Learner@Example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "UTC", got.Timezone)
		assert.False(t, got.IsPro)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("streaks", func(t *testing.T) {
		require.NoError(t, repo.UpdateStreaks(ctx, user.ID, 3, 7))
		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.CurrentStreak)
		assert.Equal(t, 7, got.LongestStreak)
	})

	t.Run("lock inside transaction", func(t *testing.T) {
		err := db.WithTx(ctx, func(tx *database.Tx) error {
			got, err := repo.WithTx(tx).GetUserByIDForUpdate(ctx, user.ID)
			require.NotNil(t, got)
			return err
		})
		require.NoError(t, err)
	})

	t.Run("mark pro", func(t *testing.T) {
		found, err := repo.MarkPro(ctx, user.ID, "cus_123")
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPro)
		assert.Equal(t, "cus_123", got.StripeCustomerID)

		found, err = repo.MarkPro(ctx, uuid.NewString(), "cus_999")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("oauth link", func(t *testing.T) {
		require.NoError(t, repo.LinkOAuth(ctx, user.ID, "google", "sub-1"))
		got, err := repo.GetUserByOAuth(ctx, "google", "sub-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestGoalRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	goals := NewGoalRepository(db)
	practice := NewPracticeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice@example.com")
	bob := createTestUser(t, users, "bob@example.com")
	createTestUser(t, users, "nogoal@example.com")

	got, err := goals.GetGoal(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	goal := &models.UserGoal{UserID: alice.ID, Topic: "Python", Difficulty: "beginner", DailyQuestionTarget: 5}
	require.NoError(t, goals.UpsertGoal(ctx, goal))
	firstID := goal.ID

	updated := &models.UserGoal{UserID: alice.ID, Topic: "SQL", Difficulty: "advanced", DailyQuestionTarget: 8}
	require.NoError(t, goals.UpsertGoal(ctx, updated))
	assert.Equal(t, firstID, updated.ID, "goal is a single owned value")

	got, err = goals.GetGoal(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "SQL", got.Topic)
	assert.Equal(t, 8, got.DailyQuestionTarget)

	require.NoError(t, goals.UpsertGoal(ctx, &models.UserGoal{UserID: bob.ID, Topic: "Linux", Difficulty: "beginner", DailyQuestionTarget: 2}))
	require.NoError(t, practice.CreateDailyLog(ctx, &models.DailyLog{UserID: bob.ID, Date: "2024-05-01", QuestionsAttempted: 2, StreakMaintained: true}))

	targets, err := goals.ListReminderTargets(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, targets, 2)

	byUser := map[string]ReminderTarget{}
	for _, target := range targets {
		byUser[target.UserID] = target
	}
	assert.False(t, byUser[alice.ID].Maintained)
	assert.True(t, byUser[bob.ID].Maintained)
	assert.Equal(t, "Linux", byUser[bob.ID].Topic)
}

func TestQuestionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	for i, text := range []string{"q1", "q2", "q3"} {
		q := &models.Question{
			Topic:         "Python",
			Difficulty:    "beginner",
			QuestionText:  text,
			Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectOption: "A",
			Explanation:   "because",
			CreatedAt:     time.Now().UTC(),
		}
		require.NoError(t, repo.CreateQuestion(ctx, q))
		assert.Equal(t, int64(i+1), q.ID)
	}
	require.NoError(t, repo.CreateQuestion(ctx, &models.Question{
		Topic: "SQL", Difficulty: "beginner", QuestionText: "s1",
		Options: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"}, CorrectOption: "B",
		CreatedAt: time.Now().UTC(),
	}))

	got, err := repo.GetQuestionByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Options["A"])
	assert.Equal(t, "A", got.CorrectOption)

	missing, err := repo.GetQuestionByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	random, err := repo.RandomQuestions(ctx, "Python", "beginner", 2)
	require.NoError(t, err)
	assert.Len(t, random, 2)
	for _, q := range random {
		assert.Equal(t, "Python", q.Topic)
	}

	all, err := repo.RandomQuestions(ctx, "Python", "beginner", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	anyTopic, err := repo.RandomAnyQuestions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, anyTopic, 4)

	texts, err := repo.QuestionTexts(ctx, "Python", "beginner")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"q1": true, "q2": true, "q3": true}, texts)
}

func TestHabitRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "owner@example.com")
	other := createTestUser(t, users, "other@example.com")

	habit := &models.Habit{UserID: owner.ID, Name: "Read", Frequency: models.FrequencyDaily, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateHabit(ctx, habit))

	notMine, err := repo.GetHabit(ctx, habit.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, notMine)

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		require.NoError(t, repo.CreateHabitLog(ctx, &models.HabitLog{HabitID: habit.ID, UserID: owner.ID, Date: date, Completed: true}))
	}

	dates, err := repo.CompletedDates(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, dates[habit.ID]["2024-01-02"])

	counts, err := repo.CompletionCountsSince(ctx, owner.ID, "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-01-02": 1}, counts)

	log, err := repo.GetHabitLog(ctx, habit.ID, "2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NoError(t, repo.DeleteHabitLog(ctx, log.ID))

	require.NoError(t, repo.DeleteHabit(ctx, habit.ID, owner.ID))
	habits, err := repo.ListHabits(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestSkillRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	user := createTestUser(t, users, "skills@example.com")

	skill := &models.Skill{Name: "Python", Icon: "Code", Description: "General purpose"}
	require.NoError(t, repo.CreateSkill(ctx, skill))
	for i, name := range []string{"Basics", "Functions"} {
		require.NoError(t, repo.CreateTopic(ctx, &models.Topic{SkillID: skill.ID, Name: name, Order: i + 1}))
	}

	byName, err := repo.GetSkillByName(ctx, "python")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, skill.ID, byName.ID)
	require.Len(t, byName.Topics, 2)
	assert.Equal(t, "Basics", byName.Topics[0].Name)

	maxOrder, err := repo.MaxTopicOrder(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, maxOrder)

	require.NoError(t, repo.SaveProgress(ctx, user.ID, skill.ID, models.SkillProgress{CompletionPct: 40, TopicsDone: 2}))
	require.NoError(t, repo.SaveProgress(ctx, user.ID, skill.ID, models.SkillProgress{CompletionPct: 60, TopicsDone: 3}))
	progress, err := repo.ProgressByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SkillProgress{CompletionPct: 60, TopicsDone: 3}, progress[skill.ID])

	require.NoError(t, repo.DeleteSkill(ctx, skill.ID))
	gone, err := repo.GetSkill(ctx, skill.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	left, err := repo.GetProgress(ctx, user.ID, skill.ID)
	require.NoError(t, err)
	assert.Nil(t, left)
}
