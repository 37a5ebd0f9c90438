package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/apperr"
	"skillsprint/internal/database"
	"skillsprint/internal/repository"
	"skillsprint/internal/security"
)

func newTestAuthService(t *testing.T) (*AuthService, *database.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewGoalRepository(db),
		security.NewTokenIssuer("test-secret", time.Hour),
	)
	return svc, db
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantKind apperr.Kind
	}{
		{name: "missing email", email: "", password: "password123", wantKind: apperr.KindValidation},
		{name: "missing password", email: "a@example.com", password: "", wantKind: apperr.KindValidation},
		{name: "invalid email", email: "not-an-email", password: "password123", wantKind: apperr.KindValidation},
		{name: "short password", email: "a@example.com", password: "short", wantKind: apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, "")
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}

	user, err := svc.Register(ctx, "New@Example.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "UTC", user.Timezone)
	assert.Len(t, user.ID, 36)

	_, err = svc.Register(ctx, "new@example.com", "password123", "Europe/Paris")
	require.Error(t, err)
	status, msg := apperr.Status(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "User already exists", msg)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "login@example.com", "password123", "Asia/Tokyo")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "login@example.com", "wrong-password")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, _, err = svc.Login(ctx, "", "")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	token, user, err := svc.Login(ctx, "LOGIN@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	authed, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
	assert.Equal(t, "Asia/Tokyo", authed.Timezone)

	_, err = svc.Authenticate(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = svc.Authenticate(ctx, token+"x")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	// A valid token for a user that no longer exists is rejected
	ghost, err := security.NewTokenIssuer("test-secret", time.Hour).Issue("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, ghost)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestOAuthLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	existing, err := svc.Register(ctx, "linked@example.com", "password123", "")
	require.NoError(t, err)

	t.Run("links existing account", func(t *testing.T) {
		token, user, err := svc.OAuthLogin(ctx, "google", "g-1", "Linked@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, existing.ID, user.ID)

		_, again, err := svc.OAuthLogin(ctx, "google", "g-1", "linked@example.com")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, again.ID)
	})

	t.Run("rejects a second provider for the same email", func(t *testing.T) {
		_, _, err := svc.OAuthLogin(ctx, "facebook", "f-1", "linked@example.com")
		assert.True(t, apperr.Is(err, apperr.KindConflict))
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("creates new account", func(t *testing.T) {
		_, user, err := svc.OAuthLogin(ctx, "facebook", "f-2", "fresh@example.com")
		require.NoError(t, err)
		assert.Equal(t, "facebook", user.OAuthProvider)

		_, _, err = svc.Login(ctx, "fresh@example.com", "")
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	})

	t.Run("requires an email", func(t *testing.T) {
		_, _, err := svc.OAuthLogin(ctx, "google", "g-9", "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestSetGoal(t *testing.T) {
	svc, db := newTestAuthService(t)
	user := createTestUser(t, db, "goal@example.com")
	ctx := context.Background()

	goals, err := svc.Goals(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)

	_, err = svc.SetGoal(ctx, user.ID, "", "beginner", nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	goal, err := svc.SetGoal(ctx, user.ID, "SQL", "beginner", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, goal.DailyQuestionTarget)

	ten := 10
	goal, err = svc.SetGoal(ctx, user.ID, "SQL", "intermediate", &ten)
	require.NoError(t, err)
	assert.Equal(t, 10, goal.DailyQuestionTarget)

	// Omitting the count keeps the current target
	goal, err = svc.SetGoal(ctx, user.ID, "Python", "beginner", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, goal.DailyQuestionTarget)

	zero := 0
	_, err = svc.SetGoal(ctx, user.ID, "Python", "beginner", &zero)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	goals, err = svc.Goals(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Python", goals[0].Topic)
	assert.Equal(t, 10, goals[0].DailyQuestionTarget)
}
