package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
	"skillsprint/internal/security"
	"skillsprint/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration, login and bearer token authentication
type AuthService struct {
	userRepo *repository.UserRepository
	goalRepo *repository.GoalRepository
	tokens   *security.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, goalRepo *repository.GoalRepository, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		goalRepo: goalRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, email, password, timezone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("Missing email or password")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, apperr.Conflict("User already exists")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if timezone == "" {
		timezone = "UTC"
	}
	user := &models.User{
		ID:           security.NewUserID(),
		Email:        email,
		PasswordHash: passwordHash,
		Timezone:     timezone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Unauthorized("Could not verify")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Login failed!", Err: ErrInvalidCredentials}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// OAuthLogin finds or creates the user for an external identity and issues a bearer token.
// An existing password account with the same email is linked on first use.
func (s *AuthService) OAuthLogin(ctx context.Context, provider, subject, email string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if subject == "" || email == "" {
		return "", nil, apperr.Validation("OAuth provider did not return an email address")
	}

	user, err := s.userRepo.GetUserByOAuth(ctx, provider, subject)
	if err != nil {
		return "", nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			return "", nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthProvider != "" && existingUser.OAuthProvider != provider {
				return "", nil, &apperr.Error{Kind: apperr.KindConflict, Message: "Email is linked to another sign-in provider", Err: ErrEmailTaken}
			}
			if err := s.userRepo.LinkOAuth(ctx, existingUser.ID, provider, subject); err != nil {
				return "", nil, err
			}
			user = existingUser
		} else {
			// OAuth accounts get an unusable random password
			randomPasswordHash, err := security.HashPassword(security.GenerateState())
			if err != nil {
				return "", nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			user = &models.User{
				ID:            security.NewUserID(),
				Email:         email,
				PasswordHash:  randomPasswordHash,
				Timezone:      "UTC",
				OAuthProvider: provider,
				OAuthSubject:  subject,
				CreatedAt:     time.Now().UTC(),
			}
			if err := s.userRepo.CreateUser(ctx, user); err != nil {
				return "", nil, err
			}
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate verifies a bearer token and loads its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Token is missing!")
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("Token is invalid!")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("Token is invalid!")
	}
	return user, nil
}

// Goals returns the user's goal as a zero or one element list
func (s *AuthService) Goals(ctx context.Context, userID string) ([]models.UserGoal, error) {
	goal, err := s.goalRepo.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return []models.UserGoal{}, nil
	}
	return []models.UserGoal{*goal}, nil
}

// SetGoal creates or replaces the user's goal. A nil count keeps the existing
// target, or the default for a new goal.
func (s *AuthService) SetGoal(ctx context.Context, userID, topic, difficulty string, count *int) (*models.UserGoal, error) {
	topic = strings.TrimSpace(topic)
	difficulty = strings.TrimSpace(difficulty)
	if topic == "" || difficulty == "" {
		return nil, apperr.Validation("Missing topic or difficulty")
	}

	existing, err := s.goalRepo.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := models.DefaultDailyTarget
	if existing != nil {
		target = existing.DailyTarget()
	}
	if count != nil {
		target = *count
	}
	if err := validation.ValidateGoal(topic, difficulty, target); err != nil {
		return nil, err
	}

	goal := &models.UserGoal{
		UserID:              userID,
		Topic:               topic,
		Difficulty:          difficulty,
		DailyQuestionTarget: target,
	}
	if err := s.goalRepo.UpsertGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
