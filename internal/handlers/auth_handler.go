package handlers

import (
	"context"
	"net/http"
	"time"

	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/service"
)

const welcomeEmailTimeout = 10 * time.Second

// WelcomeSender sends the post-registration email
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, toEmail string) error
}

// AuthHandler handles registration, login and the current user's profile
type AuthHandler struct {
	authService *service.AuthService
	welcome     WelcomeSender
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler. welcome may be nil.
func NewAuthHandler(authService *service.AuthService, welcome WelcomeSender, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		welcome:     welcome,
		log:         log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone"`
}

// Register creates an account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Timezone)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	if h.welcome != nil {
		go h.sendWelcome(user.Email)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) sendWelcome(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), welcomeEmailTimeout)
	defer cancel()
	if err := h.welcome.SendWelcomeEmail(ctx, email); err != nil {
		h.log.Warn("failed to send welcome email", "email", email, "error", err)
	}
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Me returns the current user and their goals
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	goals, err := h.authService.Goals(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"goals": goals,
	})
}

type goalRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount *int   `json:"question_count"`
}

// SetGoal creates or replaces the user's learning goal
func (h *AuthHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	goal, err := h.authService.SetGoal(r.Context(), user.ID, req.Topic, req.Difficulty, req.QuestionCount)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string           `json:"message"`
		Goal    *models.UserGoal `json:"goal"`
	}{"Goal updated", goal})
}
