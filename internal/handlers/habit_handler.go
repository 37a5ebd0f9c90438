package handlers

import (
	"net/http"
	"strconv"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
	"skillsprint/internal/service"
)

// HabitHandler handles habit CRUD and daily check-ins
type HabitHandler struct {
	habits *service.HabitService
	log    *logger.Logger
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habits *service.HabitService, log *logger.Logger) *HabitHandler {
	return &HabitHandler{habits: habits, log: log}
}

// pathID parses the {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(ErrInvalidID)
	}
	return id, nil
}

type habitRequest struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
}

// List returns the user's habits with today's status and streaks
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	habits, err := h.habits.List(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": habits})
}

// Create adds a habit
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	var req habitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	habit, err := h.habits.Create(r.Context(), user.ID, req.Name, req.Frequency)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"habit": habit})
}

// Update renames a habit or changes its frequency
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	var req habitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	habit, err := h.habits.Update(r.Context(), user.ID, id, req.Name, req.Frequency)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habit": habit})
}

// Delete removes a habit and its logs
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	if err := h.habits.Delete(r.Context(), user.ID, id); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted"})
}

// Log toggles today's completion
func (h *HabitHandler) Log(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	completed, err := h.habits.ToggleToday(r.Context(), user.ID, id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	message := "Habit unchecked"
	if completed {
		message = "Habit logged"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": message, "completed": completed})
}

// Heatmap returns per-day completion counts for the last year
func (h *HabitHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	heatmap, err := h.habits.Heatmap(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"heatmap": heatmap})
}
