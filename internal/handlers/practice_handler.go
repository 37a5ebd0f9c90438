package handlers

import (
	"net/http"

	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/service"
)

// PracticeHandler serves quiz questions and grades submissions
type PracticeHandler struct {
	questions *service.QuestionService
	practice  *service.PracticeService
	log       *logger.Logger
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(questions *service.QuestionService, practice *service.PracticeService, log *logger.Logger) *PracticeHandler {
	return &PracticeHandler{questions: questions, practice: practice, log: log}
}

type questionsResponse struct {
	Questions []models.Question `json:"questions"`
	Source    string            `json:"source,omitempty"`
	Message   string            `json:"message,omitempty"`
}

func newQuestionsResponse(res *models.Resolution) questionsResponse {
	questions := res.Questions
	if questions == nil {
		questions = []models.Question{}
	}
	return questionsResponse{Questions: questions, Source: string(res.Source), Message: res.Message}
}

// Daily returns today's questions for the user's goal
func (h *PracticeHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	res, err := h.questions.Daily(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionsResponse(res))
}

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Generate returns questions for an explicit topic and difficulty
func (h *PracticeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.log); !ok {
		return
	}

	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	res, err := h.questions.Generate(r.Context(), req.Topic, req.Difficulty, req.Count)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionsResponse(res))
}

type submitRequest struct {
	Answers []models.Answer `json:"answers"`
}

// Submit grades a batch of answers and updates the streak
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	result, err := h.practice.Submit(r.Context(), user.ID, req.Answers)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
