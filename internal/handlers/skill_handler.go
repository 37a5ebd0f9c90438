package handlers

import (
	"encoding/json"
	"net/http"

	"skillsprint/internal/logger"
	"skillsprint/internal/service"
)

// SkillHandler handles the skill catalogue and per-user progress
type SkillHandler struct {
	skills *service.SkillService
	log    *logger.Logger
}

// NewSkillHandler creates a new skill handler
func NewSkillHandler(skills *service.SkillService, log *logger.Logger) *SkillHandler {
	return &SkillHandler{skills: skills, log: log}
}

// topicName accepts either "name" or {"name": "..."}
type topicName string

func (t *topicName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = topicName(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = topicName(obj.Name)
	return nil
}

type skillRequest struct {
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
	Topics      []topicName `json:"topics"`
}

type topicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type progressRequest struct {
	CompletionPct *float64 `json:"completion_pct"`
	TopicsDone    *int     `json:"topics_done"`
}

// List returns all skills with the user's progress
func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	skills, err := h.skills.List(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": skills})
}

// Create adds a skill, or returns the existing one with the same name
func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.log); !ok {
		return
	}

	var req skillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	topics := make([]string, 0, len(req.Topics))
	for _, t := range req.Topics {
		topics = append(topics, string(t))
	}

	skill, created, err := h.skills.Create(r.Context(), req.Name, req.Icon, req.Description, topics)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Skill already exists", "skill": skill})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"skill": skill})
}

// Delete removes a skill with its topics and progress
func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.log); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	if err := h.skills.Delete(r.Context(), id); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Skill deleted"})
}

// AddTopic appends a topic to a skill
func (h *SkillHandler) AddTopic(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.log); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	var req topicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	topic, err := h.skills.AddTopic(r.Context(), id, req.Name, req.Description)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"topic": topic})
}

// GetProgress returns a skill and the user's progress in it
func (h *SkillHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	skill, progress, err := h.skills.Progress(r.Context(), user.ID, id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"skill": skill, "progress": progress})
}

// UpdateProgress upserts the user's progress in a skill
func (h *SkillHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}

	progress, err := h.skills.UpdateProgress(r.Context(), user.ID, id, req.CompletionPct, req.TopicsDone)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}
