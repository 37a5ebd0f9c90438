package handlers

import (
	"net/http"
	"sync"
)

const (
	StatusStarting = "starting"
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// StartupStatus tracks initialization progress and whether storage came up
type StartupStatus struct {
	mu       sync.RWMutex
	ready    bool
	degraded bool
	reason   string
	steps    []StartupStep
}

type StartupStep struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// NewStartupStatus creates a status tracker with the given steps pending
func NewStartupStatus(steps ...string) *StartupStatus {
	s := &StartupStatus{}
	for _, name := range steps {
		s.steps = append(s.steps, StartupStep{Name: name})
	}
	return s
}

// CompleteStep marks a step as completed
func (s *StartupStatus) CompleteStep(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.steps {
		if s.steps[i].Name == name {
			s.steps[i].Completed = true
			return
		}
	}
}

// MarkReady marks the server as fully initialized
func (s *StartupStatus) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// MarkDegraded records that storage is unavailable; only /health keeps answering normally
func (s *StartupStatus) MarkDegraded(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degraded = true
	s.reason = reason
}

// State returns starting, ok or degraded
func (s *StartupStatus) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.degraded:
		return StatusDegraded
	case s.ready:
		return StatusOK
	default:
		return StatusStarting
	}
}

// Progress returns the completed share of steps as a percentage
func (s *StartupStatus) Progress() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.steps) == 0 {
		return 100
	}
	completed := 0
	for _, step := range s.steps {
		if step.Completed {
			completed++
		}
	}
	return completed * 100 / len(s.steps)
}

// Health reports liveness and the startup state. It answers 200 even when degraded.
func (s *StartupStatus) Health(w http.ResponseWriter, r *http.Request) {
	state := s.State()

	s.mu.RLock()
	steps := append([]StartupStep(nil), s.steps...)
	reason := s.reason
	s.mu.RUnlock()

	body := map[string]interface{}{
		"status":   state,
		"progress": s.Progress(),
		"steps":    steps,
	}
	if reason != "" {
		body["reason"] = reason
	}
	writeJSON(w, http.StatusOK, body)
}

// RequireReady answers 503 until the server is ready, and forever once degraded
func (s *StartupStatus) RequireReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.State() != StatusOK {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": ErrServiceUnavailable})
			return
		}
		next.ServeHTTP(w, r)
	})
}
