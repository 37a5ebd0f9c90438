package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
)

const maxBodyBytes = 1 << 20

// writeJSON writes payload as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithError maps err to a status code and writes {"message": ...}.
// Errors without a kind are logged and reported as 500.
func respondWithError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, message := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error(message, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validation(ErrInvalidJSON)
	}
	return nil
}
