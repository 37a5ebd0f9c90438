package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.Validation("Missing email or password"), http.StatusBadRequest, "Missing email or password"},
		{"field validation", apperr.ValidationError{Field: "email", Message: "Invalid email"}, http.StatusBadRequest, "Invalid email"},
		{"conflict", apperr.Conflict("User already exists"), http.StatusBadRequest, "User already exists"},
		{"not found", apperr.NotFound("Habit not found"), http.StatusNotFound, "Habit not found"},
		{"unauthorized", apperr.Unauthorized("Token is invalid!"), http.StatusUnauthorized, "Token is invalid!"},
		{"upstream", apperr.Upstream("Failed to create checkout session", errors.New("timeout")), http.StatusBadGateway, "Failed to create checkout session"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithError(recorder, logger.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.NotContains(t, recorder.Body.String(), "disk full")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Read"}`))
	require.NoError(t, decodeJSON(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, "Read", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, decodeJSON(httptest.NewRecorder(), r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := decodeJSON(httptest.NewRecorder(), r, &dst)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
