package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simaogato/spendcast-backend/internal/domain"
)

// envelope is the JSON shape of every REST response
type envelope struct {
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body envelope) {
	body.StatusCode = statusCode
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, envelope{Message: message, Success: true, Data: data})
}

// writeFailure reports a caller-side problem, e.g. insufficient data
func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Message: message, Success: false})
}

// writeError classifies err and writes the matching status.
// Unexpected errors are reported in the error field with status 500.
func writeError(w http.ResponseWriter, err error) {
	statusCode := statusFor(err)
	if statusCode == http.StatusInternalServerError {
		writeJSON(w, statusCode, envelope{Error: err.Error(), Success: false})
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeFailure(w, statusCode, validationErr.Message)
		return
	}
	writeFailure(w, statusCode, err.Error())
}

func statusFor(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
