package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// Response is the JSON envelope for all handlers
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// statusForError maps domain errors to HTTP status codes. Anything not in
// the domain taxonomy is an infrastructure failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrMovementNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidMovementType),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrCategoryNameTaken),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError sends the error text for domain errors and hides
// infrastructure failures behind a generic message
func respondDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, "Internal server error")
		return
	}
	respondError(w, status, err.Error())
}
