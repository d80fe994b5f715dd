package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/logger"
)

// envelope is the uniform JSON body for every endpoint. Write operations
// always carry an explicit success flag and, on failure, a message suitable
// for direct display.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// respondError maps domain failure kinds to HTTP statuses. Unexpected errors
// (storage faults and the like) are logged and surfaced as a generic 500 so
// internals never leak to the client.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBorrowerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrSelfBooking),
		errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case domain.IsInsufficientCredits(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	default:
		logger.Error("Unexpected error handling request", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "Something went wrong. Please try again."})
		return
	}
	writeJSON(w, status, envelope{Success: false, Error: err.Error()})
}
