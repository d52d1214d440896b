package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"studypal/internal/auth"
	"studypal/internal/llm"
	"studypal/internal/logger"
	"studypal/internal/relevance"
	"studypal/internal/search"
	"studypal/internal/store"
)

// envelope is the JSON shape every response uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", err)
	}
}

// respondSuccess wraps data in the success envelope.
func (s *Server) respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	s.respondJSON(w, status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError writes a failure envelope with the given status.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, envelope{
		Success: false,
		Message: message,
	})
}

// respondMappedError translates sentinel errors from the service layers
// into HTTP statuses. Unknown errors become a 500 with the supplied
// fallback message so internals never leak to the client.
func (s *Server) respondMappedError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, relevance.ErrEmptyQuery):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrInvalidToken):
		s.respondError(w, http.StatusUnauthorized, authErrorMessage(err))
	case errors.Is(err, store.ErrNotOwner):
		s.respondError(w, http.StatusForbidden, "Not authorized to access this schedule")
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "Schedule not found")
	case errors.Is(err, search.ErrQuotaExceeded), errors.Is(err, llm.ErrQuotaExceeded):
		s.respondError(w, http.StatusTooManyRequests, "Service quota exceeded. Please try again later.")
	case errors.Is(err, search.ErrRateLimited):
		s.respondError(w, http.StatusTooManyRequests, "Rate limited. Please try again later.")
	default:
		logger.Error(fallback, err)
		s.respondError(w, http.StatusInternalServerError, fallback)
	}
}

// handleAuthError is the auth middleware's failure callback.
func (s *Server) handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, http.StatusUnauthorized, authErrorMessage(err))
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrNoToken):
		return "Access token required"
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token expired"
	default:
		return "Invalid token"
	}
}

// decodeJSON parses the request body into dst, rejecting malformed input.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
