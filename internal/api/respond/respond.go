// Package respond centralizes JSON responses. Handlers never touch the
// encoder directly: success payloads go through WriteJSON, failures through
// WriteServiceError so the sentinel-to-status mapping stays in one place.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/crystal-grimoire/backend/internal/model"
)

// ErrorBody is the envelope every failed request carries.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON encodes data with the given status. Encoding failures happen
// after the header is committed, so they can only be logged.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Int("status", status).Msg("response encoding failed")
	}
}

// WriteError sends the error envelope for an HTTP status with a
// caller-facing message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// statusOf maps a model sentinel to its HTTP status, ok=false for errors
// outside the taxonomy.
func statusOf(err error) (int, bool) {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, true
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, model.ErrFailedPrecondition):
		return http.StatusPreconditionFailed, true
	case errors.Is(err, model.ErrResourceExhausted):
		return http.StatusTooManyRequests, true
	}
	return http.StatusInternalServerError, false
}

// WriteServiceError maps a service error onto its HTTP status by the
// sentinel it wraps. Errors outside the taxonomy are logged and masked,
// never echoed to the client.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, ok := statusOf(err)
	if !ok {
		log.Error().Err(err).Msg("unclassified service error")
		WriteInternalError(w, "internal error")
		return
	}
	WriteError(w, status, err.Error())
}
