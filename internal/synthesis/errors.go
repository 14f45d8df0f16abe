package synthesis

import (
	"errors"
	"net/http"

	"promptcraft/internal/sessions"
)

// Domain errors for synthesis operations.
var (
	ErrIdeaRequired = errors.New("app idea is required")
	ErrIdeaTooLong  = errors.New("app idea exceeds 2000 characters")
	ErrUpstream     = errors.New("model returned an unusable response")
)

// MapHTTPStatus maps synthesis errors to appropriate HTTP status codes.
// Configuration and upstream failures are both server-side faults.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrIdeaRequired),
		errors.Is(err, ErrIdeaTooLong),
		errors.Is(err, sessions.ErrIdeaRequired),
		errors.Is(err, sessions.ErrIdeaTooLong):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
