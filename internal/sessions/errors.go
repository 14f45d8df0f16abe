package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations. ErrNotFoundOrForbidden deliberately
// collapses "absent" and "not yours" so responses never leak whether a
// session id exists.
var (
	ErrNotFoundOrForbidden = errors.New("prompt not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrIdeaRequired        = errors.New("app idea is required")
	ErrIdeaTooLong         = errors.New("app idea exceeds 5000 characters")
	ErrPromptRequired      = errors.New("prompt is required")
	ErrPromptTooLong       = errors.New("prompt exceeds 10000 characters")
	ErrQuestionRequired    = errors.New("question is required")
	ErrOwnerRequired       = errors.New("user id is required")
	ErrDuplicate           = errors.New("duplicate session")
)

// MapHTTPStatus maps session domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFoundOrForbidden),
		errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIdeaRequired),
		errors.Is(err, ErrIdeaTooLong),
		errors.Is(err, ErrPromptRequired),
		errors.Is(err, ErrPromptTooLong),
		errors.Is(err, ErrQuestionRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrOwnerRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
