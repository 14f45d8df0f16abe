package wizard

import (
	"errors"
	"net/http"

	"promptcraft/internal/catalog"
	"promptcraft/internal/synthesis"
)

// Domain errors for wizard operations.
var (
	ErrNotFound          = errors.New("wizard not found")
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrIdeaTooShort      = errors.New("idea must be longer than 10 characters")
	ErrUnanswered        = errors.New("all questions must be answered")
	ErrUnknownQuestion   = errors.New("unknown question id")
	ErrBusy              = errors.New("generation already in progress")
)

// MapHTTPStatus maps wizard errors to appropriate HTTP status codes.
// Errors surfaced from synthesis or the catalog fall through to their
// own mappings.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalog.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrIdeaTooShort),
		errors.Is(err, ErrUnanswered),
		errors.Is(err, ErrUnknownQuestion):
		return http.StatusBadRequest
	default:
		return synthesis.MapHTTPStatus(err)
	}
}
