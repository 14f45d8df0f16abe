package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog lookups.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidKind      = errors.New("kind must be choice, text, or both")
)

// MapHTTPStatus maps catalog errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrTemplateNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidKind) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
