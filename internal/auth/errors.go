package auth

import (
	"errors"
	"net/http"
)

// Domain errors for auth operations.
var (
	ErrDisabled           = errors.New("authentication is not configured")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrOAuthUnavailable   = errors.New("oauth provider is not configured")
	ErrUpstream           = errors.New("auth service request failed")
)

// MapHTTPStatus maps auth errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmailRequired), errors.Is(err, ErrPasswordRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrDisabled), errors.Is(err, ErrOAuthUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
