// Package apperr defines the error kinds the service distinguishes at
// its boundary. Handlers map them to HTTP status codes; services wrap
// them with context using %w so errors.Is keeps working.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated covers missing, invalid, expired and revoked
	// session tokens.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden covers role mismatch and a missing profile row.
	ErrForbidden = errors.New("forbidden")

	// ErrNotOnboarded signals the driver dashboard was reached before
	// profile completion. It is a redirect signal, not a hard failure.
	ErrNotOnboarded = errors.New("driver not onboarded")

	// ErrNotFound is a point lookup for a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is a failed or timed-out backing store call.
	// Retryable by the caller.
	ErrUnavailable = errors.New("store unavailable")

	// ErrValidation is malformed input.
	ErrValidation = errors.New("validation failed")
)

// HTTPStatus maps an error to the status code reported to the caller.
// Unknown errors are reported as 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotOnboarded):
		return http.StatusSeeOther
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
