package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden access")
	ErrNotFound        = errors.New("requested resource not found")
	ErrConflict        = errors.New("resource conflict")
	ErrInvalidInput    = errors.New("invalid input")
)

// StatusFromError maps domain errors to HTTP status codes.
// Conflicts answer 400 because existing storefront clients expect it on duplicate registration.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err: the outermost wrapped
// domain message when there is one, otherwise a generic text for its status.
// Causes of internal failures are never exposed.
func Message(err error) string {
	var de *domainError
	if errors.As(err, &de) {
		return de.message
	}

	switch StatusFromError(err) {
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden access"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusBadRequest:
		return "Bad request"
	default:
		return "Internal server error"
	}
}

// Wrap attaches a taxonomy error to a domain-specific message so errors.Is
// matches both.
func Wrap(kind error, message string) error {
	return &domainError{kind: kind, message: message}
}

type domainError struct {
	kind    error
	message string
}

func (e *domainError) Error() string { return e.message }

func (e *domainError) Unwrap() error { return e.kind }
