package apperrors

import "errors"

// The failure taxonomy is a closed set: every service-layer failure either
// wraps one of these sentinels or collapses to an internal server error at
// the API boundary.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
)

// StatusError pairs a taxonomy sentinel with the message rendered to the
// client. It carries nothing else; anything not needed to build the response
// stays in logs.
type StatusError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap implements errors.Unwrap
func (e *StatusError) Unwrap() error {
	return e.Err
}

// NewBadRequest creates a 400-class error with a client-facing message
func NewBadRequest(message string) error {
	return &StatusError{Err: ErrBadRequest, Message: message}
}

// NewUnauthenticated creates a 401-class error with a client-facing message
func NewUnauthenticated(message string) error {
	return &StatusError{Err: ErrUnauthenticated, Message: message}
}

// NewForbidden creates a 403-class error with a client-facing message
func NewForbidden(message string) error {
	return &StatusError{Err: ErrForbidden, Message: message}
}

// NewNotFound creates a 404-class error with a client-facing message
func NewNotFound(message string) error {
	return &StatusError{Err: ErrNotFound, Message: message}
}

// NewConflict creates a 409-class error with a client-facing message
func NewConflict(message string) error {
	return &StatusError{Err: ErrConflict, Message: message}
}
