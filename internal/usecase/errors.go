package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrKeyReused       = errors.New("idempotency key reused with a different request")
	ErrUpstream        = errors.New("upstream provider error")
	ErrUpstreamTimeout = errors.New("upstream provider timeout")
	ErrUnavailable     = errors.New("store unavailable")
	ErrInternal        = errors.New("internal error")
)

// ValidationError names the offending field. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
