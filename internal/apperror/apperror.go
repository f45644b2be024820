// Package apperror defines the domain errors shared by the catalog, session
// and generator layers.
//
// Every failure a caller can act on is an *AppError wrapping one of the
// sentinel errors below. Callers branch with errors.Is on the sentinel and
// show Message to the user; the HTTP layer maps sentinels to status codes and
// the CLI prints Message as-is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError is a sentinel plus a message fit for end users.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // shown to the user
	Field   string // offending input field, validation errors only
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports an unknown prompt, category or session.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports bad input. field names the input the way the
// caller sent it: a JSON key, a query parameter or a flag.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict is returned when a record with the same identity already exists,
// e.g. two catalog prompts sharing an id.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Unauthorized is returned for requests that need a session but reached the
// handler without one.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// FieldOf returns the Field of the first AppError in err's chain, or "".
func FieldOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
