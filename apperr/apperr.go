package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports malformed or missing input. Fields carries the
// names of the offending fields when they are known.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// ConflictError reports a duplicate resource (property, phone, cart entry).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a missing property, user or view.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError reports an OTP failure. AttemptsLeft is -1 when the remaining
// attempt count does not apply to the failure.
type AuthError struct {
	Message      string
	AttemptsLeft int
}

func (e *AuthError) Error() string { return e.Message }

// InternalError wraps a persistence or collaborator failure.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error { return e.Err }

func Validation(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func Conflict(message string) *ConflictError { return &ConflictError{Message: message} }

func NotFound(message string) *NotFoundError { return &NotFoundError{Message: message} }

func Auth(message string) *AuthError { return &AuthError{Message: message, AttemptsLeft: -1} }

func Internal(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

// Status maps a taxonomy error to its HTTP status code.
func Status(err error) int {
	switch err.(type) {
	case *ValidationError, *AuthError:
		return http.StatusBadRequest
	case *ConflictError:
		return http.StatusConflict
	case *NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
