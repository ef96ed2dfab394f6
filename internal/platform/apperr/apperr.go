// Package apperr defines the API error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

// Code is the machine-readable error code returned in the response envelope.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeAuthentication Code = "AUTHENTICATION_REQUIRED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeNotFound       Code = "RESOURCE_NOT_FOUND"
	CodeDuplicate      Code = "DUPLICATE_RESOURCE"
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// Error is an API-facing error. Err, when set, is the underlying cause and is never shown to clients.
type Error struct {
	Code    Code
	Message string
	// Fields maps request field names to validation messages.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code so errors.Is(err, apperr.ErrNotFound) works for any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == "" && t.Err == nil
}

// HTTPStatus maps the code to an HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Code-only targets for errors.Is.
var (
	ErrValidation     = &Error{Code: CodeValidation}
	ErrAuthentication = &Error{Code: CodeAuthentication}
	ErrForbidden      = &Error{Code: CodeForbidden}
	ErrNotFound       = &Error{Code: CodeNotFound}
	ErrDuplicate      = &Error{Code: CodeDuplicate}
	ErrInternal       = &Error{Code: CodeInternal}
)

func Validation(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func Authentication(message string) *Error {
	return &Error{Code: CodeAuthentication, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Duplicate(message string) *Error {
	return &Error{Code: CodeDuplicate, Message: message}
}

// Internal wraps an unexpected failure. The cause is logged, not returned to clients.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

// From converts any error into an *Error. Unknown errors become internal errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
