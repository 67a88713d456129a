package apperror

import (
	"fmt"
	"net/http"
)

const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// CodeInvalidState rejects a status transition or an edit of a locked document.
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var (
	ErrNotFound = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)

	ErrRateLimited = New(CodeRateLimited, "Too many requests", http.StatusTooManyRequests)

	// ErrUnavailable is reported when a request's deadline expires before the store answers.
	ErrUnavailable = New(CodeServiceUnavailable, "The service is busy, retry shortly", http.StatusServiceUnavailable)
)

// AppError is an error with a stable code and the HTTP status it maps to.
// Err, when set, is kept for errors.Is/As and logs but its text is only
// exposed for client errors.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap returns nil for a nil err.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
