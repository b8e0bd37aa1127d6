// Package domainerrors provides coded errors for expected domain conditions.
// Services and handlers branch on the code; the message is safe to surface to
// callers. Infrastructure facts (not found, unavailable) use pkg/platform/sentinel
// instead and are translated into these codes at the service boundary.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the class of a domain error.
type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodeIndexOutOfRange  Code = "index_out_of_range"
	CodeLimitExceeded    Code = "limit_exceeded"
	CodeValidationFailed Code = "validation_failed"
	CodeNotFound         Code = "not_found"
	CodeUnauthorized     Code = "unauthorized"
	CodeUnavailable      Code = "unavailable"
	CodeInternal         Code = "internal"
)

// Error carries a code plus a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs a coded domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err (or anything it wraps) is a domain error with the
// given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for plain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status. Kept in one place so
// every handler renders the same envelope for the same condition.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeLimitExceeded:
		return http.StatusBadRequest
	case CodeIndexOutOfRange:
		return http.StatusConflict
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
