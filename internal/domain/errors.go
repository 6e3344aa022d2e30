package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure for boundary mapping.
type ErrorCode string

const (
	CodeValidation     ErrorCode = "VALIDATION"
	CodeAuthentication ErrorCode = "AUTHENTICATION"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeUnavailable    ErrorCode = "UNAVAILABLE"
	CodeWindowExpired  ErrorCode = "WINDOW_EXPIRED"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeInternal       ErrorCode = "INTERNAL"
)

// Error is a classified domain failure. Services return it for every
// caller-attributable condition; anything else is treated as internal.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) *Error {
	return newError(CodeValidation, format, args...)
}

func AuthenticationError(format string, args ...any) *Error {
	return newError(CodeAuthentication, format, args...)
}

func ForbiddenError(format string, args ...any) *Error {
	return newError(CodeForbidden, format, args...)
}

func NotFoundError(format string, args ...any) *Error {
	return newError(CodeNotFound, format, args...)
}

func UnavailableError(format string, args ...any) *Error {
	return newError(CodeUnavailable, format, args...)
}

func WindowExpiredError(format string, args ...any) *Error {
	return newError(CodeWindowExpired, format, args...)
}

func ConflictError(format string, args ...any) *Error {
	return newError(CodeConflict, format, args...)
}

// CodeOf extracts the error code, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
