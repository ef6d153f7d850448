package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeForeignKey   ErrorCode = "foreign_key"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	ErrCodeInternal     ErrorCode = "internal"
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
)

// AppError is a categorized error whose Message is safe to show to a user.
// Cause keeps the underlying error for logs and errors.Is/As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the offending form field for validation and conflict errors.
	Field string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func newErr(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newErr(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return newErr(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return newErr(ErrCodeConflict, message) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newErr(ErrCodeValidation, message) }

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	e := newErr(ErrCodeValidation, message)
	e.Field = field
	return e
}

// ForeignKey creates a new ForeignKey error.
func ForeignKey(message string) *AppError { return newErr(ErrCodeForeignKey, message) }

// Unauthorized is returned when credentials do not match an account.
func Unauthorized(message string) *AppError { return newErr(ErrCodeUnauthorized, message) }

// Forbidden is returned when an authenticated principal may not act on a resource.
func Forbidden(message string) *AppError { return newErr(ErrCodeForbidden, message) }

// Internal creates a new Internal error.
func Internal(message string) *AppError { return newErr(ErrCodeInternal, message) }

// Wrap wraps an existing error with an AppError, preserving the cause.
// A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func isCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

func IsNotFound(err error) bool     { return isCode(err, ErrCodeNotFound) }
func IsConflict(err error) bool     { return isCode(err, ErrCodeConflict) }
func IsValidation(err error) bool   { return isCode(err, ErrCodeValidation) }
func IsForeignKey(err error) bool   { return isCode(err, ErrCodeForeignKey) }
func IsUnauthorized(err error) bool { return isCode(err, ErrCodeUnauthorized) }
func IsForbidden(err error) bool    { return isCode(err, ErrCodeForbidden) }
func IsInternal(err error) bool     { return isCode(err, ErrCodeInternal) }
func IsTimeout(err error) bool      { return isCode(err, ErrCodeTimeout) }
func IsCanceled(err error) bool     { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// UserMessage returns the message safe to render back to the user, or fallback
// when err carries no AppError (or one of an internal category).
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fallback
	}
	switch appErr.Code {
	case ErrCodeInternal, ErrCodeTimeout, ErrCodeCanceled:
		return fallback
	}
	return appErr.Message
}
