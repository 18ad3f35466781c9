package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNetwork indicates a transport-level failure before any HTTP status was received.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeAuth indicates a rejected token or invalid credentials (HTTP 401).
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeValidation indicates the backend rejected the input (4xx with field-level messages).
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNotFound indicates a resource was not found (HTTP 404).
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeServer indicates a 5xx or an unrecognized response shape.
	ErrCodeServer ErrorCode = "server"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Network creates a new Network error.
func Network(message string) *AppError {
	return &AppError{Code: ErrCodeNetwork, Message: message}
}

// Auth creates a new Auth error.
func Auth(message string) *AppError {
	return &AppError{Code: ErrCodeAuth, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Server creates a new Server error.
func Server(message string) *AppError {
	return &AppError{Code: ErrCodeServer, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsAuth checks if an error is an Auth error.
func IsAuth(err error) bool {
	return isCode(err, ErrCodeAuth)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsServer checks if an error is a Server error.
func IsServer(err error) bool {
	return isCode(err, ErrCodeServer)
}

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
