package errors

import (
	"net/http"

	"glowbeauty/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// NewValidationError creates a 400-class error whose message names every
// violated input rule. Bad input shape is always surfaced specifically,
// unlike credential failures.
func NewValidationError(message string) *BaseError {
	return NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		message,
		"",
	)
}

// Predefined error types
var (
	// ErrInvalidCredentials deliberately carries the same message for an
	// unknown email and a wrong password, to resist account enumeration.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	// ErrEmailTaken is distinct; registration uniqueness is not
	// enumeration-sensitive the way login is.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"An account with this email already exists",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired, please log in again",
		"",
	)

	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Customer not found",
		"",
	)

	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"Authentication required",
		"",
	)

	// ErrInternalError hides infrastructure failure detail from clients.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong, please try again",
		"",
	)
)

// DirectoryExecuteError represents a customer-directory failure,
// implementing the AppError interface. The wrapped cause is logged
// server-side but never serialized to the client.
type DirectoryExecuteError struct {
	err     error
	details string
}

// NewDirectoryExecuteError creates a directory-related error
func NewDirectoryExecuteError(err error, details string) AppError {
	return &DirectoryExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DirectoryExecuteError) Error() string {
	return errors.Wrap(e.err, "directory execution failed").Error()
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *DirectoryExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DirectoryExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DirectoryExecuteError) ErrorCode() string {
	return "DIRECTORY_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DirectoryExecuteError) Message() string {
	return "Something went wrong, please try again"
}

// Details returns detailed error information
func (e *DirectoryExecuteError) Details() string {
	return e.details
}
