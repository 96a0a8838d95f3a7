// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration and versions
//   - Data/Resource errors (200-299): Trade history files, queries and sources
//   - Statistics errors (300-399): Nothing to compute a report from
//   - Report errors (400-499): Rendering and writing reports
//   - Generator errors (500-599): Synthetic trade data generation
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataNotFound, "trade history not found: %s", path)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeDataNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join wraps the standard errors.Join so callers only import this package.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	if IsEmptyDataError(err) {
		return ErrCodeEmptyData
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// EmptyDataError is returned when a trade history contains no realized
// profit or loss to analyze.
type EmptyDataError struct {
	Total   int    // Records received, including zero-profit ones
	Message string // Human-readable message
}

// NewEmptyDataError creates a new EmptyDataError.
func NewEmptyDataError(total int, message string) *EmptyDataError {
	return &EmptyDataError{
		Total:   total,
		Message: message,
	}
}

// NewEmptyDataErrorf creates a new EmptyDataError with a formatted message.
func NewEmptyDataErrorf(total int, format string, args ...any) *EmptyDataError {
	return &EmptyDataError{
		Total:   total,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *EmptyDataError) Error() string {
	return e.Message
}

// IsEmptyDataError checks if an error is an EmptyDataError.
// It uses errors.As to check the error chain.
func IsEmptyDataError(err error) bool {
	var emptyErr *EmptyDataError

	return errors.As(err, &emptyErr)
}
