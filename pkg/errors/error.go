// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, periods, intervals, configuration
//   - Data/Resource errors (200-299): Empty results, unknown symbols, sparse batch coverage
//   - Market data errors (700-799): Transport, status, parsing and session failures
//
// Retrieval code never returns these to callers of the market data client; they label the
// failed attempts of each fallback strategy in logs.
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period %q", period)
//	err := errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "chart request failed", cause)
//	if errors.HasCode(err, errors.ErrCodeSymbolNotFound) { ... }
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
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientCoverageError is returned when a batch download covers fewer symbols than
// the minimum required to accept it.
type InsufficientCoverageError struct {
	Required int // Minimum number of symbols with data
	Actual   int // Symbols that actually returned data
	Source   string
}

// NewInsufficientCoverageError creates a new InsufficientCoverageError.
func NewInsufficientCoverageError(required, actual int, source string) *InsufficientCoverageError {
	return &InsufficientCoverageError{
		Required: required,
		Actual:   actual,
		Source:   source,
	}
}

// Error implements the error interface.
func (e *InsufficientCoverageError) Error() string {
	return fmt.Sprintf("[%d] %s covered %d symbols, need at least %d",
		ErrCodeInsufficientCoverage, e.Source, e.Actual, e.Required)
}

// IsInsufficientCoverageError checks if an error is an InsufficientCoverageError.
func IsInsufficientCoverageError(err error) bool {
	var coverageErr *InsufficientCoverageError

	return errors.As(err, &coverageErr)
}
