// Package errors provides structured error types for roadnet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the road-system engine and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The engine itself only raises three kinds of failure:
//   - INVALID_ARGUMENT: a collaborator passed arguments that would corrupt
//     the road-system invariants (connecting a connector to itself, ...)
//   - ILLEGAL_STATE: an operation ran before its prerequisites were set up
//     (checking a criterion without a road system)
//   - NOT_FOUND: a lookup with an unrelated key (the other connector of a
//     connection, queried with a foreign connector)
//
// The remaining codes are used by the import/export adapters and the CLI.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "connector %s already connected", c)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle collaborator bug
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeIllegalState    Code = "ILLEGAL_STATE"
	ErrCodeNotFound        Code = "NOT_FOUND"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// InvalidArgument is shorthand for New(ErrCodeInvalidArgument, ...).
func InvalidArgument(format string, args ...any) *Error {
	return New(ErrCodeInvalidArgument, format, args...)
}

// IllegalState is shorthand for New(ErrCodeIllegalState, ...).
func IllegalState(format string, args ...any) *Error {
	return New(ErrCodeIllegalState, format, args...)
}

// NotFound is shorthand for New(ErrCodeNotFound, ...).
func NotFound(format string, args ...any) *Error {
	return New(ErrCodeNotFound, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
