// Package errors provides structured error types for topodiagram.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into a few groups:
//   - INVALID_*: Input validation failures (spec fields, labels, edges)
//   - UNKNOWN_*: References to things that were never declared
//   - RENDER_FAILED, BACKEND_UNAVAILABLE: Layout engine and export failures
//   - IO_ERROR: The output could not be written
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "edge references undeclared node %d", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle reference error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidKind      Code = "INVALID_KIND"
	ErrCodeInvalidEdge      Code = "INVALID_EDGE"
	ErrCodeInvalidFilename  Code = "INVALID_FILENAME"

	// Diagram structure errors
	ErrCodeUnknownNode      Code = "UNKNOWN_NODE"
	ErrCodeUnknownTopology  Code = "UNKNOWN_TOPOLOGY"
	ErrCodeDuplicateCluster Code = "DUPLICATE_CLUSTER"
	ErrCodeScope            Code = "SCOPE_ERROR"

	// Rendering errors
	ErrCodeRenderFailed       Code = "RENDER_FAILED"
	ErrCodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"

	// Output errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message without the code prefix
// (and the cause, when present). For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
