// Package errors provides structured error types for the thrackle engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Classification of every code into an advisory [Kind]
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*, DUPLICATE_*, MISSING_*: rejected user input
//   - NOT_*, CROSSINGS_*, UNREALIZABLE: layout synthesis preconditions
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Network-related errors (cache and history backends)
//   - INTERNAL_*, UNKNOWN_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateVertex, "vertex %q already exists", id)
//	if errors.Is(err, errors.ErrCodeDuplicateVertex) {
//	    // Handle rejected input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to reach %s", addr)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidVertexID Code = "INVALID_VERTEX_ID"
	ErrCodeDuplicateVertex Code = "DUPLICATE_VERTEX"
	ErrCodeMissingEndpoint Code = "MISSING_ENDPOINT"
	ErrCodeSelfLoop        Code = "SELF_LOOP"
	ErrCodeDuplicateEdge   Code = "DUPLICATE_EDGE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidShape    Code = "INVALID_SHAPE"
	ErrCodeTooManyVertices Code = "TOO_MANY_VERTICES"

	// Layout synthesis preconditions
	ErrCodeNotPath              Code = "NOT_PATH"
	ErrCodeNotCycle             Code = "NOT_CYCLE"
	ErrCodeCrossingsOutOfRange  Code = "CROSSINGS_OUT_OF_RANGE"
	ErrCodeUnrealizable         Code = "UNREALIZABLE"
	ErrCodeInsufficientVertices Code = "INSUFFICIENT_VERTICES"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnknownEntity Code = "UNKNOWN_ENTITY"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
)

// Kind groups error codes by who is expected to act on them.
type Kind string

const (
	// KindUserInput marks input the caller should correct; the operation
	// was aborted and nothing changed.
	KindUserInput Kind = "user-input"
	// KindPrecondition marks a layout request the graph cannot satisfy.
	KindPrecondition Kind = "precondition"
	// KindInternal marks programmer errors and infrastructure failures.
	KindInternal Kind = "internal"
)

// KindOf classifies an error code. Unknown codes are internal.
func KindOf(code Code) Kind {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidVertexID, ErrCodeDuplicateVertex,
		ErrCodeMissingEndpoint, ErrCodeSelfLoop, ErrCodeDuplicateEdge,
		ErrCodeInvalidFormat, ErrCodeInvalidShape, ErrCodeTooManyVertices:
		return KindUserInput
	case ErrCodeNotPath, ErrCodeNotCycle, ErrCodeCrossingsOutOfRange,
		ErrCodeUnrealizable, ErrCodeInsufficientVertices:
		return KindPrecondition
	}
	return KindInternal
}

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

// Kind returns the advisory kind of the error's code.
func (e *Error) Kind() Kind {
	return KindOf(e.Code)
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

// GetKind returns the advisory kind of err. Errors that carry no code are
// internal.
func GetKind(err error) Kind {
	return KindOf(GetCode(err))
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
