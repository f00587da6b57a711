// Package errors provides structured error types for radialstack.
//
// Error codes let the CLI, the HTTP host and the MCP host report failures
// consistently while the rendering core itself absorbs anomalies and simply
// draws nothing.
//
// # Error Codes
//
// Codes follow a small naming convention:
//   - INVALID_*: input validation failures
//   - MISSING_* / EMPTY_*: inputs that carry no drawable data
//   - *_NOT_FOUND: missing resources
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingRole, "no column carries role %s", role)
//	if errors.Is(err, errors.ErrCodeMissingRole) {
//	    // render nothing
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
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
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidViewport Code = "INVALID_VIEWPORT"
	ErrCodeInvalidPalette  Code = "INVALID_PALETTE"

	// Inputs with nothing to draw
	ErrCodeMissingRole Code = "MISSING_ROLE"
	ErrCodeEmptyInput  Code = "EMPTY_INPUT"

	// Resource not found errors
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

// UserMessage returns the message without the code prefix for *Error values,
// and the error string as-is otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NoData reports whether err means "nothing to draw" rather than a failure.
// Hosts render an empty surface for these instead of surfacing an error.
func NoData(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingRole, ErrCodeEmptyInput:
		return true
	}
	return false
}
