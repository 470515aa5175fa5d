// Package errors provides structured error types for ecsdump.
//
// Every failure in the dump pipeline is a caller precondition violation or
// an internal-consistency failure of the scheduler collaborator; neither is
// transient, so errors carry a machine-readable [Code] and are returned to
// the top-level caller unchanged.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - *_NOT_FOUND / *_MISSING: a requested schedule or sub-app is absent
//   - BUILD_*: the scheduler's cached graph is unusable
//   - HIERARCHY_CYCLE, DANGLING_EDGE, ORDER_AMBIGUITY_CONFLICT: malformed
//     scheduler state detected during extraction
//   - INVALID_*: CLI and manifest input failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeScheduleNotFound, "schedule doesn't exist: %s", label)
//	if errors.Is(err, errors.ErrCodeScheduleNotFound) {
//	    // report to the caller
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBuildFailed, origErr, "build schedule %s", label)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller precondition violations
	ErrCodeScheduleNotFound Code = "SCHEDULE_NOT_FOUND"
	ErrCodeRenderAppMissing Code = "RENDER_APP_MISSING"

	// Scheduler build state
	ErrCodeBuildRequired Code = "BUILD_REQUIRED"
	ErrCodeBuildFailed   Code = "BUILD_FAILED"

	// Malformed scheduler state
	ErrCodeHierarchyCycle         Code = "HIERARCHY_CYCLE"
	ErrCodeDanglingEdge           Code = "DANGLING_EDGE"
	ErrCodeOrderAmbiguityConflict Code = "ORDER_AMBIGUITY_CONFLICT"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

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
// It unwraps the error chain looking for an *Error with a matching code,
// so a BUILD_FAILED wrapping a HIERARCHY_CYCLE matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
