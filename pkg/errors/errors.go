// Package errors provides structured error types for the hpp-model-urdf library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library entry points
//   - Machine-readable error codes for programmatic handling
//   - A clean split between fatal structural errors and recoverable gaps
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Document or input validation failures
//   - MISSING_*: Expected model elements that could not be found
//   - *_UNSUPPORTED: Document features the builder deliberately rejects
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateJoint, "duplicate joint %q", name)
//	if errors.Is(err, errors.ErrCodeDuplicateJoint) {
//	    // Handle duplicate registration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the different failure categories of a model build.
const (
	// Document decoding and validation errors
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidURI      Code = "INVALID_URI"

	// Structural errors raised during tree construction
	ErrCodeDuplicateJoint   Code = "DUPLICATE_JOINT"
	ErrCodeMissingLink      Code = "MISSING_LINK"
	ErrCodeMissingParent    Code = "MISSING_PARENT"
	ErrCodeMissingJoint     Code = "MISSING_JOINT"
	ErrCodeCycleDetected    Code = "CYCLE_DETECTED"
	ErrCodeGeometryMismatch Code = "GEOMETRY_MISMATCH"

	// Deliberately unsupported document features
	ErrCodePlanarUnsupported Code = "PLANAR_UNSUPPORTED"
	ErrCodeUnsupportedJoint  Code = "UNSUPPORTED_JOINT"

	// Resource retrieval errors
	ErrCodeResourceNotFound Code = "RESOURCE_NOT_FOUND"
	ErrCodeNetwork          Code = "NETWORK_ERROR"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
