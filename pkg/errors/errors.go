package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Manifest errors
	ErrManifestUnreadable ErrorCode = "MANIFEST_UNREADABLE"
	ErrManifestParse      ErrorCode = "MANIFEST_PARSE"
	ErrManifestNotFound   ErrorCode = "MANIFEST_NOT_FOUND"

	// Expansion errors
	ErrUnresolvedVar ErrorCode = "UNRESOLVED_VAR"

	// Reconciliation errors
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"
	ErrConflict      ErrorCode = "CONFLICT"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// External tool errors
	ErrEditor ErrorCode = "EDITOR"
)

// LinkmapError represents a structured error with code and details
type LinkmapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkmapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkmapError) Unwrap() error {
	return e.Wrapped
}

// Is matches errors by code
func (e *LinkmapError) Is(target error) bool {
	var targetErr *LinkmapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LinkmapError with the given code and message
func New(code ErrorCode, message string) *LinkmapError {
	return &LinkmapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkmapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkmapError {
	return &LinkmapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkmapError
func Wrap(err error, code ErrorCode, message string) *LinkmapError {
	if err == nil {
		return nil
	}
	return &LinkmapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkmapError {
	if err == nil {
		return nil
	}
	return &LinkmapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LinkmapError) WithDetail(key string, value interface{}) *LinkmapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lmErr *LinkmapError
	if errors.As(err, &lmErr) {
		return lmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// the error is not a LinkmapError
func GetErrorCode(err error) ErrorCode {
	var lmErr *LinkmapError
	if errors.As(err, &lmErr) {
		return lmErr.Code
	}
	return ErrUnknown
}
