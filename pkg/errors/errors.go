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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Invocation errors. These abort a run before any file is touched.
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"

	// Manifest errors (logged and skipped)
	ErrMalformedManifestLine ErrorCode = "MALFORMED_MANIFEST_LINE"
	ErrUnsafeRelativePath    ErrorCode = "UNSAFE_RELATIVE_PATH"

	// FileSystem errors
	ErrMissingFile  ErrorCode = "MISSING_FILE"
	ErrStatFailure  ErrorCode = "STAT_FAILURE"
	ErrIOFailure    ErrorCode = "IO_FAILURE"
	ErrDeleteFailed ErrorCode = "DELETE_FAILED"

	// Dry-run verification
	ErrVerifyMismatch ErrorCode = "VERIFY_MISMATCH"
)

// DedupeError represents a structured error with code and details
type DedupeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DedupeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DedupeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DedupeError) Is(target error) bool {
	var targetErr *DedupeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DedupeError with the given code and message
func New(code ErrorCode, message string) *DedupeError {
	return &DedupeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DedupeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DedupeError {
	return &DedupeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DedupeError
func Wrap(err error, code ErrorCode, message string) *DedupeError {
	if err == nil {
		return nil
	}
	return &DedupeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DedupeError {
	if err == nil {
		return nil
	}
	return &DedupeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DedupeError) WithDetail(key string, value interface{}) *DedupeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dedupeErr *DedupeError
	if errors.As(err, &dedupeErr) {
		return dedupeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DedupeError
func GetErrorCode(err error) ErrorCode {
	var dedupeErr *DedupeError
	if errors.As(err, &dedupeErr) {
		return dedupeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DedupeError
func GetErrorDetails(err error) map[string]interface{} {
	var dedupeErr *DedupeError
	if errors.As(err, &dedupeErr) {
		return dedupeErr.Details
	}
	return nil
}
