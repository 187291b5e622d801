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

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Indexing errors
	ErrIndexWalk ErrorCode = "INDEX_WALK"

	// Job descriptor errors
	ErrJobDescriptorRead  ErrorCode = "JOB_DESCRIPTOR_READ"
	ErrJobDescriptorParse ErrorCode = "JOB_DESCRIPTOR_PARSE"
	ErrManifestRoots      ErrorCode = "MANIFEST_ROOTS"

	// Link file (CSV) errors
	ErrCSVOpen        ErrorCode = "CSV_OPEN"
	ErrCSVParse       ErrorCode = "CSV_PARSE"
	ErrMissingHeaders ErrorCode = "MISSING_HEADERS"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrSymlinkExists ErrorCode = "SYMLINK_EXISTS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// VPathError represents a structured error with code and details
type VPathError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VPathError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VPathError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a VPathError carrying the same code
func (e *VPathError) Is(target error) bool {
	var targetErr *VPathError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VPathError with the given code and message
func New(code ErrorCode, message string) *VPathError {
	return &VPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VPathError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VPathError {
	return &VPathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VPathError.
// A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *VPathError {
	if err == nil {
		return nil
	}
	return &VPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VPathError {
	if err == nil {
		return nil
	}
	return &VPathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VPathError) WithDetail(key string, value interface{}) *VPathError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vpathErr *VPathError
	if errors.As(err, &vpathErr) {
		return vpathErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VPathError
func GetErrorCode(err error) ErrorCode {
	var vpathErr *VPathError
	if errors.As(err, &vpathErr) {
		return vpathErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VPathError
func GetErrorDetails(err error) map[string]interface{} {
	var vpathErr *VPathError
	if errors.As(err, &vpathErr) {
		return vpathErr.Details
	}
	return nil
}
