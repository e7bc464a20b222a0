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

	// Usage errors: bad flags or positional arguments, fatal before any
	// filesystem work starts
	ErrUsage ErrorCode = "USAGE"

	// Not-found: the pattern matched nothing; an expected outcome, not a crash
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Pattern errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Traversal errors
	ErrRootAccess ErrorCode = "ROOT_ACCESS"

	// Per-file errors: logged and reported, never fatal to the run
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrBackup     ErrorCode = "BACKUP"

	// Destructive-operation conflicts
	ErrRenameConflict ErrorCode = "RENAME_CONFLICT"
	ErrRename         ErrorCode = "RENAME"

	// Collaborator errors
	ErrEditorLaunch ErrorCode = "EDITOR_LAUNCH"
	ErrPromptFailed ErrorCode = "PROMPT_FAILED"
	ErrOutputWrite  ErrorCode = "OUTPUT_WRITE"
)

// SearchError represents a structured error with code and details
type SearchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SearchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SearchError) Is(target error) bool {
	var targetErr *SearchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SearchError with the given code and message
func New(code ErrorCode, message string) *SearchError {
	return &SearchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SearchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SearchError {
	return &SearchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SearchError
func Wrap(err error, code ErrorCode, message string) *SearchError {
	if err == nil {
		return nil
	}
	return &SearchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SearchError {
	if err == nil {
		return nil
	}
	return &SearchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SearchError) WithDetail(key string, value interface{}) *SearchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SearchError
func GetErrorCode(err error) ErrorCode {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Code
	}
	return ErrUnknown
}
