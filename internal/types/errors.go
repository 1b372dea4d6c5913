package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for graphchat errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// Session error codes
const (
	SESSION_START_FAILED ErrorCode = "SESSION_START_FAILED"
	SESSION_CANCELLED    ErrorCode = "SESSION_CANCELLED"
)

// GraphchatError is a structured error carrying a code, a message and an
// optional cause. Retryable is a hint for callers that implement retries.
type GraphchatError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats the error as "[CODE] message" or "[CODE] message: cause".
func (e *GraphchatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *GraphchatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a GraphchatError with the same code.
func (e *GraphchatError) Is(target error) bool {
	var other *GraphchatError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewError creates a non-retryable error.
func NewError(code ErrorCode, message string) *GraphchatError {
	return &GraphchatError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a retryable error for transient failures.
func NewRetryableError(code ErrorCode, message string) *GraphchatError {
	return &GraphchatError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a non-retryable error wrapping cause.
func WrapError(code ErrorCode, message string, cause error) *GraphchatError {
	return &GraphchatError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first GraphchatError in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	var gcErr *GraphchatError
	if errors.As(err, &gcErr) {
		return gcErr.Code
	}
	return ""
}
