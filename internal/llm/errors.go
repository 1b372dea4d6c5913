package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// LLM error codes
const (
	// Provider errors
	ErrProviderNotFound     types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"

	// Request errors
	ErrInvalidRequest types.ErrorCode = "LLM_INVALID_REQUEST"
	ErrInvalidTool    types.ErrorCode = "LLM_INVALID_TOOL"

	// Completion errors
	ErrCompletionFailed types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrInvalidResponse  types.ErrorCode = "LLM_INVALID_RESPONSE"
	ErrTimeoutExceeded  types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"
	ErrContextCanceled  types.ErrorCode = "LLM_CONTEXT_CANCELED"

	// Network errors
	ErrNetworkFailed types.ErrorCode = "LLM_NETWORK_FAILED"
)

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var gcErr *types.GraphchatError
	if !errors.As(err, &gcErr) {
		return false
	}

	if gcErr.Retryable {
		return true
	}

	switch gcErr.Code {
	case ErrNetworkFailed, ErrProviderRateLimited, ErrProviderUnavailable, ErrTimeoutExceeded:
		return true
	default:
		return false
	}
}

// NewProviderNotFoundError creates an error for an unknown provider type.
func NewProviderNotFoundError(providerName string) *types.GraphchatError {
	return types.NewError(ErrProviderNotFound, "provider not found: "+providerName)
}

// NewProviderInitError wraps a failure to construct a provider client.
func NewProviderInitError(providerName string, cause error) *types.GraphchatError {
	return types.WrapError(ErrProviderInitFailed, "failed to initialize provider: "+providerName, cause)
}

// NewProviderUnavailableError creates a retryable error for a provider that
// is temporarily unavailable.
func NewProviderUnavailableError(providerName string, cause error) *types.GraphchatError {
	return &types.GraphchatError{
		Code:      ErrProviderUnavailable,
		Message:   "provider temporarily unavailable: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewProviderUnauthorizedError creates an authentication failure error.
func NewProviderUnauthorizedError(providerName string, cause error) *types.GraphchatError {
	return types.WrapError(ErrProviderUnauthorized,
		fmt.Sprintf("provider '%s' authentication failed", providerName), cause)
}

// NewRateLimitError creates a retryable error for rate limiting
func NewRateLimitError(providerName string, cause error) *types.GraphchatError {
	return &types.GraphchatError{
		Code:      ErrProviderRateLimited,
		Message:   "rate limit exceeded for provider: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewInvalidRequestError creates an error for invalid requests
func NewInvalidRequestError(message string) *types.GraphchatError {
	return types.NewError(ErrInvalidRequest, message)
}

// NewCompletionError creates an error for completion failures
func NewCompletionError(message string, cause error) *types.GraphchatError {
	return types.WrapError(ErrCompletionFailed, message, cause)
}

// NewNetworkError creates a retryable error for network failures
func NewNetworkError(message string, cause error) *types.GraphchatError {
	return &types.GraphchatError{
		Code:      ErrNetworkFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// TranslateError classifies a provider SDK error into a GraphchatError based
// on context state and message content.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var gcErr *types.GraphchatError
	if errors.As(err, &gcErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return types.WrapError(ErrContextCanceled, "request cancelled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &types.GraphchatError{
			Code:      ErrTimeoutExceeded,
			Message:   "request deadline exceeded",
			Retryable: true,
			Cause:     err,
		}
	}

	lowerMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lowerMsg, "unauthorized") || strings.Contains(lowerMsg, "authentication") || strings.Contains(lowerMsg, "api key"):
		return NewProviderUnauthorizedError(provider, err)
	case strings.Contains(lowerMsg, "rate limit") || strings.Contains(lowerMsg, "too many requests"):
		return NewRateLimitError(provider, err)
	case strings.Contains(lowerMsg, "timeout") || strings.Contains(lowerMsg, "deadline"):
		return &types.GraphchatError{
			Code:      ErrTimeoutExceeded,
			Message:   err.Error(),
			Retryable: true,
			Cause:     err,
		}
	case strings.Contains(lowerMsg, "network") || strings.Contains(lowerMsg, "connection"):
		return NewNetworkError(err.Error(), err)
	default:
		return NewProviderUnavailableError(provider, err)
	}
}
