package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      types.ErrorCode
		retryable bool
	}{
		{"auth", errors.New("401 Unauthorized: invalid api key"), ErrProviderUnauthorized, false},
		{"rate limit", errors.New("429 Too Many Requests"), ErrProviderRateLimited, true},
		{"timeout text", errors.New("request timeout"), ErrTimeoutExceeded, true},
		{"network", errors.New("connection refused"), ErrNetworkFailed, true},
		{"other", errors.New("internal server error"), ErrProviderUnavailable, true},
		{"cancelled", fmt.Errorf("post: %w", context.Canceled), ErrContextCanceled, false},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), ErrTimeoutExceeded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError("openai", tt.err)
			assert.Equal(t, tt.code, types.CodeOf(got))
			assert.Equal(t, tt.retryable, IsRetryable(got))
		})
	}
}

func TestTranslateError_PassThrough(t *testing.T) {
	assert.NoError(t, TranslateError("openai", nil))

	existing := NewInvalidRequestError("bad")
	assert.Same(t, existing, TranslateError("openai", existing))
}

func TestIsRetryable_PlainError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(NewProviderNotFoundError("x")))
	assert.True(t, IsRetryable(NewProviderUnavailableError("x", nil)))
}
