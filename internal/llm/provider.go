package llm

import (
	"context"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// LLMProvider is the reasoning engine contract. Implementations wrap a
// concrete model service (OpenAI, Anthropic, Ollama, Gemini) or a script.
type LLMProvider interface {
	// Name returns the provider name (e.g., "anthropic", "openai")
	Name() string

	// Complete sends a completion request without offering tools.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// CompleteWithTools sends a completion request with tool definitions.
	// The response message may carry one or more tool calls.
	CompleteWithTools(ctx context.Context, req CompletionRequest, tools []ToolDef) (*CompletionResponse, error)

	// Health checks the health status of the provider
	Health(ctx context.Context) types.HealthStatus
}
