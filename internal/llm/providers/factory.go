package providers

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// NewProvider creates a new LLM provider based on the configuration
func NewProvider(ctx context.Context, cfg llm.ProviderConfig) (llm.LLMProvider, error) {
	switch llm.ProviderType(llm.NormalizeProviderName(string(cfg.Type))) {
	case llm.ProviderAnthropic:
		return NewAnthropicProvider(cfg)

	case llm.ProviderOpenAI:
		return NewOpenAIProvider(cfg)

	case llm.ProviderGoogle:
		return NewGoogleProvider(ctx, cfg)

	case llm.ProviderOllama:
		return NewOllamaProvider(cfg)

	case llm.ProviderMock:
		// Unscripted mock: answers every request with a fixed reply.
		return NewMockProvider(TextResponse("Mock response")).Repeat(), nil

	default:
		return nil, llm.NewProviderNotFoundError(fmt.Sprintf("%q", cfg.Type))
	}
}

// probeHealth sends a one token completion to verify credentials and
// reachability.
func probeHealth(ctx context.Context, p llm.LLMProvider, model string) types.HealthStatus {
	req := llm.CompletionRequest{
		Model:     model,
		Messages:  []llm.Message{llm.NewUserMessage("ping")},
		MaxTokens: 1,
	}

	if _, err := p.Complete(ctx, req); err != nil {
		return types.Unhealthy(err.Error())
	}

	return types.Healthy(p.Name() + " reachable")
}
