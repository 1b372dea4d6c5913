package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// OllamaProvider implements LLMProvider for local Ollama models. Tool calls
// require a model with function calling support.
type OllamaProvider struct {
	client *ollama.LLM
	config llm.ProviderConfig
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(cfg llm.ProviderConfig) (*OllamaProvider, error) {
	opts := []ollama.Option{
		ollama.WithServerURL(cfg.GetBaseURL()),
	}

	if cfg.Model != "" {
		opts = append(opts, ollama.WithModel(cfg.Model))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("ollama", err)
	}

	return &OllamaProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete sends a completion request
func (p *OllamaProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, nil)
}

// CompleteWithTools sends a completion request with tool definitions
func (p *OllamaProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, tools)
}

// Health checks the provider health
func (p *OllamaProvider) Health(ctx context.Context) types.HealthStatus {
	return probeHealth(ctx, p, p.config.Model)
}
