package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/openai"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// OpenAIProvider implements LLMProvider for OpenAI's GPT models and any
// OpenAI compatible endpoint reachable through BaseURL.
type OpenAIProvider struct {
	client *openai.LLM
	config llm.ProviderConfig
}

// openaiDefaultModel is used when the configuration names no model.
const openaiDefaultModel = "gpt-4o"

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg llm.ProviderConfig) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewProviderUnauthorizedError("openai", nil)
	}

	if cfg.Model == "" {
		cfg.Model = openaiDefaultModel
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("openai", err)
	}

	return &OpenAIProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a completion request
func (p *OpenAIProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, nil)
}

// CompleteWithTools sends a completion request with tool definitions
func (p *OpenAIProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, tools)
}

// Health checks the provider health
func (p *OpenAIProvider) Health(ctx context.Context) types.HealthStatus {
	return probeHealth(ctx, p, p.config.Model)
}
