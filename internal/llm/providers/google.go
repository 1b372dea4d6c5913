package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// GoogleProvider implements LLMProvider for Google's Gemini models
type GoogleProvider struct {
	client *googleai.GoogleAI
	config llm.ProviderConfig
}

// NewGoogleProvider creates a new Google provider. ctx bounds client
// construction only.
func NewGoogleProvider(ctx context.Context, cfg llm.ProviderConfig) (*GoogleProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewProviderUnauthorizedError("google", nil)
	}

	opts := []googleai.Option{
		googleai.WithAPIKey(apiKey),
	}

	if cfg.Model != "" {
		opts = append(opts, googleai.WithDefaultModel(cfg.Model))
	}

	client, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("google", err)
	}

	return &GoogleProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Complete sends a completion request
func (p *GoogleProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, nil)
}

// CompleteWithTools sends a completion request with tool definitions
func (p *GoogleProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), req, tools)
}

// Health checks the provider health
func (p *GoogleProvider) Health(ctx context.Context) types.HealthStatus {
	return probeHealth(ctx, p, p.config.Model)
}
