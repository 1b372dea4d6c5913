package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// anthropicDefaultModel is used when the configuration names no model.
const anthropicDefaultModel = "claude-3-5-sonnet-20241022"

// AnthropicProvider implements LLMProvider for Anthropic's Claude models.
// Requests whose history holds tool calls but offer no tools go through
// the direct Messages client, which re-declares the used tools with
// tool_choice none; the API rejects tool blocks without declarations.
type AnthropicProvider struct {
	client *anthropic.LLM
	direct *AnthropicDirectClient
	config llm.ProviderConfig
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(cfg llm.ProviderConfig) (*AnthropicProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewProviderUnauthorizedError("anthropic", nil)
	}

	if cfg.Model == "" {
		cfg.Model = anthropicDefaultModel
	}

	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
		anthropic.WithModel(cfg.Model),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.NewProviderInitError("anthropic", err)
	}

	return &AnthropicProvider{
		client: client,
		direct: NewAnthropicDirectClient(apiKey, cfg.GetBaseURL()),
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete sends a completion request
func (p *AnthropicProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = withMaxTokens(req, p.config.MaxTokens)
	if used := withdrawnTools(req.Messages); len(used) > 0 {
		if req.Model == "" {
			req.Model = p.config.Model
		}
		return p.direct.Complete(ctx, req, used, toolChoiceNone)
	}
	return generate(ctx, p.client, p.Name(), req, nil)
}

// CompleteWithTools sends a completion request with tool definitions
func (p *AnthropicProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return generate(ctx, p.client, p.Name(), withMaxTokens(req, p.config.MaxTokens), tools)
}

// Health checks the provider health
func (p *AnthropicProvider) Health(ctx context.Context) types.HealthStatus {
	return probeHealth(ctx, p, p.config.Model)
}

// anthropicDefaultMaxTokens is sent when neither the request nor the config
// sets a limit. The Messages API rejects requests without max_tokens.
const anthropicDefaultMaxTokens = 4096

func withMaxTokens(req llm.CompletionRequest, configured int) llm.CompletionRequest {
	if req.MaxTokens > 0 {
		return req
	}
	if configured > 0 {
		req.MaxTokens = configured
	} else {
		req.MaxTokens = anthropicDefaultMaxTokens
	}
	return req
}
