package llm

import (
	"fmt"
	"strings"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// ProviderType represents the type of LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderGoogle    ProviderType = "google"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig selects and configures the reasoning engine.
type ProviderConfig struct {
	Type        ProviderType `mapstructure:"provider" yaml:"provider" validate:"required,oneof=anthropic openai ollama google mock"`
	Model       string       `mapstructure:"model" yaml:"model"`
	APIKey      string       `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string       `mapstructure:"base_url" yaml:"base_url"`
	Temperature float64      `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens   int          `mapstructure:"max_tokens" yaml:"max_tokens" validate:"min=0"`
}

// DefaultProviderConfig returns an OpenAI configuration with deterministic
// sampling. The model is left to the provider's default.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Type:        ProviderOpenAI,
		Temperature: 0,
		MaxTokens:   0,
	}
}

// Validate checks provider specific requirements that struct tags cannot
// express.
func (p ProviderConfig) Validate() error {
	switch p.Type {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		if p.APIKey == "" {
			return types.NewError(types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("api_key is required for provider '%s'", p.Type))
		}
	case ProviderOllama:
		if p.Model == "" {
			return types.NewError(types.CONFIG_VALIDATION_FAILED, "model is required for provider 'ollama'")
		}
	case ProviderMock:
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("invalid provider type '%s', must be one of: anthropic, openai, ollama, google, mock", p.Type))
	}

	if p.Temperature < 0 || p.Temperature > 2 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("temperature must be between 0 and 2, got %f", p.Temperature))
	}
	return nil
}

// GetBaseURL returns the base URL for a provider, with defaults for known providers.
func (p ProviderConfig) GetBaseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}

	switch p.Type {
	case ProviderAnthropic:
		return "https://api.anthropic.com"
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderGoogle:
		return "https://generativelanguage.googleapis.com/v1beta"
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// NormalizeProviderName normalizes provider names to lowercase for consistent lookup.
func NormalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
