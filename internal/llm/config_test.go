package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr string
	}{
		{"openai with key", ProviderConfig{Type: ProviderOpenAI, APIKey: "sk-test"}, ""},
		{"openai without key", ProviderConfig{Type: ProviderOpenAI}, "api_key is required"},
		{"anthropic without key", ProviderConfig{Type: ProviderAnthropic}, "api_key is required"},
		{"ollama with model", ProviderConfig{Type: ProviderOllama, Model: "llama3.1"}, ""},
		{"ollama without model", ProviderConfig{Type: ProviderOllama}, "model is required"},
		{"mock", ProviderConfig{Type: ProviderMock}, ""},
		{"unknown", ProviderConfig{Type: "bard"}, "invalid provider type"},
		{"bad temperature", ProviderConfig{Type: ProviderMock, Temperature: 3}, "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProviderConfig_GetBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1", ProviderConfig{Type: ProviderOpenAI}.GetBaseURL())
	assert.Equal(t, "http://localhost:11434", ProviderConfig{Type: ProviderOllama}.GetBaseURL())
	assert.Equal(t, "http://proxy:8080", ProviderConfig{Type: ProviderOpenAI, BaseURL: "http://proxy:8080"}.GetBaseURL())
	assert.Equal(t, "", ProviderConfig{Type: ProviderMock}.GetBaseURL())
}

func TestDefaultProviderConfig(t *testing.T) {
	cfg := DefaultProviderConfig()
	assert.Equal(t, ProviderOpenAI, cfg.Type)
	assert.Equal(t, 0.0, cfg.Temperature)
}

func TestNormalizeProviderName(t *testing.T) {
	assert.Equal(t, "openai", NormalizeProviderName("  OpenAI "))
}
