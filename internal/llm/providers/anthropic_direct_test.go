package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// toolRoundHistory is a session after one tool round: system, user,
// assistant tool call, tool result.
func toolRoundHistory() []llm.Message {
	call := llm.ToolCall{
		ID:        "toolu_01",
		Type:      "function",
		Name:      "run_cypher_query",
		Arguments: `{"query":"MATCH (f:Fighter) RETURN f.Name AS name"}`,
	}
	return []llm.Message{
		llm.NewSystemMessage("You are a helpful assistant."),
		llm.NewUserMessage("Which fighters exist?"),
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{call}},
		llm.NewToolResultMessage(call.ID, call.Name, `{"name":"Jose Aldo"}`),
	}
}

type capturedRequest struct {
	header http.Header
	path   string
	body   anthropicRequest
}

func messagesServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.header = r.Header.Clone()
		captured.path = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &captured.body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestAnthropicProvider_CompleteAfterToolRoundDeclaresToolsWithChoiceNone(t *testing.T) {
	srv, captured := messagesServer(t, http.StatusOK, `{
		"id": "msg_01",
		"model": "claude-3-5-sonnet-20241022",
		"content": [{"type": "text", "text": "Jose Aldo is a fighter."}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 120, "output_tokens": 8}
	}`)

	p, err := NewAnthropicProvider(llm.ProviderConfig{
		Type:    llm.ProviderAnthropic,
		APIKey:  "sk-ant-test",
		BaseURL: srv.URL + "/v1",
	})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{Messages: toolRoundHistory()})
	require.NoError(t, err)

	assert.Equal(t, "Jose Aldo is a fighter.", resp.Message.Content)
	assert.False(t, resp.Message.HasToolCalls())
	assert.Equal(t, llm.FinishReasonStop, resp.FinishReason)
	assert.Equal(t, 128, resp.Usage.TotalTokens)

	assert.Equal(t, "/v1/messages", captured.path)
	assert.Equal(t, "sk-ant-test", captured.header.Get("x-api-key"))
	assert.Equal(t, anthropicAPIVersion, captured.header.Get("anthropic-version"))

	body := captured.body
	assert.Equal(t, anthropicDefaultModel, body.Model)
	assert.Equal(t, anthropicDefaultMaxTokens, body.MaxTokens)
	assert.Equal(t, "You are a helpful assistant.", body.System)

	require.Len(t, body.Tools, 1)
	assert.Equal(t, "run_cypher_query", body.Tools[0].Name)
	assert.JSONEq(t, `{"type":"object"}`, string(body.Tools[0].InputSchema))
	require.NotNil(t, body.ToolChoice)
	assert.Equal(t, "none", body.ToolChoice.Type)

	require.Len(t, body.Messages, 3)
	assert.Equal(t, "user", body.Messages[0].Role)

	assistant := body.Messages[1]
	assert.Equal(t, "assistant", assistant.Role)
	require.Len(t, assistant.Content, 1)
	assert.Equal(t, "tool_use", assistant.Content[0].Type)
	assert.Equal(t, "toolu_01", assistant.Content[0].ID)
	assert.JSONEq(t, `{"query":"MATCH (f:Fighter) RETURN f.Name AS name"}`, string(assistant.Content[0].Input))

	result := body.Messages[2]
	assert.Equal(t, "user", result.Role)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "tool_result", result.Content[0].Type)
	assert.Equal(t, "toolu_01", result.Content[0].ToolUseID)
	assert.Equal(t, `{"name":"Jose Aldo"}`, result.Content[0].Content)
}

func TestBuildAnthropicRequest_GroupsToolResults(t *testing.T) {
	first := llm.ToolCall{ID: "a", Name: "run_cypher_query", Arguments: `{"query":"RETURN 1"}`}
	second := llm.ToolCall{ID: "b", Name: "run_cypher_query", Arguments: `not json`}
	history := []llm.Message{
		llm.NewUserMessage("numbers?"),
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{first, second}},
		llm.NewToolResultMessage("a", first.Name, `{"n":1}`),
		llm.NewToolResultMessage("b", second.Name, "Query failed"),
	}

	req, err := buildAnthropicRequest(llm.CompletionRequest{Messages: history, MaxTokens: 10}, withdrawnTools(history), toolChoiceNone)
	require.NoError(t, err)

	require.Len(t, req.Tools, 1, "each used tool is declared once")
	require.Len(t, req.Messages, 3)
	assert.JSONEq(t, `{}`, string(req.Messages[1].Content[1].Input))

	results := req.Messages[2].Content
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ToolUseID)
	assert.Equal(t, "b", results[1].ToolUseID)
}

func TestWithdrawnTools_NoToolHistory(t *testing.T) {
	assert.Nil(t, withdrawnTools([]llm.Message{
		llm.NewSystemMessage("system"),
		llm.NewUserMessage("hello"),
		llm.NewAssistantMessage("hi"),
	}))
}

func TestAnthropicDirectClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   types.ErrorCode
	}{
		{"unauthorized", http.StatusUnauthorized, llm.ErrProviderUnauthorized},
		{"rate limited", http.StatusTooManyRequests, llm.ErrProviderRateLimited},
		{"overloaded", http.StatusServiceUnavailable, llm.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := messagesServer(t, tt.status, `{"type":"error","error":{"type":"x","message":"nope"}}`)
			c := NewAnthropicDirectClient("sk-ant-test", srv.URL)

			_, err := c.Complete(context.Background(), llm.CompletionRequest{Messages: toolRoundHistory()}, nil, toolChoiceNone)
			require.Error(t, err)
			assert.Equal(t, tt.code, types.CodeOf(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestParseAnthropicResponse_ToolUse(t *testing.T) {
	resp, err := parseAnthropicResponse([]byte(`{
		"content": [
			{"type": "text", "text": "Looking that up."},
			{"type": "tool_use", "id": "toolu_02", "name": "run_cypher_query", "input": {"query": "RETURN 1"}}
		],
		"stop_reason": "tool_use"
	}`))
	require.NoError(t, err)

	assert.Equal(t, llm.FinishReasonToolCalls, resp.FinishReason)
	assert.NotEmpty(t, resp.ID)
	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "toolu_02", resp.Message.ToolCalls[0].ID)
	assert.JSONEq(t, `{"query":"RETURN 1"}`, resp.Message.ToolCalls[0].Arguments)
}
