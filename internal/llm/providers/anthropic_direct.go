package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/zero-day-ai/graphchat/internal/llm"
)

const (
	anthropicAPIVersion = "2023-06-01"
	anthropicMessages   = "/v1/messages"

	// toolChoiceNone declares tools the model must not call.
	toolChoiceNone = "none"
)

// AnthropicDirectClient talks to the Messages API over HTTP for requests
// langchaingo cannot express: tool declarations with tool_choice, and
// histories holding tool_use and tool_result blocks.
type AnthropicDirectClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicDirectClient creates a client for the API root baseURL. A
// trailing /v1 is accepted.
func NewAnthropicDirectClient(apiKey, baseURL string) *AnthropicDirectClient {
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	return &AnthropicDirectClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type anthropicMessage struct {
	Role    string                 `json:"role"`
	Content []anthropicContentPart `json:"content"`
}

// anthropicContentPart is a text, tool_use or tool_result block.
type anthropicContentPart struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

type anthropicTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type anthropicToolChoice struct {
	Type string `json:"type"`
}

type anthropicRequest struct {
	Model       string               `json:"model"`
	MaxTokens   int                  `json:"max_tokens"`
	System      string               `json:"system,omitempty"`
	Messages    []anthropicMessage   `json:"messages"`
	Tools       []anthropicTool      `json:"tools,omitempty"`
	ToolChoice  *anthropicToolChoice `json:"tool_choice,omitempty"`
	Temperature *float64             `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	ID         string                 `json:"id"`
	Content    []anthropicContentPart `json:"content"`
	Model      string                 `json:"model"`
	StopReason string                 `json:"stop_reason"`
	Usage      anthropicUsage         `json:"usage"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends req with tools declared under the given tool_choice type.
func (c *AnthropicDirectClient) Complete(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef, choice string) (*llm.CompletionResponse, error) {
	if c.apiKey == "" {
		return nil, llm.NewProviderUnauthorizedError("anthropic", nil)
	}

	anthropicReq, err := buildAnthropicRequest(req, tools, choice)
	if err != nil {
		return nil, llm.NewInvalidRequestError(err.Error())
	}

	body, err := c.doRequest(ctx, anthropicReq)
	if err != nil {
		return nil, err
	}
	return parseAnthropicResponse(body)
}

func buildAnthropicRequest(req llm.CompletionRequest, tools []llm.ToolDef, choice string) (*anthropicRequest, error) {
	var system []string
	messages := make([]anthropicMessage, 0, len(req.Messages))

	for _, msg := range req.Messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleUser:
			messages = append(messages, anthropicMessage{
				Role:    "user",
				Content: []anthropicContentPart{{Type: "text", Text: msg.Content}},
			})
		case llm.RoleAssistant:
			var parts []anthropicContentPart
			if msg.Content != "" || len(msg.ToolCalls) == 0 {
				parts = append(parts, anthropicContentPart{Type: "text", Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, anthropicContentPart{
					Type:  "tool_use",
					ID:    call.ID,
					Name:  call.Name,
					Input: toolInput(call.Arguments),
				})
			}
			messages = append(messages, anthropicMessage{Role: "assistant", Content: parts})
		case llm.RoleTool:
			result := anthropicContentPart{Type: "tool_result", ToolUseID: msg.ToolCallID, Content: msg.Content}
			// results answering one assistant turn share a single user message
			if n := len(messages); n > 0 && messages[n-1].Role == "user" && isToolResults(messages[n-1]) {
				messages[n-1].Content = append(messages[n-1].Content, result)
				continue
			}
			messages = append(messages, anthropicMessage{Role: "user", Content: []anthropicContentPart{result}})
		}
	}

	out := &anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    strings.Join(system, "\n\n"),
		Messages:  messages,
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		out.Temperature = &temp
	}

	for _, tool := range tools {
		schema, err := json.Marshal(tool.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameters of tool %s: %w", tool.Name, err)
		}
		if tool.Parameters == nil {
			schema = json.RawMessage(`{"type":"object"}`)
		}
		out.Tools = append(out.Tools, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}
	if len(out.Tools) > 0 {
		out.ToolChoice = &anthropicToolChoice{Type: choice}
	}

	return out, nil
}

// toolInput returns the call arguments as a JSON object. Arguments that
// are not an object are replayed as {}.
func toolInput(arguments string) json.RawMessage {
	trimmed := strings.TrimSpace(arguments)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return json.RawMessage(`{}`)
}

func isToolResults(m anthropicMessage) bool {
	for _, part := range m.Content {
		if part.Type != "tool_result" {
			return false
		}
	}
	return len(m.Content) > 0
}

func (c *AnthropicDirectClient) doRequest(ctx context.Context, anthropicReq *anthropicRequest) ([]byte, error) {
	reqBody, err := json.Marshal(anthropicReq)
	if err != nil {
		return nil, llm.NewInvalidRequestError(fmt.Sprintf("failed to marshal request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+anthropicMessages, bytes.NewReader(reqBody))
	if err != nil {
		return nil, llm.NewInvalidRequestError(fmt.Sprintf("failed to create HTTP request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, llm.TranslateError("anthropic", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llm.NewNetworkError("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		var errResp anthropicErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		apiErr := fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, msg)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, llm.NewProviderUnauthorizedError("anthropic", apiErr)
		case http.StatusTooManyRequests:
			return nil, llm.NewRateLimitError("anthropic", apiErr)
		case http.StatusBadRequest:
			return nil, llm.NewCompletionError(msg, apiErr)
		default:
			return nil, llm.NewProviderUnavailableError("anthropic", apiErr)
		}
	}

	return body, nil
}

func parseAnthropicResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, llm.NewCompletionError("failed to parse response", err)
	}

	var (
		text      []string
		toolCalls []llm.ToolCall
	)
	for _, part := range resp.Content {
		switch part.Type {
		case "text":
			text = append(text, part.Text)
		case "tool_use":
			toolCalls = append(toolCalls, llm.ToolCall{
				ID:        part.ID,
				Type:      "function",
				Name:      part.Name,
				Arguments: string(part.Input),
			})
		}
	}

	finishReason := llm.FinishReasonStop
	switch resp.StopReason {
	case "max_tokens":
		finishReason = llm.FinishReasonLength
	case "tool_use":
		finishReason = llm.FinishReasonToolCalls
	case "refusal":
		finishReason = llm.FinishReasonContentFilter
	}

	id := resp.ID
	if id == "" {
		id = uuid.New().String()
	}

	return &llm.CompletionResponse{
		ID:    id,
		Model: resp.Model,
		Message: llm.Message{
			Role:      llm.RoleAssistant,
			Content:   strings.Join(text, ""),
			ToolCalls: toolCalls,
		},
		FinishReason: finishReason,
		Usage: llm.CompletionTokenUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// withdrawnTools declares the tools a history already used, so a request
// that offers no tools can still carry tool_use and tool_result blocks.
// It returns nil when the history has no tool calls.
func withdrawnTools(messages []llm.Message) []llm.ToolDef {
	var (
		defs []llm.ToolDef
		seen = make(map[string]bool)
	)
	for _, msg := range messages {
		for _, call := range msg.ToolCalls {
			if seen[call.Name] {
				continue
			}
			seen[call.Name] = true
			defs = append(defs, llm.NewToolDef(call.Name, "", nil))
		}
	}
	return defs
}
