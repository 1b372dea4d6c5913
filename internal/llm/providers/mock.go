package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// MockCall represents a recorded call to the mock provider
type MockCall struct {
	Method  string
	Request llm.CompletionRequest
	Tools   []llm.ToolDef
}

// MockResponse is one scripted reply. Err, when set, is returned instead of
// a response.
type MockResponse struct {
	Content   string
	ToolCalls []llm.ToolCall
	Err       error
}

// TextResponse scripts a plain answer.
func TextResponse(content string) MockResponse {
	return MockResponse{Content: content}
}

// ToolCallResponse scripts a reply requesting one tool call. The call ID is
// generated.
func ToolCallResponse(name, arguments string) MockResponse {
	return MockResponse{
		ToolCalls: []llm.ToolCall{{
			ID:        "call_" + uuid.New().String(),
			Type:      "function",
			Name:      name,
			Arguments: arguments,
		}},
	}
}

// ErrorResponse scripts a provider failure.
func ErrorResponse(err error) MockResponse {
	return MockResponse{Err: err}
}

// MockProvider implements LLMProvider for testing. Scripted responses are
// consumed in order across Complete and CompleteWithTools. Running out of
// script is an error unless Repeat was called.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	index     int
	repeat    bool
	calls     []MockCall
	health    types.HealthStatus
}

// NewMockProvider creates a new mock provider
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{
		responses: responses,
		calls:     make([]MockCall, 0),
		health:    types.Healthy("mock provider"),
	}
}

// Repeat makes the last scripted response answer every further request.
func (p *MockProvider) Repeat() *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.repeat = true
	return p
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Complete returns the next scripted response
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return p.next(ctx, "Complete", req, nil)
}

// CompleteWithTools returns the next scripted response
func (p *MockProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return p.next(ctx, "CompleteWithTools", req, tools)
}

func (p *MockProvider) next(ctx context.Context, method string, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Copy messages so later appends by the caller do not alter the record.
	recorded := req
	recorded.Messages = append([]llm.Message(nil), req.Messages...)
	p.calls = append(p.calls, MockCall{Method: method, Request: recorded, Tools: tools})

	if err := ctx.Err(); err != nil {
		return nil, llm.TranslateError("mock", err)
	}

	if len(p.responses) == 0 {
		return nil, llm.NewCompletionError("no scripted responses", nil)
	}

	idx := p.index
	if idx >= len(p.responses) {
		if !p.repeat {
			return nil, llm.NewCompletionError(
				fmt.Sprintf("script exhausted after %d responses", len(p.responses)), nil)
		}
		idx = len(p.responses) - 1
	}
	p.index++

	scripted := p.responses[idx]
	if scripted.Err != nil {
		return nil, scripted.Err
	}

	finishReason := llm.FinishReasonStop
	if len(scripted.ToolCalls) > 0 {
		finishReason = llm.FinishReasonToolCalls
	}

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: req.Model,
		Message: llm.Message{
			Role:      llm.RoleAssistant,
			Content:   scripted.Content,
			ToolCalls: append([]llm.ToolCall(nil), scripted.ToolCalls...),
		},
		FinishReason: finishReason,
	}, nil
}

// Health returns the configured health status
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.health
}

// SetHealthStatus configures what Health() returns.
func (p *MockProvider) SetHealthStatus(status types.HealthStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = status
}

// GetCalls returns all recorded calls
func (p *MockProvider) GetCalls() []MockCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// Remaining returns how many scripted responses have not been consumed.
func (p *MockProvider) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.responses) {
		return 0
	}
	return len(p.responses) - p.index
}

// Reset clears recorded calls and rewinds the script.
func (p *MockProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = make([]MockCall, 0)
	p.index = 0
}

var _ llm.LLMProvider = (*MockProvider)(nil)
var _ llm.LLMProvider = (*OpenAIProvider)(nil)
var _ llm.LLMProvider = (*AnthropicProvider)(nil)
var _ llm.LLMProvider = (*OllamaProvider)(nil)
var _ llm.LLMProvider = (*GoogleProvider)(nil)
