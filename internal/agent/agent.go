package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/observability"
	"github.com/zero-day-ai/graphchat/internal/tool"
	"github.com/zero-day-ai/graphchat/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names emitted by the agent.
const (
	SpanTurn      = "graphchat.agent.turn"
	SpanReasoning = "graphchat.agent.reasoning"
	SpanTool      = "graphchat.agent.tool"
)

// Config controls a conversation session.
type Config struct {
	// TurnTimeout bounds one call to Ask. Zero means no limit.
	TurnTimeout time.Duration `mapstructure:"turn_timeout" yaml:"turn_timeout" validate:"min=0"`

	// Prompt overrides pieces of the system message.
	Prompt Prompt `mapstructure:"prompt" yaml:"prompt"`
}

// DefaultConfig returns a configuration with no turn timeout and the
// built-in prompt.
func DefaultConfig() Config {
	return Config{Prompt: DefaultPrompt()}
}

// Agent runs the conversational loop: each question gets one reasoning
// call with tools offered, at most one round of tool dispatch, and a final
// reasoning call with tools withdrawn.
type Agent struct {
	provider llm.LLMProvider
	tools    *tool.Registry
	conv     *Conversation
	cfg      Config

	model       string
	temperature float64
	maxTokens   int

	sessionID string
	logger    *observability.TracedLogger
	tracer    trace.Tracer
	recorder  *observability.Recorder

	turnMu  sync.Mutex
	stateMu sync.RWMutex
	state   TurnState
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the session logger. Its session ID becomes the agent's.
func WithLogger(l *observability.TracedLogger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
			a.sessionID = l.SessionID()
		}
	}
}

// WithTracer sets the tracer for turn, reasoning and tool spans.
func WithTracer(t trace.Tracer) Option {
	return func(a *Agent) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *observability.Recorder) Option {
	return func(a *Agent) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithRequestDefaults sets the model and sampling parameters sent with
// every completion request.
func WithRequestDefaults(model string, temperature float64, maxTokens int) Option {
	return func(a *Agent) {
		a.model = model
		a.temperature = temperature
		a.maxTokens = maxTokens
	}
}

// New creates an agent whose system message embeds schemaText.
func New(provider llm.LLMProvider, tools *tool.Registry, schemaText string, cfg Config, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "provider is required")
	}
	if tools == nil {
		return nil, types.NewError(ErrCodeInvalidConfig, "tool registry is required")
	}
	if cfg.TurnTimeout < 0 {
		return nil, types.NewError(ErrCodeInvalidConfig,
			fmt.Sprintf("turn_timeout must be non-negative, got %s", cfg.TurnTimeout))
	}

	a := &Agent{
		provider:  provider,
		tools:     tools,
		cfg:       cfg,
		sessionID: uuid.New().String(),
		tracer:    observability.Tracer(nil),
		recorder:  observability.NewRecorder(nil),
		state:     StateAwaitingUserInput,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = observability.NewTracedLogger(slog.Default().Handler(), a.sessionID)
	}

	a.conv = NewConversation(cfg.Prompt.Compose(schemaText))
	return a, nil
}

// SessionID identifies this conversation in logs and spans.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Conversation returns the session history.
func (a *Agent) Conversation() *Conversation {
	return a.conv
}

// State returns the current turn state.
func (a *Agent) State() TurnState {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state
}

func (a *Agent) transition(to TurnState) error {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if !a.state.CanTransitionTo(to) {
		return NewInvalidStateError(a.state, to)
	}
	a.state = to
	return nil
}

// Ask runs one user turn and returns the answer. Turns are serialized.
//
// An unknown tool name or unparseable tool arguments end the turn with an
// AGENT_CONTRACT_VIOLATION error wrapping tool.ErrUnknownTool or
// tool.ErrInvalidToolArgs. Engine failures end it with AGENT_ENGINE_FAILED.
// Neither is retried.
func (a *Agent) Ask(ctx context.Context, question string) (answer string, err error) {
	if strings.TrimSpace(question) == "" {
		return "", types.NewError(ErrCodeEmptyQuestion, "question cannot be empty")
	}

	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	if a.cfg.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.TurnTimeout)
		defer cancel()
	}

	ctx, span := a.tracer.Start(ctx, SpanTurn, trace.WithAttributes(
		attribute.String("graphchat.session_id", a.sessionID),
	))
	defer span.End()

	start := time.Now()
	toolCalls := 0
	defer func() {
		status := "answered"
		if err != nil {
			status = "failed"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			a.logger.Error(ctx, "turn failed", "error", err, "code", types.CodeOf(err))
		}
		span.SetAttributes(attribute.Int("graphchat.tool_calls", toolCalls))
		a.recorder.RecordTurn(ctx, status, toolCalls, time.Since(start))
		if terr := a.transition(StateAwaitingUserInput); terr != nil && err == nil {
			answer, err = "", terr
		}
	}()

	if err := a.transition(StateReasoning); err != nil {
		return "", err
	}

	a.logger.Info(ctx, "turn started", "history", a.conv.Len())
	a.conv.Append(llm.NewUserMessage(question))

	reply, err := a.reason(ctx, a.tools.Definitions())
	if err != nil {
		return "", err
	}

	if !reply.HasToolCalls() {
		return a.answer(ctx, reply, start)
	}

	a.conv.Append(reply)

	if err := a.transition(StateToolDispatch); err != nil {
		return "", err
	}
	for _, call := range reply.ToolCalls {
		toolCalls++
		result, err := a.dispatch(ctx, call)
		if err != nil {
			return "", err
		}
		a.conv.Append(result.Message())
	}
	if err := a.transition(StateToolObserved); err != nil {
		return "", err
	}

	if err := a.transition(StateReasoning); err != nil {
		return "", err
	}
	final, err := a.reason(ctx, nil)
	if err != nil {
		return "", err
	}
	if final.HasToolCalls() {
		call := final.ToolCalls[0]
		return "", NewContractViolationError(call.ID, call.Name,
			fmt.Errorf("%w: tool requested after tools were withdrawn", tool.ErrUnknownTool))
	}

	return a.answer(ctx, final, start)
}

func (a *Agent) answer(ctx context.Context, reply llm.Message, start time.Time) (string, error) {
	if strings.TrimSpace(reply.Content) == "" {
		return "", NewEngineError(types.NewError(llm.ErrInvalidResponse, "engine returned an empty answer"))
	}

	if err := a.transition(StateAnswered); err != nil {
		return "", err
	}
	a.conv.Append(llm.NewAssistantMessage(reply.Content))
	a.logger.Info(ctx, "turn answered", "elapsed", time.Since(start), "history", a.conv.Len())
	return reply.Content, nil
}

// reason sends the full history. tools == nil withdraws tool use.
func (a *Agent) reason(ctx context.Context, tools []llm.ToolDef) (llm.Message, error) {
	ctx, span := a.tracer.Start(ctx, SpanReasoning, trace.WithAttributes(
		attribute.String("gen_ai.system", a.provider.Name()),
		attribute.String("gen_ai.request.model", a.model),
		attribute.Int("graphchat.tools_offered", len(tools)),
	))
	defer span.End()

	req := llm.CompletionRequest{
		Model:       a.model,
		Messages:    a.conv.Messages(),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	start := time.Now()
	var (
		resp *llm.CompletionResponse
		err  error
	)
	if len(tools) > 0 {
		resp, err = a.provider.CompleteWithTools(ctx, req, tools)
	} else {
		resp, err = a.provider.Complete(ctx, req)
	}
	latency := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.recorder.RecordLLMCompletion(ctx, a.provider.Name(), a.model, "error", 0, 0, latency)
		return llm.Message{}, NewEngineError(err)
	}
	if resp == nil {
		return llm.Message{}, NewEngineError(types.NewError(llm.ErrInvalidResponse, "engine returned no response"))
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.finish_reason", resp.FinishReason.String()),
		attribute.Int("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
	)
	a.recorder.RecordLLMCompletion(ctx, a.provider.Name(), a.model, "success",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, latency)

	return resp.Message, nil
}

func (a *Agent) dispatch(ctx context.Context, call llm.ToolCall) (llm.ToolResult, error) {
	ctx, span := a.tracer.Start(ctx, SpanTool, trace.WithAttributes(
		attribute.String("graphchat.tool.name", call.Name),
		attribute.String("graphchat.tool.call_id", call.ID),
	))
	defer span.End()

	a.logger.Debug(ctx, "dispatching tool", "tool", call.Name, "call_id", call.ID, "arguments", call.Arguments)

	start := time.Now()
	result, err := a.tools.Dispatch(ctx, call)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.recorder.RecordToolCall(ctx, call.Name, "violation", time.Since(start))
		return llm.ToolResult{}, NewContractViolationError(call.ID, call.Name, err)
	}

	a.recorder.RecordToolCall(ctx, call.Name, "success", time.Since(start))
	return result, nil
}
