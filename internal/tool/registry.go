package tool

import (
	"context"
	"fmt"
	"sync"

	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// Registry is the tool table: tools keyed by declared name, listed in
// registration order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return types.NewError(ErrCodeToolInvalidInput, "tool cannot be nil")
	}

	name := t.Name()
	if name == "" {
		return types.NewError(ErrCodeToolInvalidInput, "tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return types.NewError(ErrCodeToolAlreadyExists, fmt.Sprintf("tool %q already registered", name))
	}

	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, types.WrapError(ErrCodeToolNotFound, fmt.Sprintf("tool %q not found", name), ErrUnknownTool)
	}
	return t, nil
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Definitions returns the declarations of all tools in registration order.
func (r *Registry) Definitions() []llm.ToolDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]llm.ToolDef, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, Definition(r.tools[name]))
	}
	return defs
}

// Dispatch executes one model tool call and returns its result. Unknown
// names yield ErrUnknownTool; bad arguments yield ErrInvalidToolArgs.
func (r *Registry) Dispatch(ctx context.Context, call llm.ToolCall) (llm.ToolResult, error) {
	t, err := r.Get(call.Name)
	if err != nil {
		return llm.ToolResult{}, err
	}

	content, err := t.Execute(ctx, call.Arguments)
	if err != nil {
		return llm.ToolResult{}, err
	}
	return llm.NewToolResult(call, content), nil
}
