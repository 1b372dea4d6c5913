package tool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/zero-day-ai/graphchat/internal/llm"
)

// Tool is one capability the model may invoke by name.
type Tool interface {
	// Name returns the declared tool name.
	Name() string

	// Description tells the model what the tool does.
	Description() string

	// Parameters returns the JSON schema of the argument object.
	Parameters() *jsonschema.Schema

	// Execute runs the tool with JSON encoded arguments. Errors with code
	// ErrCodeToolInvalidArgs are contract violations; recoverable failures
	// are reported in the returned text instead.
	Execute(ctx context.Context, arguments string) (string, error)
}

// Definition converts a Tool into the declaration sent to the model.
func Definition(t Tool) llm.ToolDef {
	return llm.NewToolDef(t.Name(), t.Description(), t.Parameters())
}
