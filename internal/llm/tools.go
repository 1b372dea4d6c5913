package llm

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolDef defines a tool that an LLM can call during completion.
type ToolDef struct {
	// Name is the unique identifier for this tool
	Name string `json:"name"`

	// Description explains what the tool does and when to use it
	Description string `json:"description"`

	// Parameters is the JSON schema of the tool's input object
	Parameters *jsonschema.Schema `json:"parameters"`
}

// NewToolDef creates a tool definition. A nil or untyped parameter schema is
// treated as an object schema.
func NewToolDef(name, description string, params *jsonschema.Schema) ToolDef {
	if params == nil {
		params = &jsonschema.Schema{}
	}
	if params.Type == "" {
		params.Type = "object"
	}

	return ToolDef{
		Name:        name,
		Description: description,
		Parameters:  params,
	}
}

// Validate checks if the tool definition is valid
func (t ToolDef) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}

	if t.Description == "" {
		return fmt.Errorf("tool description is required")
	}

	if t.Parameters != nil && t.Parameters.Type != "" && t.Parameters.Type != "object" {
		return fmt.Errorf("tool parameters must be an object schema, got %s", t.Parameters.Type)
	}

	return nil
}

// ParametersMap returns the parameter schema as a generic JSON object, the
// form most provider SDKs accept.
func (t ToolDef) ParametersMap() (map[string]any, error) {
	if t.Parameters == nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}, nil
	}

	data, err := json.Marshal(t.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters of tool %s: %w", t.Name, err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode parameters of tool %s: %w", t.Name, err)
	}
	return out, nil
}

// ToolCall represents a tool call made by the LLM during completion.
type ToolCall struct {
	// ID is a unique identifier for this tool call
	ID string `json:"id"`

	// Type indicates the type of tool call (typically "function")
	Type string `json:"type"`

	// Name is the name of the tool to call
	Name string `json:"name"`

	// Arguments contains the JSON-encoded arguments for the tool
	Arguments string `json:"arguments"`
}

// ParseArguments deserializes the tool call arguments into v.
//
// Example:
//
//	var args struct {
//	    Query string `json:"query"`
//	}
//	if err := call.ParseArguments(&args); err != nil {
//	    return err
//	}
func (t ToolCall) ParseArguments(v any) error {
	if t.Arguments == "" {
		return fmt.Errorf("tool call arguments are empty")
	}

	if err := json.Unmarshal([]byte(t.Arguments), v); err != nil {
		return fmt.Errorf("failed to parse tool call arguments: %w", err)
	}

	return nil
}

// Validate checks if the tool call is valid
func (t ToolCall) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tool call ID is required")
	}

	if t.Name == "" {
		return fmt.Errorf("tool call name is required")
	}

	if t.Arguments == "" {
		return fmt.Errorf("tool call arguments are required")
	}

	var tmp any
	if err := json.Unmarshal([]byte(t.Arguments), &tmp); err != nil {
		return fmt.Errorf("tool call arguments must be valid JSON: %w", err)
	}

	return nil
}

// ToolResult is the outcome of executing one tool call, fed back to the LLM
// as a tool message.
type ToolResult struct {
	// ToolCallID is the ID of the tool call this result corresponds to
	ToolCallID string `json:"tool_call_id"`

	// Name is the tool that produced the result
	Name string `json:"name"`

	// Content is the result content to return to the LLM
	Content string `json:"content"`

	// IsError indicates whether the tool reported a recoverable failure
	IsError bool `json:"is_error,omitempty"`
}

// NewToolResult creates a successful tool result
func NewToolResult(call ToolCall, content string) ToolResult {
	return ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    content,
	}
}

// NewToolError creates an error tool result
func NewToolError(call ToolCall, errorMessage string) ToolResult {
	return ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    errorMessage,
		IsError:    true,
	}
}

// Message converts the result to a tool message for the conversation.
func (r ToolResult) Message() Message {
	return NewToolResultMessage(r.ToolCallID, r.Name, r.Content)
}

// Validate checks if the tool result is valid
func (r ToolResult) Validate() error {
	if r.ToolCallID == "" {
		return fmt.Errorf("tool call ID is required")
	}

	if r.Content == "" {
		return fmt.Errorf("tool result content is required")
	}

	return nil
}
