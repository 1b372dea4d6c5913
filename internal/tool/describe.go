package tool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	DescribeSchemaToolName        = "describe_schema"
	describeSchemaToolDescription = "Describes the node types, edge types and attributes of the knowledge graph."
)

// DescribeSchemaTool returns the compiled schema description. It takes no
// arguments.
type DescribeSchemaTool struct {
	description string
}

// NewDescribeSchemaTool creates the tool around a rendered schema.
func NewDescribeSchemaTool(rendered string) *DescribeSchemaTool {
	return &DescribeSchemaTool{description: rendered}
}

func (t *DescribeSchemaTool) Name() string { return DescribeSchemaToolName }

func (t *DescribeSchemaTool) Description() string { return describeSchemaToolDescription }

func (t *DescribeSchemaTool) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
}

// Execute ignores well-formed arguments and returns the schema text.
func (t *DescribeSchemaTool) Execute(ctx context.Context, arguments string) (string, error) {
	if strings.TrimSpace(arguments) != "" {
		var ignored map[string]any
		if err := parseJSONArgs(arguments, &ignored); err != nil {
			return "", err
		}
	}
	return t.description, nil
}

func decodeStrict(arguments string, v any) error {
	dec := json.NewDecoder(strings.NewReader(arguments))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}
