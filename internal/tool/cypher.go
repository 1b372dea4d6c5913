package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/zero-day-ai/graphchat/internal/query"
	"github.com/zero-day-ai/graphchat/internal/types"
)

const (
	CypherQueryToolName        = "run_cypher_query"
	cypherQueryToolDescription = "Runs a Cypher query against the knowledge graph."
)

// OutcomeHook observes every executed query.
type OutcomeHook func(ctx context.Context, outcome query.Outcome)

// CypherQueryTool runs a model supplied read-only query and returns rows as
// JSON lines, or a sentinel when the query fails or returns nothing.
type CypherQueryTool struct {
	executor *query.Executor
	logger   *slog.Logger
	hook     OutcomeHook
}

// CypherQueryOption configures a CypherQueryTool.
type CypherQueryOption func(*CypherQueryTool)

// WithLogger sets the logger for sentinel outcomes.
func WithLogger(l *slog.Logger) CypherQueryOption {
	return func(t *CypherQueryTool) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithOutcomeHook registers a callback invoked after each execution.
func WithOutcomeHook(h OutcomeHook) CypherQueryOption {
	return func(t *CypherQueryTool) { t.hook = h }
}

// NewCypherQueryTool creates the query tool over executor.
func NewCypherQueryTool(executor *query.Executor, opts ...CypherQueryOption) *CypherQueryTool {
	t := &CypherQueryTool{executor: executor, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *CypherQueryTool) Name() string { return CypherQueryToolName }

func (t *CypherQueryTool) Description() string { return cypherQueryToolDescription }

func (t *CypherQueryTool) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {Type: "string", Description: "Query to execute"},
		},
		Required: []string{"query"},
	}
}

type cypherQueryArgs struct {
	Query *string `json:"query"`
}

// ParseQuery extracts the query argument. Arguments that are not a JSON
// object, or a query that is not a string, are invalid. A missing or null
// query yields "", which the executor reports as a failed query.
func ParseQuery(arguments string) (string, error) {
	var args cypherQueryArgs
	if err := parseJSONArgs(arguments, &args); err != nil {
		return "", err
	}
	if args.Query == nil {
		return "", nil
	}
	return *args.Query, nil
}

// Execute runs the query. Store failures are not errors; they produce the
// failed sentinel text.
func (t *CypherQueryTool) Execute(ctx context.Context, arguments string) (string, error) {
	cypher, err := ParseQuery(arguments)
	if err != nil {
		return "", err
	}

	t.logger.DebugContext(ctx, "running cypher query", "query", cypher)
	outcome := t.executor.Execute(ctx, cypher)

	if outcome.Kind != query.OutcomeRows {
		t.logger.WarnContext(ctx, "query returned sentinel",
			"outcome", outcome.Kind.String(),
			"query", cypher,
			"error", outcome.Err,
		)
	}
	if t.hook != nil {
		t.hook(ctx, outcome)
	}

	return outcome.Text(), nil
}

func parseJSONArgs(arguments string, v any) error {
	if strings.TrimSpace(arguments) == "" {
		return types.WrapError(ErrCodeToolInvalidArgs, "arguments are empty", ErrInvalidToolArgs)
	}
	if err := decodeStrict(arguments, v); err != nil {
		return types.WrapError(ErrCodeToolInvalidArgs, fmt.Sprintf("malformed arguments: %v", err), ErrInvalidToolArgs)
	}
	return nil
}
