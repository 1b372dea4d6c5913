package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/zero-day-ai/graphchat/internal/graph"
)

// Kind classifies the outcome of a query.
type Kind int

const (
	// OutcomeRows means the query succeeded with at least one row.
	OutcomeRows Kind = iota
	// OutcomeFailed means the store rejected or failed the query.
	OutcomeFailed
	// OutcomeEmpty means the query succeeded with zero rows.
	OutcomeEmpty
)

// String returns the kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case OutcomeRows:
		return "rows"
	case OutcomeFailed:
		return "failed"
	case OutcomeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of one query execution.
type Outcome struct {
	Kind    Kind
	Query   string
	Columns []string
	Records []map[string]any
	Err     error
	Elapsed time.Duration
}

// ErrBlankQuery is the Outcome.Err of a query with no text. The store is
// not called.
var ErrBlankQuery = errors.New("query is blank")

// Executor runs model supplied Cypher through the store's read-only path.
// Execution errors never escape Execute; they become OutcomeFailed.
type Executor struct {
	client graph.GraphClient
	logger *slog.Logger
}

// NewExecutor creates an Executor. A nil logger uses slog.Default().
func NewExecutor(client graph.GraphClient, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{client: client, logger: logger}
}

// Execute runs cypher in a read transaction and classifies the result.
func (e *Executor) Execute(ctx context.Context, cypher string) Outcome {
	if strings.TrimSpace(cypher) == "" {
		e.logger.DebugContext(ctx, "query failed", "error", ErrBlankQuery)
		return Outcome{Kind: OutcomeFailed, Query: cypher, Err: ErrBlankQuery}
	}

	start := time.Now()
	result, err := e.client.ReadQuery(ctx, cypher, nil)
	elapsed := time.Since(start)

	if err != nil {
		e.logger.DebugContext(ctx, "query failed", "query", cypher, "error", err, "elapsed", elapsed)
		return Outcome{Kind: OutcomeFailed, Query: cypher, Err: err, Elapsed: elapsed}
	}

	if result.Empty() {
		return Outcome{Kind: OutcomeEmpty, Query: cypher, Columns: result.Columns, Elapsed: elapsed}
	}

	return Outcome{
		Kind:    OutcomeRows,
		Query:   cypher,
		Columns: result.Columns,
		Records: result.Records,
		Elapsed: elapsed,
	}
}
