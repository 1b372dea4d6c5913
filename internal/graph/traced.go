package graph

import (
	"context"

	"github.com/zero-day-ai/graphchat/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names emitted by TracedClient.
const (
	SpanGraphQuery      = "graphchat.graph.query"
	SpanGraphReadQuery  = "graphchat.graph.read_query"
	SpanGraphLabels     = "graphchat.graph.labels"
	SpanGraphRelTypes   = "graphchat.graph.relationship_types"
	SpanGraphConnect    = "graphchat.graph.connect"
	attrDBSystem        = "db.system"
	attrDBStatement     = "db.statement"
	attrGraphRowCount   = "graphchat.graph.rows"
	attrGraphValueCount = "graphchat.graph.values"
)

// TracedClient wraps a GraphClient and records an OpenTelemetry span for
// every store round trip.
type TracedClient struct {
	inner  GraphClient
	tracer trace.Tracer
}

// NewTracedClient wraps inner with tracing.
func NewTracedClient(inner GraphClient, tracer trace.Tracer) *TracedClient {
	return &TracedClient{inner: inner, tracer: tracer}
}

func (c *TracedClient) Connect(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, SpanGraphConnect)
	defer span.End()

	err := c.inner.Connect(ctx)
	endSpan(span, err)
	return err
}

func (c *TracedClient) Close(ctx context.Context) error {
	return c.inner.Close(ctx)
}

func (c *TracedClient) Health(ctx context.Context) types.HealthStatus {
	return c.inner.Health(ctx)
}

func (c *TracedClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	ctx, span := c.tracer.Start(ctx, SpanGraphQuery, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String(attrDBSystem, "neo4j"),
		attribute.String(attrDBStatement, cypher),
	)

	result, err := c.inner.Query(ctx, cypher, params)
	span.SetAttributes(attribute.Int(attrGraphRowCount, len(result.Records)))
	endSpan(span, err)
	return result, err
}

func (c *TracedClient) ReadQuery(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	ctx, span := c.tracer.Start(ctx, SpanGraphReadQuery, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String(attrDBSystem, "neo4j"),
		attribute.String(attrDBStatement, cypher),
	)

	result, err := c.inner.ReadQuery(ctx, cypher, params)
	span.SetAttributes(attribute.Int(attrGraphRowCount, len(result.Records)))
	endSpan(span, err)
	return result, err
}

func (c *TracedClient) Labels(ctx context.Context) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, SpanGraphLabels)
	defer span.End()

	labels, err := c.inner.Labels(ctx)
	span.SetAttributes(attribute.Int(attrGraphValueCount, len(labels)))
	endSpan(span, err)
	return labels, err
}

func (c *TracedClient) RelationshipTypes(ctx context.Context) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, SpanGraphRelTypes)
	defer span.End()

	relTypes, err := c.inner.RelationshipTypes(ctx)
	span.SetAttributes(attribute.Int(attrGraphValueCount, len(relTypes)))
	endSpan(span, err)
	return relTypes, err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

var _ GraphClient = (*TracedClient)(nil)
var _ GraphClient = (*Neo4jClient)(nil)
var _ GraphClient = (*MockGraphClient)(nil)
