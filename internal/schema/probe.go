package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// ConnectionProber finds which ordered label pairs a relationship type
// connects. Returned connections are ordered by the position of source and
// then destination in labels.
type ConnectionProber interface {
	Name() string
	Probe(ctx context.Context, client graph.GraphClient, relType string, labels []string) ([]Connection, error)
}

// Prober names accepted by ProberByName.
const (
	ProbeCartesian = "cartesian"
	ProbePattern   = "pattern"
)

// CartesianProber issues one existence query per ordered label pair,
// including each label paired with itself. It costs labels² queries per
// relationship type.
type CartesianProber struct{}

func (CartesianProber) Name() string { return ProbeCartesian }

func (CartesianProber) Probe(ctx context.Context, client graph.GraphClient, relType string, labels []string) ([]Connection, error) {
	var conns []Connection
	for _, src := range labels {
		for _, dst := range labels {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			result, err := client.ReadQuery(ctx, existenceQuery(src, relType, dst), nil)
			if err != nil {
				return nil, fmt.Errorf("probe %s-[%s]->%s: %w", src, relType, dst, err)
			}
			if !result.Empty() {
				conns = append(conns, Connection{Source: src, Destination: dst})
			}
		}
	}
	return conns, nil
}

// PatternProber issues a single aggregate query per relationship type and
// keeps the label pairs that are among labels.
type PatternProber struct{}

func (PatternProber) Name() string { return ProbePattern }

func (PatternProber) Probe(ctx context.Context, client graph.GraphClient, relType string, labels []string) ([]Connection, error) {
	result, err := client.ReadQuery(ctx, endpointLabelsQuery(relType), nil)
	if err != nil {
		return nil, fmt.Errorf("probe endpoints of %s: %w", relType, err)
	}

	seen := make(map[Connection]struct{})
	for i, record := range result.Records {
		srcLabels, err := stringList(record["src"])
		if err != nil {
			return nil, types.WrapError(graph.ErrCodeGraphResultParsing, fmt.Sprintf("row %d: src", i), err)
		}
		dstLabels, err := stringList(record["dst"])
		if err != nil {
			return nil, types.WrapError(graph.ErrCodeGraphResultParsing, fmt.Sprintf("row %d: dst", i), err)
		}
		for _, s := range srcLabels {
			for _, d := range dstLabels {
				seen[Connection{Source: s, Destination: d}] = struct{}{}
			}
		}
	}

	var conns []Connection
	for _, src := range labels {
		for _, dst := range labels {
			c := Connection{Source: src, Destination: dst}
			if _, ok := seen[c]; ok {
				conns = append(conns, c)
			}
		}
	}
	return conns, nil
}

// ProberByName resolves a configured strategy name. Empty selects cartesian.
func ProberByName(name string) (ConnectionProber, error) {
	switch name {
	case "", ProbeCartesian:
		return CartesianProber{}, nil
	case ProbePattern:
		return PatternProber{}, nil
	default:
		return nil, types.NewError(ErrCodeInvalidConfig,
			fmt.Sprintf("unknown probe strategy %q, must be one of: %s, %s", name, ProbeCartesian, ProbePattern))
	}
}

// QuoteIdentifier backtick-quotes a label or relationship type for Cypher.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func nodeSampleQuery(label string) string {
	return fmt.Sprintf("MATCH (n:%s) RETURN n LIMIT $limit", QuoteIdentifier(label))
}

func relationshipSampleQuery(relType string) string {
	return fmt.Sprintf("MATCH ()-[e:%s]->() RETURN e LIMIT $limit", QuoteIdentifier(relType))
}

func existenceQuery(src, relType, dst string) string {
	return fmt.Sprintf("MATCH (:%s)-[:%s]->(:%s) RETURN 1 LIMIT 1",
		QuoteIdentifier(src), QuoteIdentifier(relType), QuoteIdentifier(dst))
}

func endpointLabelsQuery(relType string) string {
	return fmt.Sprintf("MATCH (a)-[:%s]->(b) RETURN DISTINCT labels(a) AS src, labels(b) AS dst",
		QuoteIdentifier(relType))
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string label, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected label list, got %T", v)
	}
}
