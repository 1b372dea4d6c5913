package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Sentinel texts returned to the model in place of rows.
const (
	FailedSentinel = `{"error": "Query failed please try a different variation of this query"}`
	EmptySentinel  = `{"error": "The query did not return any data, please make sure you're using the right edge directions and you're following the correct graph schema"}`
)

// Text renders the outcome as tool output: a sentinel for failed and empty
// outcomes, otherwise one JSON object per row with keys sorted.
func (o Outcome) Text() string {
	switch o.Kind {
	case OutcomeFailed:
		return FailedSentinel
	case OutcomeEmpty:
		return EmptySentinel
	}

	var b strings.Builder
	for i, record := range o.Records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRecord(record))
	}
	return b.String()
}

func renderRecord(record map[string]any) string {
	row := make(map[string]any, len(record))
	for k, v := range record {
		row[k] = toJSONValue(v)
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Sprintf("%v", record)
	}
	return string(data)
}

// toJSONValue converts driver-native values into plain JSON friendly values.
func toJSONValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int64, int:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Sprintf("%v", val)
		}
		return val
	case dbtype.Node:
		return nodeValue(val)
	case *dbtype.Node:
		return nodeValue(*val)
	case dbtype.Relationship:
		return relationshipValue(val)
	case *dbtype.Relationship:
		return relationshipValue(*val)
	case dbtype.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, nodeValue(n))
		}
		rels := make([]any, 0, len(val.Relationships))
		for _, r := range val.Relationships {
			rels = append(rels, relationshipValue(r))
		}
		return map[string]any{"nodes": nodes, "relationships": rels}
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toJSONValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toJSONValue(item)
		}
		return out
	case fmt.Stringer:
		// dbtype temporal, duration and point values
		return val.String()
	default:
		return val
	}
}

func nodeValue(n dbtype.Node) map[string]any {
	labels := n.Labels
	if labels == nil {
		labels = []string{}
	}
	return map[string]any{
		"labels":     labels,
		"properties": toJSONValue(propsOrEmpty(n.Props)),
	}
}

func relationshipValue(r dbtype.Relationship) map[string]any {
	return map[string]any{
		"type":       r.Type,
		"properties": toJSONValue(propsOrEmpty(r.Props)),
	}
}

func propsOrEmpty(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return props
}
