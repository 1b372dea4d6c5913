package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`Fighter`", QuoteIdentifier("Fighter"))
	assert.Equal(t, "`Weight Class`", QuoteIdentifier("Weight Class"))
	assert.Equal(t, "`odd``name`", QuoteIdentifier("odd`name"))
}

func TestQueries(t *testing.T) {
	assert.Equal(t, "MATCH (n:`Fighter`) RETURN n LIMIT $limit", nodeSampleQuery("Fighter"))
	assert.Equal(t, "MATCH ()-[e:`WON`]->() RETURN e LIMIT $limit", relationshipSampleQuery("WON"))
	assert.Equal(t, "MATCH (:`Fighter`)-[:`WON`]->(:`Fight`) RETURN 1 LIMIT 1", existenceQuery("Fighter", "WON", "Fight"))
	assert.Equal(t, "MATCH (a)-[:`WON`]->(b) RETURN DISTINCT labels(a) AS src, labels(b) AS dst", endpointLabelsQuery("WON"))
}

func TestCartesianProber_IncludesSelfPairs(t *testing.T) {
	client := graph.NewMockGraphClient()
	client.OnQuery(existenceQuery("Person", "KNOWS", "Person"), oneRow())

	conns, err := CartesianProber{}.Probe(context.Background(), client, "KNOWS", []string{"Person", "Team"})
	require.NoError(t, err)
	assert.Equal(t, []Connection{{Source: "Person", Destination: "Person"}}, conns)
	assert.Len(t, client.GetCallsByMethod("ReadQuery"), 4)
}

func TestCartesianProber_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CartesianProber{}.Probe(ctx, graph.NewMockGraphClient(), "R", []string{"A"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatternProber_MultiLabelAndUnknownLabels(t *testing.T) {
	client := graph.NewMockGraphClient()
	client.OnQuery(endpointLabelsQuery("MEMBER_OF"), graph.QueryResult{
		Columns: []string{"src", "dst"},
		Records: []map[string]any{
			{"src": []any{"Person", "Fighter"}, "dst": []any{"Team"}},
			{"src": []string{"Ghost"}, "dst": []string{"Team"}},
		},
	})

	conns, err := PatternProber{}.Probe(context.Background(), client, "MEMBER_OF", []string{"Fighter", "Person", "Team"})
	require.NoError(t, err)
	assert.Equal(t, []Connection{
		{Source: "Fighter", Destination: "Team"},
		{Source: "Person", Destination: "Team"},
	}, conns)
}

func TestPatternProber_BadRow(t *testing.T) {
	client := graph.NewMockGraphClient()
	client.OnQuery(endpointLabelsQuery("R"), graph.QueryResult{
		Columns: []string{"src", "dst"},
		Records: []map[string]any{{"src": "A", "dst": []any{"B"}}},
	})

	_, err := PatternProber{}.Probe(context.Background(), client, "R", []string{"A", "B"})
	require.Error(t, err)
	assert.Equal(t, graph.ErrCodeGraphResultParsing, types.CodeOf(err))
}

func TestProberByName(t *testing.T) {
	p, err := ProberByName("")
	require.NoError(t, err)
	assert.Equal(t, ProbeCartesian, p.Name())

	p, err = ProberByName("pattern")
	require.NoError(t, err)
	assert.Equal(t, ProbePattern, p.Name())

	_, err = ProberByName("random")
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))
}
