package query

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/graph"
)

const fightQuery = "MATCH (a:Fighter)-[]->(f:Fight)<-[]-(b:Fighter) WHERE a.Name = 'Conor McGregor' AND b.Name = 'Jose Aldo' RETURN a, b"

func TestExecutor_Rows(t *testing.T) {
	client := graph.NewMockGraphClient()
	client.OnQuery(fightQuery, graph.QueryResult{
		Columns: []string{"a", "b"},
		Records: []map[string]any{{
			"a": dbtype.Node{Labels: []string{"Fighter"}, Props: map[string]any{"Name": "Conor McGregor"}},
			"b": dbtype.Node{Labels: []string{"Fighter"}, Props: map[string]any{"Name": "Jose Aldo"}},
		}},
	})

	out := NewExecutor(client, nil).Execute(context.Background(), fightQuery)

	assert.Equal(t, OutcomeRows, out.Kind)
	assert.Equal(t, fightQuery, out.Query)
	assert.Equal(t, []string{"a", "b"}, out.Columns)
	assert.Len(t, out.Records, 1)
	assert.NoError(t, out.Err)
	assert.Equal(t,
		`{"a":{"labels":["Fighter"],"properties":{"Name":"Conor McGregor"}},"b":{"labels":["Fighter"],"properties":{"Name":"Jose Aldo"}}}`,
		out.Text())
}

func TestExecutor_Empty(t *testing.T) {
	client := graph.NewMockGraphClient()

	out := NewExecutor(client, nil).Execute(context.Background(), fightQuery)

	assert.Equal(t, OutcomeEmpty, out.Kind)
	assert.Equal(t, EmptySentinel, out.Text())
}

func TestExecutor_Failed(t *testing.T) {
	client := graph.NewMockGraphClient()
	boom := errors.New("Invalid input 'RETRUN'")
	client.OnQueryError("MATCH (n) RETRUN n", boom)

	out := NewExecutor(client, nil).Execute(context.Background(), "MATCH (n) RETRUN n")

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, FailedSentinel, out.Text())
}

func TestExecutor_BlankQueryFailsWithoutStore(t *testing.T) {
	client := graph.NewMockGraphClient()
	exec := NewExecutor(client, nil)

	for _, cypher := range []string{"", "   ", "\n\t"} {
		out := exec.Execute(context.Background(), cypher)
		assert.Equal(t, OutcomeFailed, out.Kind)
		assert.ErrorIs(t, out.Err, ErrBlankQuery)
		assert.Equal(t, FailedSentinel, out.Text())
	}

	assert.Empty(t, client.GetCallsByMethod("ReadQuery"))
}

func TestExecutor_UsesReadPath(t *testing.T) {
	client := graph.NewMockGraphClient()

	NewExecutor(client, nil).Execute(context.Background(), "CREATE (n:Fighter)")

	assert.Len(t, client.GetCallsByMethod("ReadQuery"), 1)
	assert.Empty(t, client.GetCallsByMethod("Query"))
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotEqual(t, FailedSentinel, EmptySentinel)
	assert.Contains(t, FailedSentinel, "Query failed")
	assert.Contains(t, EmptySentinel, "did not return any data")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "rows", OutcomeRows.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestOutcome_TextMultipleRows(t *testing.T) {
	out := Outcome{
		Kind: OutcomeRows,
		Records: []map[string]any{
			{"name": "Conor McGregor", "wins": int64(22)},
			{"name": "Jose Aldo", "wins": int64(31)},
		},
	}

	require.Equal(t,
		`{"name":"Conor McGregor","wins":22}`+"\n"+`{"name":"Jose Aldo","wins":31}`,
		out.Text())
}
