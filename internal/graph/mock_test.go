package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGraphClient_BoundQueriesTakePrecedence(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()

	bound := QueryResult{Columns: []string{"x"}, Records: []map[string]any{{"x": int64(1)}}}
	queued := QueryResult{Columns: []string{"y"}, Records: []map[string]any{{"y": int64(2)}}}
	mock.OnQuery("RETURN 1 AS x", bound)
	mock.AddQueryResult(queued)

	got, err := mock.ReadQuery(ctx, "RETURN 1 AS x", nil)
	require.NoError(t, err)
	assert.Equal(t, bound, got)

	got, err = mock.ReadQuery(ctx, "RETURN 2 AS y", nil)
	require.NoError(t, err)
	assert.Equal(t, queued, got)

	got, err = mock.ReadQuery(ctx, "RETURN 3", nil)
	require.NoError(t, err)
	assert.True(t, got.Empty())

	assert.Len(t, mock.GetCallsByMethod("ReadQuery"), 3)
	assert.Empty(t, mock.GetCallsByMethod("Query"))
}

func TestMockGraphClient_Errors(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()
	boom := errors.New("boom")

	mock.OnQueryError("MATCH (n) RETURN n", boom)
	_, err := mock.ReadQuery(ctx, "MATCH (n) RETURN n", nil)
	assert.ErrorIs(t, err, boom)

	mock.SetLabelsError(boom)
	_, err = mock.Labels(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestMockGraphClient_ClosedClientRejectsQueries(t *testing.T) {
	mock := NewMockGraphClient()
	ctx := context.Background()

	require.NoError(t, mock.Close(ctx))
	assert.False(t, mock.IsConnected())

	_, err := mock.Query(ctx, "RETURN 1", nil)
	assert.Error(t, err)
	assert.False(t, mock.Health(ctx).IsHealthy())
}

func TestMockGraphClient_Introspection(t *testing.T) {
	mock := NewMockGraphClient()
	mock.SetLabels("Fighter", "Fight")
	mock.SetRelationshipTypes("FOUGHT", "WON")

	labels, err := mock.Labels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fighter", "Fight"}, labels)

	relTypes, err := mock.RelationshipTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"FOUGHT", "WON"}, relTypes)
}
