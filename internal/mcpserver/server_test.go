package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/query"
	"github.com/zero-day-ai/graphchat/internal/tool"
	"github.com/zero-day-ai/graphchat/internal/types"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const schemaText = "The Knowledge graph contains nodes of the following types:\nThe Fighter node type has no attributes:\n"

func connect(t *testing.T, client *graph.MockGraphClient) *mcp.ClientSession {
	t.Helper()

	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(tool.NewCypherQueryTool(query.NewExecutor(client, nil))))
	require.NoError(t, registry.Register(tool.NewDescribeSchemaTool(schemaText)))

	srv, err := New(registry)
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := srv.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	session, err := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil).Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text, result.IsError
}

func TestNew_RequiresRegistry(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrCodeServerInvalidConfig, types.CodeOf(err))
}

func TestServer_ListTools(t *testing.T) {
	session := connect(t, graph.NewMockGraphClient())

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tl := range res.Tools {
		names = append(names, tl.Name)
	}
	assert.ElementsMatch(t, []string{tool.CypherQueryToolName, tool.DescribeSchemaToolName}, names)
}

func TestServer_RunCypherQuery(t *testing.T) {
	client := graph.NewMockGraphClient()
	client.OnQuery("MATCH (f:Fighter) RETURN f.Name AS name", graph.QueryResult{
		Columns: []string{"name"},
		Records: []map[string]any{{"name": "Jose Aldo"}},
	})
	client.OnQueryError("MATCH (", types.NewError(graph.ErrCodeGraphQueryFailed, "syntax error"))
	session := connect(t, client)

	text, isErr := callText(t, session, tool.CypherQueryToolName, map[string]any{"query": "MATCH (f:Fighter) RETURN f.Name AS name"})
	assert.False(t, isErr)
	assert.Equal(t, `{"name":"Jose Aldo"}`, text)

	text, isErr = callText(t, session, tool.CypherQueryToolName, map[string]any{"query": "MATCH (n:Referee) RETURN n"})
	assert.False(t, isErr)
	assert.Equal(t, query.EmptySentinel, text)

	text, isErr = callText(t, session, tool.CypherQueryToolName, map[string]any{"query": "MATCH ("})
	assert.False(t, isErr)
	assert.Equal(t, query.FailedSentinel, text)
}

func TestServer_InvalidArgumentsAreToolErrors(t *testing.T) {
	session := connect(t, graph.NewMockGraphClient())

	text, isErr := callText(t, session, tool.CypherQueryToolName, map[string]any{"query": 42})
	assert.True(t, isErr)
	assert.Contains(t, text, string(tool.ErrCodeToolInvalidArgs))
}

func TestServer_BlankQueryIsFailedSentinel(t *testing.T) {
	client := graph.NewMockGraphClient()
	session := connect(t, client)

	text, isErr := callText(t, session, tool.CypherQueryToolName, map[string]any{"query": "  "})
	assert.False(t, isErr)
	assert.Equal(t, query.FailedSentinel, text)
	assert.Empty(t, client.GetCallsByMethod("ReadQuery"))
}

func TestServer_DescribeSchema(t *testing.T) {
	session := connect(t, graph.NewMockGraphClient())

	text, isErr := callText(t, session, tool.DescribeSchemaToolName, map[string]any{})
	assert.False(t, isErr)
	assert.Equal(t, schemaText, text)
}
