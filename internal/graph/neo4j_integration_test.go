//go:build integration

package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testNeo4jPassword = "graphchat-test"

// startNeo4jContainer starts a throwaway Neo4j server and returns a client
// config pointing at it.
func startNeo4jContainer(t *testing.T, ctx context.Context) (testcontainers.Container, GraphClientConfig) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + testNeo4jPassword,
		},
		WaitingFor: wait.ForLog("Started.").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.URI = fmt.Sprintf("bolt://%s:%s", host, port.Port())
	cfg.Password = testNeo4jPassword
	return container, cfg
}

func TestIntegration_Neo4jClient(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, cfg := startNeo4jContainer(t, ctx)
	defer container.Terminate(ctx)

	client, err := NewNeo4jClient(cfg)
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	assert.True(t, client.Health(ctx).IsHealthy())

	seed, err := client.Query(ctx, `
		CREATE (a:Fighter {Name: 'Conor McGregor'})-[:FOUGHT]->(f:Fight {Date: '2015-12-12'}),
		       (b:Fighter {Name: 'Jose Aldo'})-[:FOUGHT]->(f),
		       (a)-[:WON]->(f)
	`, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, seed.Summary.NodesCreated)

	labels, err := client.Labels(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Fighter", "Fight"}, labels)

	relTypes, err := client.RelationshipTypes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"FOUGHT", "WON"}, relTypes)

	result, err := client.ReadQuery(ctx,
		"MATCH (a:Fighter)-[]->(f:Fight)<-[]-(b:Fighter) WHERE a.Name = $a AND b.Name = $b RETURN DISTINCT f.Date AS date",
		map[string]any{"a": "Conor McGregor", "b": "Jose Aldo"})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "2015-12-12", result.Records[0]["date"])

	_, err = client.ReadQuery(ctx, "CREATE (:Fighter {Name: 'intruder'})", nil)
	assert.Error(t, err, "read-only path must reject writes")
}
