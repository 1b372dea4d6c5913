package graph

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/zero-day-ai/graphchat/internal/types"
)

const (
	labelsProcedure            = "CALL db.labels()"
	relationshipTypesProcedure = "CALL db.relationshipTypes()"
)

// Neo4jClient implements GraphClient over the Bolt protocol. It works with
// Neo4j and with Bolt-compatible stores such as FalkorDB.
type Neo4jClient struct {
	config GraphClientConfig
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect establishes a connection to the database, retrying with
// exponential backoff until connectivity is verified.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.NoAuth()
	if c.config.Username != "" {
		auth = neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	}

	driverConfig := func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
	}

	var lastErr error
	maxRetries := 5
	baseDelay := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, driverConfig)
		if err == nil {
			err = driver.VerifyConnectivity(ctx)
			if err == nil {
				c.driver = driver
				return nil
			}
			_ = driver.Close(ctx)
		}

		lastErr = err

		if ctx.Err() != nil {
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}

		delay := baseDelay * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.config.ConnectionTimeout {
			delay = c.config.ConnectionTimeout
		}

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
	}

	return types.WrapError(ErrCodeGraphConnectionFailed,
		fmt.Sprintf("failed to connect to %s after %d attempts", c.config.URI, maxRetries), lastErr)
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}

	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed,
			"failed to close driver", err)
	}

	c.driver = nil
	return nil
}

// Health returns the current health status of the connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to " + c.config.URI)
}

// Query executes a Cypher statement in a write transaction.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

// ReadQuery executes a Cypher statement in a read transaction on a session
// opened in read access mode.
func (c *Neo4jClient) ReadQuery(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.run(ctx, neo4j.AccessModeRead, cypher, params)
}

// Labels lists node labels via db.labels().
func (c *Neo4jClient) Labels(ctx context.Context) ([]string, error) {
	result, err := c.ReadQuery(ctx, labelsProcedure, nil)
	if err != nil {
		return nil, types.WrapError(ErrCodeGraphIntrospection, "failed to list labels", err)
	}
	return firstColumnStrings(result)
}

// RelationshipTypes lists relationship types via db.relationshipTypes().
func (c *Neo4jClient) RelationshipTypes(ctx context.Context) ([]string, error) {
	result, err := c.ReadQuery(ctx, relationshipTypesProcedure, nil)
	if err != nil {
		return nil, types.WrapError(ErrCodeGraphIntrospection, "failed to list relationship types", err)
	}
	return firstColumnStrings(result)
}

func (c *Neo4jClient) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed,
			"driver not connected")
	}

	startTime := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		keys, err := neoResult.Keys()
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(keys, records, summary), nil
	}

	var (
		result any
		err    error
	)
	if mode == neo4j.AccessModeRead {
		result, err = session.ExecuteRead(ctx, work)
	} else {
		result, err = session.ExecuteWrite(ctx, work)
	}
	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeGraphQueryFailed,
			"query execution failed", err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// convertNeo4jResult converts Neo4j records and summary to a QueryResult.
func convertNeo4jResult(keys []string, records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: keys,
	}
	if result.Columns == nil {
		result.Columns = []string{}
	}

	for _, record := range records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}

// firstColumnStrings extracts the first projected column of every row as a
// string. Procedure column names differ between stores, so position is used.
func firstColumnStrings(result QueryResult) ([]string, error) {
	if len(result.Columns) == 0 {
		return []string{}, nil
	}

	column := result.Columns[0]
	values := make([]string, 0, len(result.Records))
	for i, record := range result.Records {
		s, ok := record[column].(string)
		if !ok {
			return nil, types.NewError(ErrCodeGraphResultParsing,
				fmt.Sprintf("row %d: expected string in column %q, got %T", i, column, record[column]))
		}
		values = append(values, s)
	}
	return values, nil
}
