package graph

import (
	"context"
	"time"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// GraphClient provides the graph store operations graphchat depends on.
// Implementations must be safe for concurrent use.
type GraphClient interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources held by the client.
	Close(ctx context.Context) error

	// Health returns the current health status of the connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a Cypher statement in a write-capable transaction.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// ReadQuery executes a Cypher statement in a read-only transaction.
	// The store rejects statements that attempt to modify data.
	ReadQuery(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Labels lists every node label known to the store.
	Labels(ctx context.Context) ([]string, error)

	// RelationshipTypes lists every relationship type known to the store.
	RelationshipTypes(ctx context.Context) ([]string, error)
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	// Values are driver-native (dbtype.Node, dbtype.Relationship, int64, ...).
	Records []map[string]any

	// Columns contains the result columns in projection order.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// Empty reports whether the result has no rows.
func (r QueryResult) Empty() bool {
	return len(r.Records) == 0
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	// ExecutionTime is the duration of query execution.
	ExecutionTime time.Duration

	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// GraphClientConfig contains configuration options for graph database clients.
type GraphClientConfig struct {
	// URI is the connection URI for the graph database.
	// Encryption is selected by scheme:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "bolt+ssc://host:port" for TLS with self-signed certificates
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string `mapstructure:"uri" yaml:"uri" validate:"required"`

	// Username and Password select basic auth. An empty Username connects
	// without authentication.
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`

	// Database name to connect to. Empty uses the server default.
	Database string `mapstructure:"database" yaml:"database"`

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size"`

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`

	// MaxTransactionRetryTime is the maximum time to retry failed transactions.
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time"`
}

// DefaultConfig returns a GraphClientConfig for a local Neo4j instance.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   10,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
