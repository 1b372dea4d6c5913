// Package graph provides the graph store client used by schema discovery and
// by the query tool.
//
// GraphClient is implemented by:
//
//   - Neo4jClient: Bolt client built on the Neo4j Go driver. It also talks to
//     Bolt-compatible stores such as FalkorDB.
//   - TracedClient: decorator that records an OpenTelemetry span per call.
//   - MockGraphClient: scripted client for unit tests.
//
// # Read-only access
//
// ReadQuery opens the session in read access mode and runs the statement in a
// managed read transaction, so the server rejects writes. Query is the
// write-capable variant and is only used by tooling and integration tests
// that seed data.
//
// # Introspection
//
// Labels and RelationshipTypes call db.labels() and db.relationshipTypes().
// The first projected column is used because procedure column names are not
// the same across stores.
//
// # Errors
//
// Errors are *types.GraphchatError values with GRAPH_* codes:
//
//   - ErrCodeGraphConnectionFailed: connection establishment failed
//   - ErrCodeGraphConnectionClosed: operation on a closed client
//   - ErrCodeGraphQueryFailed: statement execution failed
//   - ErrCodeGraphIntrospection: label or type listing failed
//
// Usage:
//
//	client, err := graph.NewNeo4jClient(graph.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	result, err := client.ReadQuery(ctx,
//	    "MATCH (f:Fighter {Name: $name}) RETURN f",
//	    map[string]any{"name": "Jose Aldo"},
//	)
package graph
