// Package tool holds the tool table the conversational agent dispatches
// model tool calls through.
//
// A Registry maps declared names to Tool implementations. Dispatch returns
// errors matching ErrUnknownTool for undeclared names and ErrInvalidToolArgs
// for arguments that do not decode; both are contract violations and are
// not retried.
//
// CypherQueryTool (run_cypher_query) is the only tool offered to the model
// in a chat session. DescribeSchemaTool (describe_schema) is additionally
// exposed by the MCP server.
package tool
