// Package agent implements the conversational loop that answers questions
// over a knowledge graph.
//
// A session starts with a system message composed from a fixed role
// statement, the compiled graph schema, a directive to answer only from
// retrieved data, and a worked example query. Each user turn then moves
// through the states
//
//	AwaitingUserInput → Reasoning → (ToolDispatch → ToolObserved → Reasoning)? → Answered
//
// The first reasoning call offers the registered tools. If the engine asks
// for tool calls they are dispatched in order and their results appended,
// then a second reasoning call is made with no tools, so a turn has at most
// one round of tool use. History is append-only.
//
// Tool calls naming an unregistered tool, or carrying arguments that do not
// parse, are contract violations and end the session.
package agent
