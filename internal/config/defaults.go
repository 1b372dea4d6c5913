package config

import (
	"github.com/zero-day-ai/graphchat/internal/agent"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/observability"
	"github.com/zero-day-ai/graphchat/internal/schema"
)

// DefaultConfig returns a Config for a local Neo4j and OpenAI.
func DefaultConfig() *Config {
	return &Config{
		Graph: graph.DefaultConfig(),
		LLM:   llm.DefaultProviderConfig(),
		Schema: SchemaConfig{
			SampleLimit:    schema.DefaultSampleLimit,
			ConflictPolicy: schema.PolicyFirstSeen,
			ProbeStrategy:  schema.ProbeCartesian,
		},
		Agent: agent.DefaultConfig(),
		MCP: MCPConfig{
			Transport: "stdio",
			Address:   "localhost:8808",
		},
		Logging: observability.DefaultLoggingConfig(),
		Tracing: observability.DefaultTracingConfig(),
		Metrics: observability.DefaultMetricsConfig(),
	}
}
