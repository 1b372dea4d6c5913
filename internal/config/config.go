package config

import (
	"github.com/zero-day-ai/graphchat/internal/agent"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/observability"
)

// Config is the root configuration for graphchat.
type Config struct {
	Graph   graph.GraphClientConfig     `mapstructure:"graph" yaml:"graph"`
	LLM     llm.ProviderConfig          `mapstructure:"llm" yaml:"llm"`
	Schema  SchemaConfig                `mapstructure:"schema" yaml:"schema"`
	Agent   agent.Config                `mapstructure:"agent" yaml:"agent"`
	MCP     MCPConfig                   `mapstructure:"mcp" yaml:"mcp"`
	Logging observability.LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing observability.TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics observability.MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SchemaConfig controls schema discovery.
type SchemaConfig struct {
	// SampleLimit caps the nodes or relationships sampled per label or type.
	SampleLimit int `mapstructure:"sample_limit" yaml:"sample_limit" validate:"min=1"`

	// ConflictPolicy is first_seen or widen.
	ConflictPolicy string `mapstructure:"conflict_policy" yaml:"conflict_policy" validate:"omitempty,oneof=first_seen widen"`

	// ProbeStrategy is cartesian or pattern.
	ProbeStrategy string `mapstructure:"probe_strategy" yaml:"probe_strategy" validate:"omitempty,oneof=cartesian pattern"`
}

// MCPConfig controls the MCP server started by `graphchat mcp`.
type MCPConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport" validate:"oneof=stdio http"`
	Address   string `mapstructure:"address" yaml:"address"`
}
