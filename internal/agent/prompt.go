package agent

import "strings"

const (
	defaultRole = "You are a Cypher expert with access to a directed knowledge graph\n"

	defaultDirective = "Query the knowledge graph to extract relevant information to help you answer the users questions, " +
		"base your answer only on the context retrieved from the knowledge graph, do not use preexisting knowledge.\n"

	defaultExample = "For example to find out if two fighters had fought each other e.g. did Conor McGregor ever compete against Jose Aldo " +
		"issue the following query: MATCH (a:Fighter)-[]->(f:Fight)<-[]-(b:Fighter) " +
		"WHERE a.Name = 'Conor McGregor' AND b.Name = 'Jose Aldo' RETURN a, b\n"

	// DefaultInputPrompt is shown before each question in interactive mode.
	DefaultInputPrompt = "How can I help you?"
)

// Prompt holds the fixed pieces of the session system message. Empty
// fields fall back to the defaults.
type Prompt struct {
	Role      string `mapstructure:"role" yaml:"role"`
	Directive string `mapstructure:"directive" yaml:"directive"`
	Example   string `mapstructure:"example" yaml:"example"`
}

// DefaultPrompt returns the built-in role, directive and worked example.
func DefaultPrompt() Prompt {
	return Prompt{
		Role:      defaultRole,
		Directive: defaultDirective,
		Example:   defaultExample,
	}
}

// WithDefaults fills empty fields from DefaultPrompt.
func (p Prompt) WithDefaults() Prompt {
	def := DefaultPrompt()
	if strings.TrimSpace(p.Role) == "" {
		p.Role = def.Role
	}
	if strings.TrimSpace(p.Directive) == "" {
		p.Directive = def.Directive
	}
	if strings.TrimSpace(p.Example) == "" {
		p.Example = def.Example
	}
	return p
}

// Compose builds the system message: role, compiled schema, data fidelity
// directive and worked example, in that order. Each piece is terminated by a
// newline.
func (p Prompt) Compose(schemaText string) string {
	p = p.WithDefaults()

	var b strings.Builder
	for _, piece := range []string{p.Role, schemaText, p.Directive, p.Example} {
		if piece == "" {
			continue
		}
		b.WriteString(piece)
		if !strings.HasSuffix(piece, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
