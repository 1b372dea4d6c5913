// Package mcpserver exposes the graphchat tool table over the Model Context
// Protocol, so external agents can query the knowledge graph with the same
// executor and schema description the chat loop uses.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/tool"
	"github.com/zero-day-ai/graphchat/internal/types"
	"github.com/zero-day-ai/graphchat/pkg/version"
)

const (
	ErrCodeServerInvalidConfig types.ErrorCode = "MCP_INVALID_CONFIG"
	ErrCodeServerFailed        types.ErrorCode = "MCP_SERVER_FAILED"

	implementationName = "graphchat"
)

// Server serves every tool in a registry as an MCP tool.
type Server struct {
	mcp      *mcp.Server
	registry *tool.Registry
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a server from registry. Tools registered later are not served.
func New(registry *tool.Registry, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, types.NewError(ErrCodeServerInvalidConfig, "tool registry is required")
	}

	s := &Server{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    implementationName,
		Version: version.Version,
	}, nil)

	for _, name := range registry.Names() {
		t, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Parameters(),
		}, s.handler(t.Name()))
	}

	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves a single session over transport until the client disconnects
// or ctx is done.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("mcp server starting", "tools", s.registry.Names())
	if err := s.mcp.Run(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return types.WrapError(ErrCodeServerFailed, "mcp session failed", err)
	}
	return nil
}

// HTTPHandler serves the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// handler routes a call through the registry. Argument errors are returned
// to the client as tool errors; the session stays up.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments := "{}"
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			arguments = string(req.Params.Arguments)
		}

		start := time.Now()
		result, err := s.registry.Dispatch(ctx, llm.ToolCall{
			ID:        "mcp",
			Type:      "function",
			Name:      name,
			Arguments: arguments,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "mcp tool call rejected", "tool", name, "error", err)
			return toolError(err.Error()), nil
		}

		s.logger.DebugContext(ctx, "mcp tool call", "tool", name, "elapsed", time.Since(start))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result.Content}},
		}, nil
	}
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
