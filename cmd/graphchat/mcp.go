package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/internal/mcpserver"
	"golang.org/x/sync/errgroup"
)

func newMCPCmd(a *app) *cobra.Command {
	var (
		transport string
		address   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the graph query tools over the Model Context Protocol",
		Long: `Discover the graph schema, then serve run_cypher_query and
describe_schema to MCP clients.

The stdio transport serves one client on stdin/stdout. The http transport
serves the streamable HTTP transport on --address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("transport") {
				a.cfg.MCP.Transport = transport
			}
			if cmd.Flags().Changed("address") {
				a.cfg.MCP.Address = address
			}

			ctx := cmd.Context()
			rt, err := a.start(ctx, cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			registry, err := rt.tools(true)
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(registry, mcpserver.WithLogger(rt.logger))
			if err != nil {
				return err
			}

			switch a.cfg.MCP.Transport {
			case "stdio":
				return srv.Run(ctx, &mcp.StdioTransport{})
			case "http":
				return serveHTTP(ctx, a.cfg.MCP.Address, srv.HTTPHandler(), rt)
			default:
				return fmt.Errorf("unsupported transport %q (must be one of: stdio, http)", a.cfg.MCP.Transport)
			}
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "MCP transport (stdio|http)")
	cmd.Flags().StringVar(&address, "address", "", "Listen address for the http transport")
	return cmd
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, rt *runtime) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Info("mcp server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
