package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/cmd/graphchat/internal"
	"github.com/zero-day-ai/graphchat/internal/types"
)

const statusCheckTimeout = 10 * time.Second

// SystemStatus is the health of the services graphchat depends on.
type SystemStatus struct {
	OverallHealth types.HealthStatus `json:"overall_health"`
	Graph         GraphStatus        `json:"graph"`
	LLM           LLMProviderStatus  `json:"llm"`
	CheckedAt     time.Time          `json:"checked_at"`
}

// GraphStatus reports graph store reachability.
type GraphStatus struct {
	URI          string             `json:"uri"`
	HealthStatus types.HealthStatus `json:"health_status"`
}

// LLMProviderStatus reports whether the reasoning engine is configured and
// answering.
type LLMProviderStatus struct {
	Name         string             `json:"name"`
	Configured   bool               `json:"configured"`
	HealthStatus types.HealthStatus `json:"health_status"`
}

func newStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check graph store and LLM provider health",
		Long: `Connect to the graph store and the configured LLM provider and report
their health. The provider check sends a one token completion.

Exits non-zero when the graph store is unreachable or the provider is
configured but failing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), statusCheckTimeout)
			defer cancel()

			status := a.collectStatus(ctx)

			var err error
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				err = enc.Encode(status)
			} else {
				err = printTextStatus(cmd.OutOrStdout(), status)
			}
			if err != nil {
				return err
			}

			if status.OverallHealth.IsUnhealthy() {
				return internal.WrapError(internal.ExitError, status.OverallHealth.Message, nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status in JSON format")
	return cmd
}

func (a *app) collectStatus(ctx context.Context) SystemStatus {
	status := SystemStatus{
		Graph:     a.checkGraph(ctx),
		LLM:       a.checkLLM(ctx),
		CheckedAt: time.Now(),
	}
	status.OverallHealth = determineOverallHealth(status)
	return status
}

func (a *app) checkGraph(ctx context.Context) GraphStatus {
	gs := GraphStatus{URI: a.cfg.Graph.URI}

	client, err := a.newGraphClient(a.cfg.Graph)
	if err != nil {
		gs.HealthStatus = types.Unhealthy(err.Error())
		return gs
	}
	if err := client.Connect(ctx); err != nil {
		gs.HealthStatus = types.Unhealthy(err.Error())
		return gs
	}
	defer client.Close(context.Background())

	gs.HealthStatus = client.Health(ctx)
	return gs
}

func (a *app) checkLLM(ctx context.Context) LLMProviderStatus {
	ps := LLMProviderStatus{Name: string(a.cfg.LLM.Type)}

	if err := a.cfg.LLM.Validate(); err != nil {
		ps.HealthStatus = types.Degraded(fmt.Sprintf("not configured: %v", err))
		return ps
	}
	ps.Configured = true

	provider, err := a.newProvider(ctx, a.cfg.LLM)
	if err != nil {
		ps.HealthStatus = types.Unhealthy(err.Error())
		return ps
	}

	ps.HealthStatus = provider.Health(ctx)
	return ps
}

// determineOverallHealth is unhealthy when the graph is down or a
// configured provider fails. An unconfigured provider only degrades it,
// since schema and mcp still work.
func determineOverallHealth(status SystemStatus) types.HealthStatus {
	var issues []string
	degraded := false

	if !status.Graph.HealthStatus.IsHealthy() {
		issues = append(issues, "graph store unavailable")
	}
	switch {
	case !status.LLM.Configured:
		degraded = true
	case !status.LLM.HealthStatus.IsHealthy():
		issues = append(issues, "llm provider unavailable")
	}

	switch {
	case len(issues) > 0:
		return types.Unhealthy(fmt.Sprintf("system unhealthy: %v", issues))
	case degraded:
		return types.Degraded("llm provider not configured; chat is unavailable")
	default:
		return types.Healthy("all systems operational")
	}
}

func healthSymbol(h types.HealthStatus) string {
	switch {
	case h.IsHealthy():
		return color.GreenString("✓")
	case h.IsDegraded():
		return color.YellowString("⚠")
	default:
		return color.RedString("✗")
	}
}

func printTextStatus(w io.Writer, status SystemStatus) error {
	lines := []string{
		fmt.Sprintf("%s Overall Status: %s", healthSymbol(status.OverallHealth), status.OverallHealth.State),
		"  " + status.OverallHealth.Message,
		"",
		"Graph:",
		fmt.Sprintf("  %s %s: %s", healthSymbol(status.Graph.HealthStatus), status.Graph.URI, status.Graph.HealthStatus.State),
	}
	if msg := status.Graph.HealthStatus.Message; msg != "" {
		lines = append(lines, "    "+msg)
	}
	lines = append(lines, "", "LLM Provider:",
		fmt.Sprintf("  %s %s: %s", healthSymbol(status.LLM.HealthStatus), status.LLM.Name, status.LLM.HealthStatus.State))
	if msg := status.LLM.HealthStatus.Message; msg != "" {
		lines = append(lines, "    "+msg)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
