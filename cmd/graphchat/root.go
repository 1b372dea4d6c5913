package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/cmd/graphchat/internal"
	"github.com/zero-day-ai/graphchat/internal/config"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/llm"
	"github.com/zero-day-ai/graphchat/internal/llm/providers"
	"github.com/zero-day-ai/graphchat/pkg/version"
	"golang.org/x/term"
)

// app carries state shared by every command: parsed flags, the loaded
// configuration, and the constructors for external services.
type app struct {
	flags GlobalFlags
	cfg   *config.Config

	newGraphClient func(graph.GraphClientConfig) (graph.GraphClient, error)
	newProvider    func(context.Context, llm.ProviderConfig) (llm.LLMProvider, error)
	isInteractive  func() bool
}

func newApp() *app {
	return &app{
		newGraphClient: func(cfg graph.GraphClientConfig) (graph.GraphClient, error) {
			return graph.NewNeo4jClient(cfg)
		},
		newProvider:   providers.NewProvider,
		isInteractive: isTerminalInteractive,
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

func newRootCmdWith(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graphchat",
		Short: "graphchat - ask questions about a Neo4j knowledge graph",
		Long: `graphchat discovers the schema of a Neo4j knowledge graph and answers
questions about it with a tool-calling LLM that writes Cypher.

Without a subcommand it starts an interactive session: one question per
line on stdin, one answer per turn on stdout. Logs go to stderr.`,
		PersistentPreRunE: a.loadConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              a.runChat,
	}

	RegisterGlobalFlags(rootCmd, &a.flags)

	rootCmd.AddCommand(newChatCmd(a))
	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newMCPCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig is called before any command runs to load configuration. An
// explicit --config must exist; the default path is optional.
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	loader := config.NewConfigLoader(config.NewValidator())

	var (
		cfg *config.Config
		err error
	)
	if a.flags.ConfigFile != "" {
		path, expandErr := config.ExpandPath(a.flags.ConfigFile)
		if expandErr != nil {
			return internal.WrapError(internal.ExitConfigError, "invalid config path", expandErr)
		}
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadWithDefaults(config.DefaultConfigPath(config.DefaultHomeDir()))
	}
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to load configuration", err)
	}

	if a.flags.IsVerbose() {
		cfg.Logging.Level = "debug"
	}

	a.cfg = cfg
	return nil
}

// isTerminalInteractive checks if stdin is a terminal.
func isTerminalInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.Info())
			}
			cmd.Println(version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}
