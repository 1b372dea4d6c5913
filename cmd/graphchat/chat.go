package main

import (
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/cmd/graphchat/internal"
	"github.com/zero-day-ai/graphchat/internal/agent"
	"github.com/zero-day-ai/graphchat/internal/observability"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive question and answer session",
		Long: `Discover the graph schema, then answer one question per line of stdin.

The session ends at end of input or on SIGINT. A reasoning engine failure
or a malformed tool call from the engine ends it with an error.`,
		Args: cobra.NoArgs,
		RunE: a.runChat,
	}
}

func (a *app) runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := a.cfg.LLM.Validate(); err != nil {
		return internal.WrapError(internal.ExitConfigError, "invalid llm configuration", err)
	}

	rt, err := a.start(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	provider, err := a.newProvider(ctx, a.cfg.LLM)
	if err != nil {
		return err
	}

	registry, err := rt.tools(false)
	if err != nil {
		return err
	}

	bot, err := agent.New(provider, registry, rt.rendered, a.cfg.Agent,
		agent.WithLogger(observability.NewTracedLogger(rt.handler, uuid.New().String())),
		agent.WithTracer(rt.tracer),
		agent.WithRecorder(rt.recorder),
		agent.WithRequestDefaults(a.cfg.LLM.Model, a.cfg.LLM.Temperature, a.cfg.LLM.MaxTokens),
	)
	if err != nil {
		return err
	}

	var opts []agent.RunOption
	if a.isInteractive() {
		opts = append(opts, agent.WithInputPrompt(cmd.ErrOrStderr(), color.New(color.FgCyan, color.Bold).Sprint(agent.DefaultInputPrompt)))
	}

	return bot.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
}
