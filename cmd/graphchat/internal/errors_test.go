package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/zero-day-ai/graphchat/internal/agent"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/schema"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{name: "nil", err: nil, wantCode: ExitSuccess},
		{name: "canceled is a clean exit", err: fmt.Errorf("turn: %w", context.Canceled), wantCode: ExitSuccess},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: ExitTimeout, wantOut: "timed out"},
		{
			name:     "cli error",
			err:      WrapError(ExitConfigError, "failed to load configuration", errors.New("boom")),
			wantCode: ExitConfigError,
			wantOut:  "failed to load configuration",
		},
		{
			name:     "discovery",
			err:      types.WrapError(schema.ErrCodeDiscoveryFailed, "schema discovery failed", errors.New("boom")),
			wantCode: ExitDiscoveryError,
			wantOut:  "SCHEMA_DISCOVERY_FAILED",
		},
		{
			name:     "contract violation",
			err:      agent.NewContractViolationError("call_1", "drop_database", errors.New("unknown")),
			wantCode: ExitContractViolation,
		},
		{
			name:     "engine failure",
			err:      agent.NewEngineError(errors.New("connection reset")),
			wantCode: ExitError,
		},
		{
			name:     "graph unreachable",
			err:      types.NewError(graph.ErrCodeGraphConnectionFailed, "dial tcp"),
			wantCode: ExitGraphError,
		},
		{
			name:     "config validation",
			err:      types.NewError(types.CONFIG_VALIDATION_FAILED, "bad"),
			wantCode: ExitConfigError,
		},
		{name: "plain error", err: errors.New("plain"), wantCode: ExitError, wantOut: "Error: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCmd()
			assert.Equal(t, tt.wantCode, HandleError(cmd, tt.err))
			if tt.wantOut != "" {
				assert.Contains(t, buf.String(), tt.wantOut)
			}
		})
	}
}

func TestCLIError(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(ExitGraphError, "graph unavailable", cause)

	assert.Equal(t, "graph unavailable: root cause", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &CLIError{Code: ExitError, Message: "bare"}
	assert.Equal(t, "bare", bare.Error())
}

func TestIsVerbose_Env(t *testing.T) {
	t.Setenv("GRAPHCHAT_VERBOSE", "1")
	assert.True(t, IsVerbose())
}
