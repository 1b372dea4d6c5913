package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/internal/agent"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/schema"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error, including reasoning engine failures
	ExitError = 1
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitGraphError indicates the graph store could not be reached
	ExitGraphError = 12
	// ExitDiscoveryError indicates schema discovery failed at startup
	ExitDiscoveryError = 13
	// ExitContractViolation indicates the reasoning engine broke the tool contract
	ExitContractViolation = 14
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// HandleError prints err to the command's error output and returns the
// exit code. Cancellation is a clean exit: the user ended the session.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitSuccess
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil && IsVerbose() {
			cmd.PrintErrln("Cause:", cliErr.Cause)
		}
		return cliErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	cmd.PrintErrln("Error:", err)
	return ExitCodeFor(err)
}

// ExitCodeFor maps the outermost error code in err's chain to an exit code.
func ExitCodeFor(err error) int {
	switch types.CodeOf(err) {
	case types.CONFIG_LOAD_FAILED, types.CONFIG_PARSE_FAILED,
		types.CONFIG_VALIDATION_FAILED, types.CONFIG_NOT_FOUND,
		agent.ErrCodeInvalidConfig, schema.ErrCodeInvalidConfig,
		graph.ErrCodeGraphInvalidConfig:
		return ExitConfigError
	case graph.ErrCodeGraphConnectionFailed, graph.ErrCodeGraphConnectionClosed:
		return ExitGraphError
	case schema.ErrCodeDiscoveryFailed:
		return ExitDiscoveryError
	case agent.ErrCodeContractViolation:
		return ExitContractViolation
	default:
		return ExitError
	}
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag
// This is used for panic recovery to determine if stack traces should be shown
func IsVerbose() bool {
	if os.Getenv("GRAPHCHAT_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
