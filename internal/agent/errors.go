package agent

import (
	"github.com/zero-day-ai/graphchat/internal/types"
)

// Agent error codes
const (
	ErrCodeEngineFailed      types.ErrorCode = "AGENT_ENGINE_FAILED"
	ErrCodeContractViolation types.ErrorCode = "AGENT_CONTRACT_VIOLATION"
	ErrCodeEmptyQuestion     types.ErrorCode = "AGENT_EMPTY_QUESTION"
	ErrCodeInvalidConfig     types.ErrorCode = "AGENT_INVALID_CONFIG"
	ErrCodeInputFailed       types.ErrorCode = "AGENT_INPUT_FAILED"
	ErrCodeInvalidState      types.ErrorCode = "AGENT_INVALID_STATE"
)

// NewEngineError wraps a failed reasoning engine call.
func NewEngineError(cause error) *types.GraphchatError {
	return types.WrapError(ErrCodeEngineFailed, "reasoning engine call failed", cause)
}

// NewContractViolationError wraps a tool call the engine should never have
// produced: an undeclared tool name or unparseable arguments.
func NewContractViolationError(callID, toolName string, cause error) *types.GraphchatError {
	return types.WrapError(ErrCodeContractViolation,
		"engine produced an invalid tool call "+callID+" ("+toolName+")", cause)
}

// NewInvalidStateError reports a turn state change the loop does not allow.
func NewInvalidStateError(from, to TurnState) *types.GraphchatError {
	return types.NewError(ErrCodeInvalidState,
		"invalid turn state transition from "+from.String()+" to "+to.String())
}
