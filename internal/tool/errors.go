package tool

import (
	"errors"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// Tool error codes
const (
	ErrCodeToolNotFound      types.ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeToolAlreadyExists types.ErrorCode = "TOOL_ALREADY_EXISTS"
	ErrCodeToolInvalidArgs   types.ErrorCode = "TOOL_INVALID_ARGS"
	ErrCodeToolInvalidInput  types.ErrorCode = "TOOL_INVALID_INPUT"
)

// Contract violations by the model. Match with errors.Is; any error carrying
// the same code matches.
var (
	ErrUnknownTool     = types.NewError(ErrCodeToolNotFound, "unknown tool")
	ErrInvalidToolArgs = types.NewError(ErrCodeToolInvalidArgs, "invalid tool arguments")
)

var errTrailingData = errors.New("unexpected data after arguments object")
