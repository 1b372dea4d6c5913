package schema

import "github.com/zero-day-ai/graphchat/internal/types"

// Schema error codes
const (
	ErrCodeDiscoveryFailed types.ErrorCode = "SCHEMA_DISCOVERY_FAILED"
	ErrCodeInvalidConfig   types.ErrorCode = "SCHEMA_INVALID_CONFIG"
)
