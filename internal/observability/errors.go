package observability

import (
	"fmt"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// Observability error codes
const (
	ErrExporterConnection  types.ErrorCode = "OBSERVABILITY_EXPORTER_CONNECTION"
	ErrInvalidConfig       types.ErrorCode = "OBSERVABILITY_INVALID_CONFIG"
	ErrMetricsRegistration types.ErrorCode = "OBSERVABILITY_METRICS_REGISTRATION"
	ErrShutdownTimeout     types.ErrorCode = "OBSERVABILITY_SHUTDOWN_TIMEOUT"
)

// NewExporterConnectionError creates a retryable error for exporter
// connection failures.
func NewExporterConnectionError(endpoint string, cause error) *types.GraphchatError {
	return &types.GraphchatError{
		Code:      ErrExporterConnection,
		Message:   fmt.Sprintf("failed to connect to exporter at %s", endpoint),
		Retryable: true,
		Cause:     cause,
	}
}

// NewInvalidConfigError wraps a validation failure.
func NewInvalidConfigError(component string, cause error) *types.GraphchatError {
	return types.WrapError(ErrInvalidConfig, "invalid "+component+" configuration", cause)
}

// NewMetricsRegistrationError wraps a failure to register an exporter or
// instrument.
func NewMetricsRegistrationError(name string, cause error) *types.GraphchatError {
	return types.WrapError(ErrMetricsRegistration, fmt.Sprintf("failed to register metric '%s'", name), cause)
}

// NewShutdownError wraps a failed flush on shutdown.
func NewShutdownError(component string, cause error) *types.GraphchatError {
	return types.WrapError(ErrShutdownTimeout, fmt.Sprintf("failed to shutdown %s", component), cause)
}
