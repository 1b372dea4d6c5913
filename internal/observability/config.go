package observability

import (
	"fmt"
	"strings"
)

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Endpoint    string  `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	TLSCertFile string  `yaml:"tls_cert_file" mapstructure:"tls_cert_file"`
	Insecure    bool    `yaml:"insecure" mapstructure:"insecure"` // plaintext gRPC to the collector
}

// DefaultTracingConfig returns a disabled OTLP configuration pointed at a
// local collector.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:     false,
		Provider:    "otlp",
		Endpoint:    "localhost:4317",
		ServiceName: defaultServiceName,
		SampleRate:  1.0,
	}
}

// Validate returns an error if Provider is not otlp or noop, if SampleRate
// is outside [0, 1], or if an otlp exporter has no endpoint. Disabled
// configurations are always valid.
func (c *TracingConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	provider := strings.ToLower(c.Provider)
	if provider != "otlp" && provider != "noop" {
		return fmt.Errorf("invalid tracing provider: %s (must be one of: otlp, noop)", c.Provider)
	}

	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("invalid sample rate: %f (must be between 0.0 and 1.0)", c.SampleRate)
	}

	if provider == "otlp" && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when tracing is enabled")
	}

	return nil
}

// MetricsConfig contains Prometheus metrics export configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Port    int    `yaml:"port" mapstructure:"port"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// DefaultMetricsConfig returns a disabled configuration on the usual
// exporter port.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: false,
		Port:    9464,
		Path:    "/metrics",
	}
}

// Validate checks the port range when metrics are enabled.
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}

	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("invalid metrics path: %s (must start with '/')", c.Path)
	}

	return nil
}

// LoggingConfig contains structured logging configuration. Logs always go to
// stderr; stdout is reserved for answers.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultLoggingConfig returns warn-level text logging.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "warn",
		Format: "text",
	}
}

// Validate checks Level and Format.
func (c *LoggingConfig) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	format := strings.ToLower(c.Format)
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid log format: %s (must be one of: json, text)", c.Format)
	}

	return nil
}
