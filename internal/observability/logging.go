package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// TracedLogger is a structured logger with automatic trace correlation.
// Every entry carries the chat session ID, plus trace_id and span_id when the
// context holds a valid span.
type TracedLogger struct {
	logger          *slog.Logger
	sessionID       string
	redactSensitive bool
}

// NewTracedLogger creates a TracedLogger writing through handler.
func NewTracedLogger(handler slog.Handler, sessionID string) *TracedLogger {
	return &TracedLogger{
		logger:          slog.New(handler),
		sessionID:       sessionID,
		redactSensitive: true,
	}
}

// SessionID returns the session the logger is bound to.
func (l *TracedLogger) SessionID() string {
	return l.sessionID
}

// Logger returns a plain slog.Logger carrying the session ID, for packages
// that log without a context.
func (l *TracedLogger) Logger() *slog.Logger {
	return l.logger.With(slog.String("session_id", l.sessionID))
}

// Debug logs without redaction.
func (l *TracedLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).DebugContext(ctx, msg, args...)
}

// Info logs at info level. Sensitive values are redacted.
func (l *TracedLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs at warn level. Sensitive values are redacted.
func (l *TracedLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level. Sensitive values are redacted.
func (l *TracedLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).ErrorContext(ctx, msg, args...)
}

// WithContext returns a slog.Logger with session and trace correlation
// fields added.
func (l *TracedLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.logger.With(slog.String("session_id", l.sessionID))

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		logger = logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return logger
}

// NewHandler builds a handler from configuration values. format is "json"
// or "text"; level is one of debug, info, warn, error.
func NewHandler(format, level string, w io.Writer) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", "text":
		return NewTextHandler(w, lvl), nil
	case "json":
		return NewJSONHandler(w, lvl), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be one of: json, text)", format)
	}
}

// ParseLevel maps a level name to a slog.Level. An empty name means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", level)
	}
}

// NewJSONHandler creates a JSON log handler.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// NewTextHandler creates a human-readable log handler.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

var sensitiveFields = map[string]bool{
	"prompt":     true,
	"prompts":    true,
	"apikey":     true,
	"secret":     true,
	"secretkey":  true,
	"password":   true,
	"token":      true,
	"credential": true,
}

// redactSensitiveData replaces the values of sensitive keys with
// "[REDACTED]". Keys are matched case-insensitively with underscores
// ignored. Malformed argument lists are returned unchanged.
func redactSensitiveData(args []any) []any {
	if len(args)%2 != 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if sensitiveFields[strings.ToLower(strings.ReplaceAll(key, "_", ""))] {
			redacted[i+1] = "[REDACTED]"
		}
	}

	return redacted
}
