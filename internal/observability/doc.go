// Package observability provides logging, tracing and metrics setup for
// graphchat.
//
// Logging uses log/slog. NewHandler builds a text or JSON handler from
// configuration, and TracedLogger stamps each entry with the chat session ID
// and, when the context carries a span, the OpenTelemetry trace and span IDs.
// Values under sensitive keys (api_key, password, token, ...) are redacted at
// info level and above.
//
// Tracing is OpenTelemetry with an OTLP gRPC exporter:
//
//	tp, err := observability.InitTracing(ctx, cfg.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer observability.ShutdownTracing(ctx, tp)
//
// Metrics are OpenTelemetry instruments read by a Prometheus exporter on a
// private registry. Metrics.Serve exposes the registry over HTTP, and Recorder
// wraps the instruments used by the conversation loop.
package observability
