package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metric names recorded by graphchat.
const (
	MetricTurns         = "graphchat.agent.turns"
	MetricTurnDuration  = "graphchat.agent.turn.duration"
	MetricTurnToolCalls = "graphchat.agent.turn.tool_calls"
	MetricLLMCalls      = "graphchat.llm.completions"
	MetricLLMTokensIn   = "graphchat.llm.tokens.input"
	MetricLLMTokensOut  = "graphchat.llm.tokens.output"
	MetricLLMLatency    = "graphchat.llm.latency"
	MetricToolCalls     = "graphchat.tool.calls"
	MetricToolDuration  = "graphchat.tool.duration"
	MetricQueryOutcomes = "graphchat.query.outcomes"
)

// Metrics bundles a meter provider with the HTTP handler that exposes it.
// Handler is nil when metrics are disabled.
type Metrics struct {
	Provider metric.MeterProvider
	Handler  http.Handler

	sdkProvider *sdkmetric.MeterProvider
}

// InitMetrics builds a Prometheus-backed meter provider on a private
// registry. When cfg.Enabled is false a no-op provider is returned.
func InitMetrics(ctx context.Context, cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{Provider: noop.NewMeterProvider()}, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, NewInvalidConfigError("metrics", err)
	}

	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, NewMetricsRegistrationError("prometheus exporter", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return &Metrics{
		Provider:    provider,
		Handler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		sdkProvider: provider,
	}, nil
}

// Meter returns the graphchat meter.
func (m *Metrics) Meter() metric.Meter {
	return m.Provider.Meter(InstrumentationName)
}

// Serve exposes Handler on port at path until ctx is done. It returns nil
// immediately when metrics are disabled.
func (m *Metrics) Serve(ctx context.Context, port int, path string, logger *slog.Logger) error {
	if m.Handler == nil {
		return nil
	}
	if path == "" {
		path = "/metrics"
	}
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", server.Addr, "path", path)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return NewShutdownError("metrics server", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.sdkProvider == nil {
		return nil
	}
	if err := m.sdkProvider.Shutdown(ctx); err != nil {
		return NewShutdownError("meter provider", err)
	}
	return nil
}

// Recorder records graphchat metrics through an OpenTelemetry meter.
// Instruments are created lazily on first use. Safe for concurrent use.
type Recorder struct {
	meter metric.Meter

	mu         sync.RWMutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

// NewRecorder creates a Recorder on meter. A nil meter records nothing.
func NewRecorder(meter metric.Meter) *Recorder {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(InstrumentationName)
	}
	return &Recorder{
		meter:      meter,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// RecordCounter increments the named counter by value.
func (r *Recorder) RecordCounter(ctx context.Context, name string, value int64, labels map[string]string) {
	counter := r.getOrCreateCounter(name)
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(labelsToAttributes(labels)...))
}

// RecordHistogram records value in the named histogram.
func (r *Recorder) RecordHistogram(ctx context.Context, name string, value float64, labels map[string]string) {
	histogram := r.getOrCreateHistogram(name)
	if histogram == nil {
		return
	}
	histogram.Record(ctx, value, metric.WithAttributes(labelsToAttributes(labels)...))
}

// RecordTurn records a finished conversation turn. status is "answered" or
// "failed"; toolCalls is the number of tool calls dispatched in the turn.
func (r *Recorder) RecordTurn(ctx context.Context, status string, toolCalls int, duration time.Duration) {
	labels := map[string]string{"status": status}
	r.RecordCounter(ctx, MetricTurns, 1, labels)
	r.RecordHistogram(ctx, MetricTurnDuration, float64(duration.Milliseconds()), labels)
	if toolCalls > 0 {
		r.RecordCounter(ctx, MetricTurnToolCalls, int64(toolCalls), nil)
	}
}

// RecordLLMCompletion records one reasoning engine round trip.
func (r *Recorder) RecordLLMCompletion(ctx context.Context, provider, model, status string, inputTokens, outputTokens int, latency time.Duration) {
	labels := map[string]string{
		"provider": provider,
		"model":    model,
		"status":   status,
	}
	r.RecordCounter(ctx, MetricLLMCalls, 1, labels)
	r.RecordCounter(ctx, MetricLLMTokensIn, int64(inputTokens), labels)
	r.RecordCounter(ctx, MetricLLMTokensOut, int64(outputTokens), labels)
	r.RecordHistogram(ctx, MetricLLMLatency, float64(latency.Milliseconds()), labels)
}

// RecordToolCall records one tool dispatch.
func (r *Recorder) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	labels := map[string]string{
		"tool":   tool,
		"status": status,
	}
	r.RecordCounter(ctx, MetricToolCalls, 1, labels)
	r.RecordHistogram(ctx, MetricToolDuration, float64(duration.Milliseconds()), labels)
}

// RecordQueryOutcome counts executor outcomes by kind (rows, empty, failed).
func (r *Recorder) RecordQueryOutcome(ctx context.Context, kind string) {
	r.RecordCounter(ctx, MetricQueryOutcomes, 1, map[string]string{"kind": kind})
}

func (r *Recorder) getOrCreateCounter(name string) metric.Int64Counter {
	r.mu.RLock()
	counter, exists := r.counters[name]
	r.mu.RUnlock()
	if exists {
		return counter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if counter, exists := r.counters[name]; exists {
		return counter
	}

	counter, err := r.meter.Int64Counter(name)
	if err != nil {
		return nil
	}
	r.counters[name] = counter
	return counter
}

func (r *Recorder) getOrCreateHistogram(name string) metric.Float64Histogram {
	r.mu.RLock()
	histogram, exists := r.histograms[name]
	r.mu.RUnlock()
	if exists {
		return histogram
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if histogram, exists := r.histograms[name]; exists {
		return histogram
	}

	histogram, err := r.meter.Float64Histogram(name, metric.WithUnit("ms"))
	if err != nil {
		return nil
	}
	r.histograms[name] = histogram
	return histogram
}

func labelsToAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}
