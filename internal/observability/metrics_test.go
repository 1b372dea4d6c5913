package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec := NewRecorder(provider.Meter(InstrumentationName))
	ctx := context.Background()

	rec.RecordTurn(ctx, "answered", 2, 150*time.Millisecond)
	rec.RecordTurn(ctx, "answered", 0, 20*time.Millisecond)
	rec.RecordLLMCompletion(ctx, "mock", "gpt-4o", "success", 100, 20, 50*time.Millisecond)
	rec.RecordToolCall(ctx, "run_cypher_query", "success", 5*time.Millisecond)
	rec.RecordQueryOutcome(ctx, "empty")
	rec.RecordQueryOutcome(ctx, "rows")

	data := collect(t, reader)

	assert.Equal(t, int64(2), sumOf(t, data[MetricTurns]))
	assert.Equal(t, int64(2), sumOf(t, data[MetricTurnToolCalls]))
	assert.Equal(t, int64(1), sumOf(t, data[MetricLLMCalls]))
	assert.Equal(t, int64(100), sumOf(t, data[MetricLLMTokensIn]))
	assert.Equal(t, int64(20), sumOf(t, data[MetricLLMTokensOut]))
	assert.Equal(t, int64(1), sumOf(t, data[MetricToolCalls]))
	assert.Equal(t, int64(2), sumOf(t, data[MetricQueryOutcomes]))

	hist, ok := data[MetricTurnDuration].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestRecorder_NilMeter(t *testing.T) {
	rec := NewRecorder(nil)
	assert.NotPanics(t, func() {
		rec.RecordTurn(context.Background(), "failed", 0, time.Second)
	})
}

func TestInitMetrics_Disabled(t *testing.T) {
	m, err := InitMetrics(context.Background(), MetricsConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, m.Handler)
	assert.NotNil(t, m.Meter())
	assert.NoError(t, m.Serve(context.Background(), 0, "", nil))
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestInitMetrics_InvalidConfig(t *testing.T) {
	_, err := InitMetrics(context.Background(), MetricsConfig{Enabled: true, Port: -1})
	assert.Error(t, err)
}

func TestInitMetrics_PrometheusHandler(t *testing.T) {
	m, err := InitMetrics(context.Background(), MetricsConfig{Enabled: true, Port: 9464, Path: "/metrics"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	NewRecorder(m.Meter()).RecordQueryOutcome(context.Background(), "failed")

	srv := httptest.NewServer(m.Handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "graphchat_query_outcomes_total")
	assert.Contains(t, string(body), `kind="failed"`)
}
