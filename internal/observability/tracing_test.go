package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/types"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing_Disabled(t *testing.T) {
	tp, err := InitTracing(context.Background(), TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, ShutdownTracing(context.Background(), tp))
}

func TestInitTracing_InvalidConfig(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Provider: "zipkin", SampleRate: 1})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidConfig, types.CodeOf(err))
}

func TestInitTracing_ExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	exporter := tracetest.NewInMemoryExporter()
	cfg := TracingConfig{Enabled: true, Provider: "noop", SampleRate: 1, ServiceName: "graphchat-test"}

	tp, err := InitTracing(context.Background(), cfg,
		WithSpanExporter(exporter),
		WithSampler(sdktrace.AlwaysSample()),
	)
	require.NoError(t, err)

	_, span := Tracer(nil).Start(context.Background(), "graphchat.agent.turn")
	span.End()

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "graphchat.agent.turn", spans[0].Name)
	assert.Equal(t, InstrumentationName, spans[0].InstrumentationScope.Name)

	var serviceName string
	for _, attr := range spans[0].Resource.Attributes() {
		if attr.Key == "service.name" {
			serviceName = attr.Value.AsString()
		}
	}
	assert.Equal(t, "graphchat-test", serviceName)

	assert.NoError(t, ShutdownTracing(context.Background(), tp))
}

func TestShutdownTracing_Nil(t *testing.T) {
	assert.NoError(t, ShutdownTracing(context.Background(), nil))
}
