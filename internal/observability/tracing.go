package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zero-day-ai/graphchat/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"
)

const (
	defaultBatchTimeout = 5 * time.Second
	defaultServiceName  = "graphchat"

	// InstrumentationName is the tracer and meter name used across graphchat.
	InstrumentationName = "github.com/zero-day-ai/graphchat"
)

// TracingOption is a functional option for configuring tracing initialization.
type TracingOption func(*tracingOptions)

type tracingOptions struct {
	sampler      sdktrace.Sampler
	resource     *resource.Resource
	batchTimeout time.Duration
	exporter     sdktrace.SpanExporter
}

// WithSampler overrides the ratio sampler derived from SampleRate.
func WithSampler(sampler sdktrace.Sampler) TracingOption {
	return func(o *tracingOptions) {
		o.sampler = sampler
	}
}

// WithResource sets a custom resource for the tracer provider.
func WithResource(res *resource.Resource) TracingOption {
	return func(o *tracingOptions) {
		o.resource = res
	}
}

// WithBatchTimeout sets the maximum time between batch exports.
func WithBatchTimeout(timeout time.Duration) TracingOption {
	return func(o *tracingOptions) {
		o.batchTimeout = timeout
	}
}

// WithSpanExporter replaces the OTLP exporter. Tests use it with an
// in-memory exporter.
func WithSpanExporter(exporter sdktrace.SpanExporter) TracingOption {
	return func(o *tracingOptions) {
		o.exporter = exporter
	}
}

// InitTracing initializes distributed tracing and installs the provider as
// the global tracer provider. When cfg.Enabled is false, or the provider is
// "noop", a provider with no exporter is returned and the global provider
// is left untouched.
func InitTracing(ctx context.Context, cfg TracingConfig, opts ...TracingOption) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		return sdktrace.NewTracerProvider(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, NewInvalidConfigError("tracing", err)
	}

	options := &tracingOptions{
		batchTimeout: defaultBatchTimeout,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.sampler == nil {
		options.sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))
	}

	if options.resource == nil {
		serviceName := cfg.ServiceName
		if serviceName == "" {
			serviceName = defaultServiceName
		}

		res, err := resource.New(
			ctx,
			resource.WithAttributes(
				semconv.ServiceName(serviceName),
				semconv.ServiceVersion(version.Version),
			),
			resource.WithFromEnv(),
			resource.WithTelemetrySDK(),
		)
		if err != nil {
			return nil, NewInvalidConfigError("tracing resource", err)
		}
		options.resource = res
	}

	exporter := options.exporter
	if exporter == nil {
		switch strings.ToLower(cfg.Provider) {
		case "noop":
			return sdktrace.NewTracerProvider(), nil

		case "otlp":
			var err error
			exporter, err = newOTLPExporter(ctx, cfg)
			if err != nil {
				return nil, err
			}

		default:
			return nil, NewInvalidConfigError("tracing", fmt.Errorf("unsupported tracing provider: %s", cfg.Provider))
		}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(options.batchTimeout),
		),
		sdktrace.WithSampler(options.sampler),
		sdktrace.WithResource(options.resource),
	)

	otel.SetTracerProvider(tp)

	return tp, nil
}

func newOTLPExporter(ctx context.Context, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	otlpOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}

	switch {
	case cfg.TLSCertFile != "":
		creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertFile, "")
		if err != nil {
			return nil, NewExporterConnectionError(cfg.Endpoint, err)
		}
		otlpOpts = append(otlpOpts, otlptracegrpc.WithTLSCredentials(creds))
	case cfg.Insecure:
		otlpOpts = append(otlpOpts, otlptracegrpc.WithInsecure())
	default:
		otlpOpts = append(otlpOpts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(nil)))
	}

	exporter, err := otlptracegrpc.New(ctx, otlpOpts...)
	if err != nil {
		return nil, NewExporterConnectionError(cfg.Endpoint, err)
	}
	return exporter, nil
}

// Tracer returns the graphchat tracer from provider.
func Tracer(provider trace.TracerProvider) trace.Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return provider.Tracer(InstrumentationName, trace.WithInstrumentationVersion(version.Version))
}

// ShutdownTracing flushes pending spans and stops the provider. The context
// deadline bounds how long in-flight exports may take.
func ShutdownTracing(ctx context.Context, provider *sdktrace.TracerProvider) error {
	if provider == nil {
		return nil
	}

	if err := provider.Shutdown(ctx); err != nil {
		return NewShutdownError("tracer provider", err)
	}

	return nil
}
