package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/cmd/graphchat/internal"
	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/observability"
	"github.com/zero-day-ai/graphchat/internal/query"
	"github.com/zero-day-ai/graphchat/internal/schema"
	"github.com/zero-day-ai/graphchat/internal/tool"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 5 * time.Second

// runtime holds the services a command runs against. close releases them
// in reverse order of start.
type runtime struct {
	handler  slog.Handler
	logger   *slog.Logger
	tracing  *sdktrace.TracerProvider
	tracer   trace.Tracer
	metrics  *observability.Metrics
	recorder *observability.Recorder
	client   graph.GraphClient

	schema   *schema.GraphSchema
	rendered string

	stopMetrics context.CancelFunc
	metricsDone chan struct{}
}

// start wires logging, telemetry, and the graph client, then runs schema
// discovery. Discovery failure is fatal.
func (a *app) start(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg := a.cfg

	handler, err := observability.NewHandler(cfg.Logging.Format, cfg.Logging.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "invalid logging configuration", err)
	}
	rt := &runtime{
		handler: handler,
		logger:  slog.New(handler),
	}

	rt.tracing, err = observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	rt.tracer = observability.Tracer(rt.tracing)

	rt.metrics, err = observability.InitMetrics(ctx, cfg.Metrics)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.recorder = observability.NewRecorder(rt.metrics.Meter())
	if cfg.Metrics.Enabled {
		metricsCtx, stop := context.WithCancel(ctx)
		rt.stopMetrics = stop
		rt.metricsDone = make(chan struct{})
		go func() {
			defer close(rt.metricsDone)
			if err := rt.metrics.Serve(metricsCtx, cfg.Metrics.Port, cfg.Metrics.Path, rt.logger); err != nil {
				rt.logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	inner, err := a.newGraphClient(cfg.Graph)
	if err != nil {
		rt.close()
		return nil, err
	}
	client := graph.NewTracedClient(inner, rt.tracer)
	if err := client.Connect(ctx); err != nil {
		rt.close()
		return nil, err
	}
	rt.client = client

	policy, err := schema.PolicyByName(cfg.Schema.ConflictPolicy)
	if err != nil {
		rt.close()
		return nil, err
	}
	prober, err := schema.ProberByName(cfg.Schema.ProbeStrategy)
	if err != nil {
		rt.close()
		return nil, err
	}

	sampler := schema.NewSampler(client,
		schema.WithSampleLimit(cfg.Schema.SampleLimit),
		schema.WithConflictPolicy(policy),
		schema.WithProber(prober),
		schema.WithLogger(rt.logger),
	)
	rt.schema, err = sampler.Discover(ctx)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.rendered = schema.Render(rt.schema)

	return rt, nil
}

// tools builds the tool table served to the model and to MCP clients.
func (rt *runtime) tools(includeDescribe bool) (*tool.Registry, error) {
	executor := query.NewExecutor(rt.client, rt.logger)

	registry := tool.NewRegistry()
	cypher := tool.NewCypherQueryTool(executor,
		tool.WithLogger(rt.logger),
		tool.WithOutcomeHook(func(ctx context.Context, outcome query.Outcome) {
			rt.recorder.RecordQueryOutcome(ctx, outcome.Kind.String())
		}),
	)
	if err := registry.Register(cypher); err != nil {
		return nil, err
	}
	if includeDescribe {
		if err := registry.Register(tool.NewDescribeSchemaTool(rt.rendered)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (rt *runtime) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if rt.client != nil {
		if err := rt.client.Close(ctx); err != nil {
			rt.logger.Warn("failed to close graph client", "error", err)
		}
	}
	if rt.stopMetrics != nil {
		rt.stopMetrics()
		<-rt.metricsDone
	}
	if err := rt.metrics.Shutdown(ctx); err != nil {
		rt.logger.Warn("failed to shut down metrics", "error", err)
	}
	if err := observability.ShutdownTracing(ctx, rt.tracing); err != nil {
		rt.logger.Warn("failed to shut down tracing", "error", err)
	}
}
