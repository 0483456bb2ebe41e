package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/heal-sync/healsync-init/internal/errdef"
)

const instrumentationName = "github.com/heal-sync/healsync-init"

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Setup returns a tracer for cfg. When cfg is disabled the tracer is a no-op
// and nothing touches the network.
func Setup(ctx context.Context, cfg Config) (trace.Tracer, ShutdownFunc, error) {
	if !cfg.Enabled() {
		return noop.NewTracerProvider().Tracer(instrumentationName), func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracegrpc.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, nil, errdef.Wrap(errdef.CodeConfig, err, "create otlp exporter")
	}

	attrs := []attribute.KeyValue{attribute.String("service.name", cfg.ServiceName)}
	if cfg.Version != "" {
		attrs = append(attrs, attribute.String("service.version", cfg.Version))
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attrs...)),
	)
	return tp.Tracer(instrumentationName), tp.Shutdown, nil
}

func exporterOptions(cfg Config) []otlptracegrpc.Option {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	var opts []otlptracegrpc.Option
	if strings.Contains(endpoint, "://") {
		opts = append(opts, otlptracegrpc.WithEndpointURL(endpoint))
	} else {
		opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(cfg.Headers))
	}
	if cfg.DialTimeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.DialTimeout))
	}
	return opts
}
