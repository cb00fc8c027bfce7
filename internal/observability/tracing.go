// Package observability wires the OpenTelemetry tracer provider. Tracing
// is off unless OTEL_MODE selects an exporter.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

const tracerName = "github.com/yungbote/typeset-backend"

type Config struct {
	// Mode: "off", "stdout", or "otlp".
	Mode string
	// Endpoint for the OTLP/HTTP collector, host:port.
	Endpoint string
}

// Setup installs the global tracer provider and returns a shutdown hook.
// Mode "off" installs nothing and returns a no-op.
func Setup(ctx context.Context, cfg Config, log *logger.Logger) (func(context.Context) error, bool, error) {
	noop := func(context.Context) error { return nil }
	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Mode {
	case "", "off":
		return noop, false, nil
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
	default:
		return noop, false, fmt.Errorf("unknown OTEL_MODE %q", cfg.Mode)
	}
	if err != nil {
		return noop, false, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	log.Info("Tracing enabled", "mode", cfg.Mode)
	return tp.Shutdown, true, nil
}

// Tracer returns the service tracer from the installed provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
