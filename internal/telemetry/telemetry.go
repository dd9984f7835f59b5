// Package telemetry wires OpenTelemetry tracing for the simulator. Spans are
// only exported when an OTLP endpoint is configured; until then every tracer is
// backed by the global no-op provider.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "gokarel"
	serviceVersion = "0.1.0"
)

// Endpoint variables, in the order they are consulted.
var endpointVars = []string{
	"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

// Enabled reports whether an OTLP endpoint has been configured.
func Enabled() bool {
	for _, key := range endpointVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// Setup installs a batching OTLP/HTTP tracer provider as the global provider.
// The exporter reads the usual OTEL_EXPORTER_OTLP_* variables. The returned
// function flushes pending spans and must be called before the process exits.
func Setup(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(simulatorAttributes()...))
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func simulatorAttributes() []attribute.KeyValue {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", host),
		attribute.String("process.runtime.version", runtime.Version()),
	}
}

// Tracer returns the tracer for one simulator component, e.g. "maps" or "arena".
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}
