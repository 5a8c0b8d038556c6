// Package telemetry traces the storefront's calls to the food API.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracing owns the tracer provider every API call is recorded with
type Tracing struct {
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

// Setup batches finished spans to w as JSON and registers the provider and
// the W3C trace context propagator globally. Call Shutdown before exit to
// flush pending spans.
func Setup(w io.Writer, service string) (*Tracing, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exp),
	)
	propagator := propagation.TraceContext{}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &Tracing{provider: tp, propagator: propagator}, nil
}

// HTTPClient returns a client that records each request as a client span and
// sends a traceparent header with it
func (t *Tracing) HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(t.provider),
			otelhttp.WithPropagators(t.propagator),
		),
		Timeout: timeout,
	}
}

// Shutdown flushes pending spans and stops the provider
func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
