// Package telemetry wires the OpenTelemetry tracer provider used by the HTTP layer.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/straycare/straycare/config"
)

// Tracing holds the tracer provider and its shutdown hook.
type Tracing struct {
	Provider  *sdktrace.TracerProvider
	Exporting bool
	shutdown  func(context.Context) error
}

// Shutdown flushes pending spans. Safe on a nil receiver.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.shutdown == nil {
		return nil
	}
	return t.shutdown(ctx)
}

// SetGlobal installs the provider and a W3C trace-context propagator.
func (t *Tracing) SetGlobal() {
	if t == nil || t.Provider == nil {
		return
	}
	otel.SetTracerProvider(t.Provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// NewTracing builds a tracer provider. Without an OTLP endpoint spans are
// sampled but not exported, so trace IDs still reach the logs.
func NewTracing(ctx context.Context, cfg config.TelemetryConfig) (*Tracing, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	if strings.TrimSpace(cfg.OTLPEndpoint) == "" {
		tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
		return &Tracing{Provider: tp, shutdown: tp.Shutdown}, nil
	}

	target, insecure, err := otlpTarget(cfg.OTLPEndpoint, cfg.OTLPInsecure)
	if err != nil {
		return nil, err
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(target)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	return &Tracing{Provider: tp, Exporting: true, shutdown: tp.Shutdown}, nil
}

// otlpTarget reduces an endpoint to the host:port the gRPC exporter dials.
// Anything but https is plaintext unless insecureOverride is set.
func otlpTarget(endpoint string, insecureOverride bool) (string, bool, error) {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", endpoint)
	}
	return u.Host, insecureOverride || u.Scheme != "https", nil
}
