// Package otel wires the OpenTelemetry tracer provider for chatguard
// commands. The guard's deny records correlate through the active span
// context, so commands that dial the backend register a provider here.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// tracingEnv holds the tracing switches read from the environment.
type tracingEnv struct {
	Enabled  string `env:"CHATGUARD_OTEL_ENABLED"`
	Endpoint string `env:"CHATGUARD_OTEL_ENDPOINT"`
}

// Setup initialises OpenTelemetry tracing for the named command.
//
// Tracing is opt-in: without CHATGUARD_OTEL_ENDPOINT, or with
// CHATGUARD_OTEL_ENABLED set to "false", no global provider is registered
// and the returned shutdown function is a no-op.
//
// Callers defer the shutdown function. It flushes spans still in the batch
// queue, which matters for short-lived commands like access-check.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var cfg tracingEnv
	if err := env.Parse(&cfg); err != nil {
		return noop, fmt.Errorf("parse tracing env: %w", err)
	}
	if strings.EqualFold(cfg.Enabled, "false") || cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return noop, fmt.Errorf("describe service resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider.Shutdown, nil
}
