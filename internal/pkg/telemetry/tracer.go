// Package telemetry wires structured logging and OpenTelemetry tracing.
//
// Call SetupTracer once at the top of main(), defer the returned shutdown
// function, and every span created in the process is exported via OTLP:
//
//	shutdown, err := telemetry.SetupTracer(ctx, "storefront-gateway")
//	if err != nil { ... }
//	defer shutdown(context.Background())
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ShutdownFunc flushes buffered spans and closes the exporter connection.
// Call it before the process exits.
type ShutdownFunc func(ctx context.Context) error

// SetupTracer initialises the global TracerProvider and TextMapPropagator
// for the given service name.
//
// The OTLP endpoint is read from OTEL_EXPORTER_OTLP_ENDPOINT (default
// "localhost:4317"), following the standard OTel env convention.
func SetupTracer(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	endpoint := stripScheme(envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"))

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: dial OTel collector at %s: %w", endpoint, err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create OTLP trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(envOr("OTEL_RESOURCE_ATTRIBUTES_ENV", "local")),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		// Sample everything in local dev. In production prefer
		// sdktrace.TraceIDRatioBased.
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	// W3C TraceContext + Baggage: makes trace_id flow across process
	// boundaries once the HTTP transport is instrumented.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: shut down TracerProvider: %w", err)
		}
		return conn.Close()
	}

	return shutdown, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// stripScheme removes an "http(s)://" prefix: the gRPC dialer wants host:port.
func stripScheme(endpoint string) string {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(endpoint, prefix) {
			return strings.TrimPrefix(endpoint, prefix)
		}
	}
	return endpoint
}
