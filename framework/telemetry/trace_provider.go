package telemetry

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstallTraceProvider installs the global tracer provider. With an empty
// endpoint spans are dropped; otherwise they are batched to an OTLP/HTTP
// collector at endpoint (host:port).
func InstallTraceProvider(endpoint, serviceName string, log logrus.FieldLogger) trace.TracerProvider {
	var tracerProvider trace.TracerProvider = noop.NewTracerProvider()

	defer func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if endpoint == "" {
		return tracerProvider
	}

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		log.WithError(err).Error("creating OTLP trace exporter")
		return tracerProvider
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName)))
	if err != nil {
		log.WithError(err).Error("creating trace resource")
		return tracerProvider
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))
	return tracerProvider
}

// Shutdown flushes and stops tp when it is an SDK provider.
func Shutdown(ctx context.Context, tp trace.TracerProvider) error {
	if sdk, ok := tp.(*sdktrace.TracerProvider); ok {
		return sdk.Shutdown(ctx)
	}
	return nil
}
