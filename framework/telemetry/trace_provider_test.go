package telemetry_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/km-arc/go-actions/framework/telemetry"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestInstallTraceProvider_NoEndpoint(t *testing.T) {
	tp := telemetry.InstallTraceProvider("", "actions-test", quiet())

	_, isSDK := tp.(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
	assert.Equal(t, tp, otel.GetTracerProvider())

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, telemetry.Shutdown(context.Background(), tp))
}

func TestInstallTraceProvider_Endpoint(t *testing.T) {
	tp := telemetry.InstallTraceProvider("localhost:4318", "actions-test", quiet())

	sdk, ok := tp.(*sdktrace.TracerProvider)
	require.True(t, ok)

	_, span := sdk.Tracer("test").Start(context.Background(), "recorded")
	assert.True(t, span.SpanContext().IsValid())

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	name, found := ro.Resource().Set().Value("service.name")
	assert.True(t, found)
	assert.Equal(t, "actions-test", name.AsString())
	span.End()

	// Nothing listens on the endpoint; shutting down must not block forever.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = telemetry.Shutdown(ctx, tp)
}
