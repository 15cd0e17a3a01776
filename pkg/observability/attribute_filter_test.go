package observability_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/observability"
)

var errSecret = errors.New("ValueError('token=abc123')")

func newFilteredProvider(logger *slog.Logger) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	filter := observability.NewAttributeFilter(sdktrace.NewSimpleSpanProcessor(exporter), logger)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(filter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return tp, exporter
}

func TestAttributeFilter_AllowsKnownKeys(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.String("errshape.command", "match"),
		attribute.Int("suite.cases", 7),
		attribute.Bool("outcome.success", false),
		attribute.String("error.type", "*shape.ConfigurationError"),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := spanAttrMap(spans[0])
	assert.Equal(t, "match", attrs["errshape.command"])
	assert.Equal(t, int64(7), attrs["suite.cases"])
	assert.Equal(t, false, attrs["outcome.success"])
	assert.Equal(t, "*shape.ConfigurationError", attrs["error.type"])
}

func TestAttributeFilter_BlocksUserData(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.String("exception.message", "password=hunter2"),
		attribute.String("raised.notes", "internal host"),
		attribute.String("outcome.diagnostic", "'x' is not of type 'y'"),
		attribute.String("document.body", "shape: ValueError"),
		attribute.String("user.id", "12345"),
		attribute.String("unknown.key", "val"),
		attribute.String("document.path", "shapes.yaml"),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := spanAttrMap(spans[0])

	assert.NotContains(t, attrs, "exception.message")
	assert.NotContains(t, attrs, "raised.notes")
	assert.NotContains(t, attrs, "outcome.diagnostic")
	assert.NotContains(t, attrs, "document.body")
	assert.NotContains(t, attrs, "user.id")
	assert.NotContains(t, attrs, "unknown.key")
	assert.Equal(t, "shapes.yaml", attrs["document.path"])
}

func TestAttributeFilter_LogsBlockedKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tp, _ := newFilteredProvider(logger)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(attribute.String("raised.message", "val"), attribute.String("user.id", "7"))
	span.SetAttributes(attribute.String("raised.message", "again"))
	span.End()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "span attributes dropped"))
	assert.Contains(t, out, "raised.message")
	assert.Contains(t, out, "user.id")
	assert.NotContains(t, out, "again")
}

func TestAttributeFilter_ScrubsRecordedErrors(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	err := observability.Track(context.Background(), tp.Tracer("test"), "errshape match",
		func(context.Context, trace.Span) error {
			return fmt.Errorf("cases.yaml: %w", errSecret)
		},
		attribute.String("document.path", "cases.yaml"),
	)
	require.ErrorIs(t, err, errSecret)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	got := spans[0]
	assert.Equal(t, codes.Error, got.Status.Code)
	assert.Empty(t, got.Status.Description)
	assert.Equal(t, "*fmt.wrapError", spanAttrMap(got)["error.type"])

	require.Len(t, got.Events, 1)

	event := make(map[string]any, len(got.Events[0].Attributes))
	for _, kv := range got.Events[0].Attributes {
		event[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, "*fmt.wrapError", event["exception.type"])
	assert.NotContains(t, event, "exception.message")
}

func TestAttributeFilter_ShutdownAndFlush(t *testing.T) {
	t.Parallel()

	tp, exporter := newFilteredProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	require.NoError(t, tp.ForceFlush(context.Background()))
	assert.Len(t, exporter.GetSpans(), 1)
	require.NoError(t, tp.Shutdown(context.Background()))
}

// spanAttrMap converts a span's attributes into a map for easy assertion.
func spanAttrMap(s tracetest.SpanStub) map[string]any {
	m := make(map[string]any, len(s.Attributes))
	for _, a := range s.Attributes {
		m[string(a.Key)] = a.Value.AsInterface()
	}

	return m
}
