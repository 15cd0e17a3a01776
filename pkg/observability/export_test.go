package observability

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// BuildResource exposes buildResource to tests.
func BuildResource(cfg Config) (*resource.Resource, error) {
	return buildResource(cfg)
}

// BuildSpanProcessors exposes buildSpanProcessors to tests.
func BuildSpanProcessors(cfg Config) ([]sdktrace.SpanProcessor, error) {
	return buildSpanProcessors(context.Background(), cfg, nil)
}

// IsAttributeFilter reports whether p is wrapped by [NewAttributeFilter].
func IsAttributeFilter(p sdktrace.SpanProcessor) bool {
	_, ok := p.(*attributeFilter)

	return ok
}

// RootSampled reports whether a root span would be sampled under cfg.
func RootSampled(cfg Config) bool {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(selectSampler(cfg)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("sampler").Start(context.Background(), "root")
	defer span.End()

	return span.SpanContext().IsSampled()
}
