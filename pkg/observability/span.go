package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Track runs fn inside a span named name. A returned error is recorded on the
// span and sets its status to Error; fn's error is returned unchanged.
func Track(
	ctx context.Context, tracer trace.Tracer, name string,
	fn func(ctx context.Context, span trace.Span) error, attrs ...attribute.KeyValue,
) error {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	err := fn(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.type", fmt.Sprintf("%T", err)))

		return err
	}

	span.SetStatus(codes.Ok, "")

	return nil
}
