package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Wrap runs fn inside a new span named name, recording its error (if any)
// as the span status before returning it unchanged.
func Wrap(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return err
}
