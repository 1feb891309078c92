package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing for API calls.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: EndSpan is best-effort and must not panic.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer. A nil tracer yields a noop
// Tracer so call sites never need to branch.
func NewTracer(t trace.Tracer) *Tracer {
	if t == nil {
		t = tracenoop.NewTracerProvider().Tracer("minim")
	}
	return &Tracer{tracer: t}
}

// StartCall starts a span for one API call, named api.<owner>.<method>.
func (t *Tracer) StartCall(ctx context.Context, owner, method string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "api."+owner+"."+method,
		trace.WithAttributes(
			attribute.String("api.owner", owner),
			attribute.String("api.method", method),
		))
}

// EndCall ends the span, recording the error if any.
func (t *Tracer) EndCall(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
