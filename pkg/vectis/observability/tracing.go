package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span covering one raw input event.
	StartDispatchSpan(ctx context.Context, eventID, kind string) (context.Context, trace.Span)

	// StartCheckoutSpan starts a span covering order creation.
	StartCheckoutSpan(ctx context.Context, lines int) (context.Context, trace.Span)

	// StartSearchSpan starts a span covering an order history search.
	StartSearchSpan(ctx context.Context, query string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the span in ctx.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager using the global tracer provider
// as it is configured at call time.
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: otel.Tracer("vectis")}
}

func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, eventID, kind string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "vectis.dispatch",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartCheckoutSpan(ctx context.Context, lines int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "vectis.checkout",
		trace.WithAttributes(attribute.Int("cart.lines", lines)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartSearchSpan(ctx context.Context, query string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "vectis.order.search",
		trace.WithAttributes(attribute.String("search.query", query)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
