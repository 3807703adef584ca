package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records POS metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one raw input event and how many channels it fired.
	RecordDispatch(ctx context.Context, kind string, channels int, duration time.Duration)

	// RecordHandlerError records a failed channel handler.
	RecordHandlerError(ctx context.Context, channel string)

	// RecordMutation records a state store mutation.
	RecordMutation(ctx context.Context, path string)

	// RecordListenerError records a failed state listener.
	RecordListenerError(ctx context.Context, path string)

	// RecordCheckout records a created order and its total.
	RecordCheckout(ctx context.Context, lines int, total float64)
}

type otelMetrics struct {
	dispatches     metric.Int64Counter
	dispatchTime   metric.Float64Histogram
	handlerErrors  metric.Int64Counter
	mutations      metric.Int64Counter
	listenerErrors metric.Int64Counter
	checkouts      metric.Int64Counter
	checkoutTotal  metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.Meter("vectis"))
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	m := &otelMetrics{}
	var err error

	if m.dispatches, err = meter.Int64Counter("vectis.router.dispatches",
		metric.WithDescription("Number of raw input events dispatched"),
	); err != nil {
		return nil, err
	}
	if m.dispatchTime, err = meter.Float64Histogram("vectis.router.dispatch_ms",
		metric.WithDescription("Time spent classifying and running handlers"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.handlerErrors, err = meter.Int64Counter("vectis.router.handler_errors",
		metric.WithDescription("Number of failed channel handlers"),
	); err != nil {
		return nil, err
	}
	if m.mutations, err = meter.Int64Counter("vectis.state.mutations",
		metric.WithDescription("Number of state store mutations"),
	); err != nil {
		return nil, err
	}
	if m.listenerErrors, err = meter.Int64Counter("vectis.state.listener_errors",
		metric.WithDescription("Number of failed state listeners"),
	); err != nil {
		return nil, err
	}
	if m.checkouts, err = meter.Int64Counter("vectis.order.checkouts",
		metric.WithDescription("Number of orders created"),
	); err != nil {
		return nil, err
	}
	if m.checkoutTotal, err = meter.Float64Histogram("vectis.order.checkout_total",
		metric.WithDescription("Order totals including tax"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. On initialization failure it logs and returns NoopMetrics.
//
// Configure the provider first:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithMeter builds a recorder on an explicit meter.
func NewMetricsRecorderWithMeter(meter metric.Meter) (MetricsRecorder, error) {
	return newOtelMetrics(meter)
}

func (m *otelMetrics) RecordDispatch(ctx context.Context, kind string, channels int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("matched", channels > 0),
	)
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchTime.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

func (m *otelMetrics) RecordHandlerError(ctx context.Context, channel string) {
	m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", channel)))
}

func (m *otelMetrics) RecordMutation(ctx context.Context, path string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}

func (m *otelMetrics) RecordListenerError(ctx context.Context, path string) {
	m.listenerErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}

func (m *otelMetrics) RecordCheckout(ctx context.Context, lines int, total float64) {
	m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.Int("lines", lines)))
	m.checkoutTotal.Record(ctx, total)
}
