package router

import (
	"context"
	"log/slog"
	"time"
)

// RecoveryMiddleware turns handler panics into a *PanicError. The router
// already isolates panics; this lets outer middleware observe them as errors.
func RecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, p *Payload) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = &PanicError{Value: rec}
				}
			}()
			return next(ctx, p)
		}
	}
}

// LoggingMiddleware logs every handler run at debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, p *Payload) error {
			start := time.Now()
			err := next(ctx, p)
			if logger != nil {
				attrs := []any{
					slog.String("channel", p.Channel),
					slog.Duration("duration", time.Since(start)),
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
				logger.Debug("handler completed", attrs...)
			}
			return err
		}
	}
}

// MetricsMiddleware reports handler timing through onComplete.
func MetricsMiddleware(onComplete func(channel string, duration time.Duration, err error)) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, p *Payload) error {
			start := time.Now()
			err := next(ctx, p)
			if onComplete != nil {
				onComplete(p.Channel, time.Since(start), err)
			}
			return err
		}
	}
}
