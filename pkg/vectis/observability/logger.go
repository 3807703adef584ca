// Package observability provides structured logging, metrics and tracing
// for the POS core.
//
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Every helper is nil-safe and each recorder has a no-op implementation,
// so components can be built without any of it configured.
package observability

import (
	"log/slog"
	"time"
)

// OrDefault returns logger, or slog.Default() when logger is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// EnrichLogger scopes a logger to one dispatched input event.
func EnrichLogger(logger *slog.Logger, eventID, kind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("event_id", eventID),
		slog.String("event_kind", kind),
	)
}

// LogDispatch logs the channels a raw input event was classified into.
func LogDispatch(logger *slog.Logger, eventID, kind string, channels []string) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("event_id", eventID),
		slog.String("event_kind", kind),
		slog.Any("channels", channels),
	)
}

// LogActionSkipped logs an action suppressed because its element is disabled.
func LogActionSkipped(logger *slog.Logger, action string) {
	if logger == nil {
		return
	}
	logger.Debug("action skipped, element disabled",
		slog.String("action", action),
	)
}

// LogHandlerError logs a failed channel handler. Failures are isolated,
// so this is the only place they surface.
func LogHandlerError(logger *slog.Logger, channel string, err error) {
	if logger == nil {
		return
	}
	logger.Error("event handler failed",
		slog.String("channel", channel),
		slog.String("error", err.Error()),
	)
}

// LogListenerError logs a failed state listener.
func LogListenerError(logger *slog.Logger, path string, err error) {
	if logger == nil {
		return
	}
	logger.Error("state listener failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogStateChange logs a store mutation.
func LogStateChange(logger *slog.Logger, path string, historyLen int) {
	if logger == nil {
		return
	}
	logger.Debug("state changed",
		slog.String("path", path),
		slog.Int("history_len", historyLen),
	)
}

// LogCartRejected logs a cart operation that was refused without mutation.
func LogCartRejected(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("cart operation rejected",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogCheckout logs a created order.
func LogCheckout(logger *slog.Logger, orderID int64, lines int, total float64) {
	if logger == nil {
		return
	}
	logger.Info("order created",
		slog.Int64("order_id", orderID),
		slog.Int("lines", lines),
		slog.Float64("total", total),
	)
}

// LogScreenSwitch logs an accepted screen switch.
func LogScreenSwitch(logger *slog.Logger, from, to string) {
	if logger == nil {
		return
	}
	logger.Info("screen switched",
		slog.String("from", from),
		slog.String("to", to),
	)
}

// LogScreenDropped logs a screen switch discarded by the debounce.
func LogScreenDropped(logger *slog.Logger, to string, sinceLast time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("screen switch dropped",
		slog.String("to", to),
		slog.Duration("since_last", sinceLast),
	)
}

// LogCollaboratorMissing logs an operation abandoned because something it
// drives (a screen container, a print target) is not there.
func LogCollaboratorMissing(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("collaborator missing, operation abandoned",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a func reporting elapsed time since the call.
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
