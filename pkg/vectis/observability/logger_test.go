package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a JSON logger at debug level writing into buf.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// lastRecord decodes the last JSON line written to buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestNilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogDispatch(nil, "e", "click", nil)
		LogActionSkipped(nil, "checkout")
		LogHandlerError(nil, "action:x", errors.New("boom"))
		LogListenerError(nil, "cart", errors.New("boom"))
		LogStateChange(nil, "cart", 1)
		LogCartRejected(nil, "decrease", errors.New("floor"))
		LogCheckout(nil, 1, 2, 3)
		LogScreenSwitch(nil, "a", "b")
		LogScreenDropped(nil, "b", time.Millisecond)
		LogCollaboratorMissing(nil, "switch", errors.New("gone"))
	})
	assert.Nil(t, EnrichLogger(nil, "e", "click"))
	assert.Equal(t, slog.Default(), OrDefault(nil))
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := captureLogger()

	EnrichLogger(logger, "evt-1", "click").Info("hello")

	rec := lastRecord(t, buf)
	assert.Equal(t, "evt-1", rec["event_id"])
	assert.Equal(t, "click", rec["event_kind"])
}

func TestLogHandlerError(t *testing.T) {
	logger, buf := captureLogger()

	LogHandlerError(logger, "action:checkout", errors.New("boom"))

	rec := lastRecord(t, buf)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "event handler failed", rec["msg"])
	assert.Equal(t, "action:checkout", rec["channel"])
	assert.Equal(t, "boom", rec["error"])
}

func TestLogCheckout(t *testing.T) {
	logger, buf := captureLogger()

	LogCheckout(logger, 1700000000000, 2, 35.09)

	rec := lastRecord(t, buf)
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, float64(1700000000000), rec["order_id"])
	assert.Equal(t, float64(2), rec["lines"])
	assert.Equal(t, 35.09, rec["total"])
}

func TestLogScreenDropped(t *testing.T) {
	logger, buf := captureLogger()

	LogScreenDropped(logger, "orders-list", 50*time.Millisecond)

	rec := lastRecord(t, buf)
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "orders-list", rec["to"])
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 2*time.Millisecond)
}

func TestEndSpanWithErrorNilSpan(t *testing.T) {
	EndSpanWithError(nil, errors.New("ignored"))
}
