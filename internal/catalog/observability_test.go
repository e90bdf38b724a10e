package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []LookupEvent
}

func (r *recordingObserver) OnLookup(_ context.Context, e LookupEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestLogObserver_WarnsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(logger)

	obs.OnLookup(context.Background(), LookupEvent{
		RequestID: "r1", Op: OpGetDetails, Category: "boss", Name: "Margit",
		Source: "remote", Attempts: 2, ErrorCode: "TIMEOUT",
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "op=get_details")
	assert.Contains(t, out, "name=Margit")
	assert.Contains(t, out, "error_code=TIMEOUT")
}

func TestLogObserver_DebugOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	NewLogObserver(logger).OnLookup(context.Background(), LookupEvent{
		Op: OpListNames, Category: "weapon", Source: "cache", Success: true,
	})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.NotContains(t, out, "name=")
	assert.NotContains(t, out, "error_code")
}

func TestNewLogObserver_NilLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogObserver(nil).OnLookup(context.Background(), LookupEvent{Op: OpListNames})
	})
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.Canceled, "CANCELED"},
		{ErrTimeout, "TIMEOUT"},
		{ErrUnavailable, "UNAVAILABLE"},
		{ErrCircuitOpen, "CIRCUIT_OPEN"},
		{ErrNotFound, "NOT_FOUND"},
		{ErrUnknownCategory, "UNKNOWN_CATEGORY"},
		{ErrInvalidResponse, "INVALID_RESPONSE"},
		{ErrRetryExhausted, "RETRY_EXHAUSTED"},
		{assert.AnError, "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorCode(tt.err), "%v", tt.err)
	}
}
