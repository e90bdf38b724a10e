package catalog

import (
	"context"
	"log/slog"
)

// Op names a catalog operation.
type Op string

const (
	OpListNames  Op = "list_names"
	OpGetDetails Op = "get_details"
)

// LookupEvent records metadata about a single catalog lookup.
type LookupEvent struct {
	RequestID string
	Op        Op
	Category  string
	Name      string
	Source    string // "remote", "cache", "stale_cache", "static"
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about catalog lookups for logging.
type Observer interface {
	OnLookup(ctx context.Context, event LookupEvent)
}

// LogObserver writes lookup events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnLookup(ctx context.Context, event LookupEvent) {
	attrs := []any{
		"request_id", event.RequestID,
		"op", string(event.Op),
		"category", event.Category,
		"source", event.Source,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
	}
	if event.Name != "" {
		attrs = append(attrs, "name", event.Name)
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		o.logger.WarnContext(ctx, "catalog_lookup", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "catalog_lookup", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnLookup(context.Context, LookupEvent) {}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return NoopObserver{}
	}
	return o
}
