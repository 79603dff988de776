package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrEnv     = "env"
	attrMode    = "mode"

	attrSeverity = "log.severity"
)

// TracingHandler is an [slog.Handler] that correlates log records with the
// active span. Every record gets trace_id and span_id; records at
// eventLevel or above are also added to a recording span as events, so a
// skipped commit shows up on its window's span.
type TracingHandler struct {
	inner      slog.Handler
	eventLevel slog.Level
}

// NewTracingHandler wraps inner with service metadata. The metadata is
// attached before any group so it stays top level.
func NewTracingHandler(inner slog.Handler, service, env string, appMode AppMode) *TracingHandler {
	meta := []slog.Attr{
		slog.String(attrService, service),
		slog.String(attrMode, string(appMode)),
	}

	if env != "" {
		meta = append(meta, slog.String(attrEnv, env))
	}

	return &TracingHandler{inner: inner.WithAttrs(meta), eventLevel: slog.LevelWarn}
}

func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)

	sc := span.SpanContext()
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	if record.Level >= th.eventLevel && span.IsRecording() {
		span.AddEvent(record.Message, trace.WithAttributes(eventAttributes(record)...))
	}

	handleErr := th.inner.Handle(ctx, record)
	if handleErr != nil {
		return fmt.Errorf("tracing handler: %w", handleErr)
	}

	return nil
}

func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return th.wrap(th.inner.WithAttrs(attrs))
}

func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return th.wrap(th.inner.WithGroup(name))
}

func (th *TracingHandler) wrap(inner slog.Handler) *TracingHandler {
	return &TracingHandler{inner: inner, eventLevel: th.eventLevel}
}

// eventAttributes flattens the record's own attributes to strings. Trace
// correlation attributes are left out; the event already belongs to the span.
func eventAttributes(record slog.Record) []attribute.KeyValue {
	kvs := make([]attribute.KeyValue, 0, record.NumAttrs()+1)
	kvs = append(kvs, attribute.String(attrSeverity, record.Level.String()))

	record.Attrs(func(a slog.Attr) bool {
		if a.Key != attrTraceID && a.Key != attrSpanID {
			kvs = append(kvs, attribute.String(a.Key, a.Value.String()))
		}

		return true
	})

	return kvs
}
