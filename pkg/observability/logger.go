package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Log attribute keys added by RunHandler.
const (
	LogKeyTraceID = "trace_id"
	LogKeySpanID  = "span_id"
	LogKeyService = "service"
	LogKeyVersion = "version"
	LogKeyEnv     = "env"
	LogKeyMode    = "mode"
)

// RunHandler is an [slog.Handler] that stamps every record of a calheat run
// with the run's identity and, inside a span, its trace_id and span_id.
// The identity attributes are attached before any group so they stay at
// the top level of grouped records.
type RunHandler struct {
	next slog.Handler
}

// NewRunHandler wraps next with the identity taken from cfg. Empty version,
// environment and mode are omitted.
func NewRunHandler(next slog.Handler, cfg Config) *RunHandler {
	attrs := []slog.Attr{slog.String(LogKeyService, cfg.ServiceName)}

	optional := []struct{ key, value string }{
		{LogKeyVersion, cfg.ServiceVersion},
		{LogKeyMode, string(cfg.Mode)},
		{LogKeyEnv, cfg.Environment},
	}

	for _, o := range optional {
		if o.value != "" {
			attrs = append(attrs, slog.String(o.key, o.value))
		}
	}

	return &RunHandler{next: next.WithAttrs(attrs)}
}

// Enabled reports whether the wrapped handler takes records at level.
func (h *RunHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the span identifiers found in ctx.
func (h *RunHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(LogKeyTraceID, sc.TraceID().String()),
			slog.String(LogKeySpanID, sc.SpanID().String()),
		)
	}

	if err := h.next.Handle(ctx, record); err != nil {
		return fmt.Errorf("run log handler: %w", err)
	}

	return nil
}

func (h *RunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RunHandler{next: h.next.WithAttrs(attrs)}
}

func (h *RunHandler) WithGroup(name string) slog.Handler {
	return &RunHandler{next: h.next.WithGroup(name)}
}
