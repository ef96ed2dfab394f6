// Package logger builds the structured slog logger used by every binary: JSON to stdout,
// optionally fanned out to the OTel LoggerProvider through the otelslog bridge.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

// New returns a logger writing JSON lines to w at the given level (debug, info, warn, error).
// When provider is non-nil, records at or above the level are also exported as OTel log records.
func New(w io.Writer, level, service string, provider otellog.LoggerProvider) *slog.Logger {
	lvl := ParseLevel(level)
	var h slog.Handler = NewTraceContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	if provider != nil {
		h = NewMultiHandler(lvl, h, otelslog.NewHandler(service, otelslog.WithLoggerProvider(provider)))
	}
	return slog.New(h).With("service", service)
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler sends each record at or above level to every handler.
type MultiHandler struct {
	level    slog.Level
	handlers []slog.Handler
}

func NewMultiHandler(level slog.Level, handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{level: level, handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.level {
		return false
	}
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{level: h.level, handlers: next}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &MultiHandler{level: h.level, handlers: next}
}

// TraceContextHandler adds trace_id and span_id from the record's context.
type TraceContextHandler struct {
	slog.Handler
}

func NewTraceContextHandler(h slog.Handler) *TraceContextHandler {
	return &TraceContextHandler{Handler: h}
}

func (h *TraceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TraceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceContextHandler) WithGroup(name string) slog.Handler {
	return &TraceContextHandler{Handler: h.Handler.WithGroup(name)}
}
