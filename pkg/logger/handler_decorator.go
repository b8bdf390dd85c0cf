package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator wraps a slog.Handler, injects attributes from context
// and optionally rewrites string values before they are written.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	sanitize   func(string) string
}

// NewLogHandlerDecorator creates a new decorated handler. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds context attributes and delegates to the underlying handler.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 && h.sanitize == nil {
		return h.next.Handle(ctx, rec)
	}

	if h.sanitize != nil {
		out := slog.NewRecord(rec.Time, rec.Level, h.sanitize(rec.Message), rec.PC)
		rec.Attrs(func(a slog.Attr) bool {
			out.AddAttrs(h.clean(a))
			return true
		})
		rec = out
	}

	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(h.clean(attr))
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) clean(a slog.Attr) slog.Attr {
	if h.sanitize == nil {
		return a
	}

	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(h.sanitize(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		cleaned := make([]slog.Attr, len(group))
		for i, g := range group {
			cleaned[i] = h.clean(g)
		}
		a.Value = slog.GroupValue(cleaned...)
	}
	return a
}

// WithAttrs creates a new decorated handler with additional static attributes.
func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := attrs
	if h.sanitize != nil {
		cleaned = make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			cleaned[i] = h.clean(a)
		}
	}
	return &LogHandlerDecorator{
		next:       h.next.WithAttrs(cleaned),
		extractors: h.extractors,
		sanitize:   h.sanitize,
	}
}

// WithGroup creates a new decorated handler with attribute grouping.
func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
		sanitize:   h.sanitize,
	}
}
