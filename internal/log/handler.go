package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the number of bytes of a string attribute kept
// by NewLogger before the rest is cut.
const DefaultMaxValueLen = 256

// TruncatingHandler wraps an slog.Handler and shortens long string
// attributes. Judgment text and page bodies that end up in error messages
// would otherwise flood the terminal.
type TruncatingHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewTruncatingHandler creates a TruncatingHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive
// maxLen falls back to DefaultMaxValueLen.
func NewTruncatingHandler(handler slog.Handler, maxLen int) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncatingHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the underlying handler handles records at level.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it on.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	short := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		short.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, short)
}

// WithAttrs returns a new handler with the shortened attributes added.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	short := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		short[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(short), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr shortens string and error values, recursing into groups.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		short := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			short[i] = h.truncateAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(short...)}
	case slog.KindString:
		return slog.String(a.Key, Truncate(a.Value.String(), h.maxLen))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, Truncate(err.Error(), h.maxLen))
		}
	}
	return a
}

// Truncate cuts s to at most maxLen bytes without splitting a UTF-8
// sequence and notes how many bytes were dropped.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...(%d more bytes)", s[:cut], len(s)-cut)
}

// NewLogger creates a text logger writing to w.
// verbose selects slog.LevelDebug; otherwise only warnings and errors
// are written.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncatingHandler(text, DefaultMaxValueLen))
}
