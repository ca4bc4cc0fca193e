package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxValueLength is the longest string attribute value emitted as-is.
// Longer values are cut and suffixed with an ellipsis marker.
const maxValueLength = 200

// ellipsis marks a trimmed value in the output.
const ellipsis = "..."

// TrimHandler wraps an slog.Handler to keep records single-line.
// String attribute values have their whitespace runs collapsed to one
// space and are truncated to a fixed length before reaching the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than trimming at
// every call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log raw values without worrying about size
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler
}

// NewTrimHandler creates a new TrimHandler wrapping the given handler.
// If handler is nil, the returned TrimHandler uses slog.Default().Handler().
func NewTrimHandler(handler slog.Handler) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TrimHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name)}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Trim(a.Value.String()))
	}

	return a
}

// Trim collapses whitespace runs to single spaces and truncates the
// result to the handler's value limit.
func Trim(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	inSpace := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	flat := b.String()
	if len(flat) > maxValueLength {
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxValueLength
		for cut > 0 && !utf8.RuneStart(flat[cut]) {
			cut--
		}
		return flat[:cut] + ellipsis
	}
	return flat
}

// NewLogger creates a slog.Logger writing trimmed text records to w.
// Verbose mode lowers the level from Warn to Debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTrimHandler(textHandler))
}
