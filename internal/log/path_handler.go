package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// PathHandler wraps an slog.Handler to mask the user's home directory in
// path attribute values. Reports and terminal logs from a filesystem tool
// are full of absolute paths, and paths under the home directory leak the
// account name when logs are shared; rewriting them to ~/... keeps the
// output readable without that.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers never have to remember to mask; every attribute passes through
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the absolute home directory to mask. Empty disables masking.
	home string
}

// HandlerOption configures a PathHandler.
type HandlerOption func(*PathHandler)

// WithHomeDir overrides the home directory to mask.
// Without this option the handler uses os.UserHomeDir.
func WithHomeDir(home string) HandlerOption {
	return func(h *PathHandler) {
		h.home = home
	}
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// If handler is nil, the returned PathHandler wraps slog.Default().Handler().
// If the home directory cannot be determined, masking is disabled and
// records pass through unchanged.
func NewPathHandler(handler slog.Handler, opts ...HandlerOption) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	h := &PathHandler{handler: handler}
	if home, err := os.UserHomeDir(); err == nil {
		h.home = home
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() == slog.KindString {
		if masked, ok := h.maskPath(a.Value.String()); ok {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// maskPath rewrites a value under the home directory to its ~/ form.
// The second return is false when the value is not such a path.
func (h *PathHandler) maskPath(value string) (string, bool) {
	if h.home == "" {
		return value, false
	}
	if value == h.home {
		return "~", true
	}
	if rest, ok := strings.CutPrefix(value, h.home+string(os.PathSeparator)); ok {
		return "~" + string(os.PathSeparator) + rest, true
	}
	return value, false
}

// NewLogger creates a new slog.Logger with home directory masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewPathHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with home directory masking
// that outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with masking.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewPathHandler(jsonHandler))
}
