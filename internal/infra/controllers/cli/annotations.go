package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// annotationHandler is a slog.Handler emitting GitHub Actions workflow
// commands (::error::, ::warning::, ::notice::, ::debug::) so that warnings
// and errors surface as annotations on the workflow run.
type annotationHandler struct {
	out   io.Writer
	level slog.Level
	attrs []slog.Attr
	mu    *sync.Mutex
}

func newAnnotationHandler(out io.Writer, level slog.Level) *annotationHandler {
	return &annotationHandler{
		out:   out,
		level: level,
		mu:    &sync.Mutex{},
	}
}

func (h *annotationHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *annotationHandler) Handle(_ context.Context, record slog.Record) error {
	kind := "debug"
	switch {
	case record.Level >= slog.LevelError:
		kind = "error"
	case record.Level >= slog.LevelWarn:
		kind = "warning"
	case record.Level >= slog.LevelInfo:
		kind = "notice"
	}
	parts := []string{}
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value.String()))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value.String()))
		return true
	})
	message := record.Message
	if len(parts) > 0 {
		message = fmt.Sprintf("%s (%s)", message, strings.Join(parts, ", "))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "::%s::%s\n", kind, message)
	return err
}

func (h *annotationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := &annotationHandler{
		out:   h.out,
		level: h.level,
		mu:    h.mu,
	}
	res.attrs = append(res.attrs, h.attrs...)
	res.attrs = append(res.attrs, attrs...)
	return res
}

func (h *annotationHandler) WithGroup(name string) slog.Handler {
	// annotations are flat one-liners, groups are not rendered
	return h
}
