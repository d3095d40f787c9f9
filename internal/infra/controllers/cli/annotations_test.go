package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newAnnotationHandler(&buf, slog.LevelWarn))
	logger.Debug("too low")
	logger.Warn("something odd", slog.String("field", "header_prefix"))
	logger.Error("something bad")
	assert.Equal(t, "::warning::something odd (field=header_prefix)\n::error::something bad\n", buf.String())
}

func TestAnnotationHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newAnnotationHandler(&buf, slog.LevelInfo)).With(slog.String("name", "config"))
	logger.Warn("fallback")
	assert.Equal(t, "::warning::fallback (name=config)\n", buf.String())
}
