package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func TestSlogLogger_WritesLevelsAndArgs(t *testing.T) {
	log, buf := newBufferLogger()
	ctx := context.Background()

	log.Info(ctx, "fetch ok", "count", 3)
	log.Warn(ctx, "remote failed")
	log.Error(ctx, "store broken")

	out := buf.String()
	assert.Contains(t, out, "fetch ok")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("component", "sync")
	require.NotNil(t, child)
	child.Info(context.Background(), "started")

	assert.Contains(t, buf.String(), "component=sync")
}
