package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	l, buf := newBufLogger(t)
	ctx := context.Background()

	l.Info(ctx, "info message", "k", "v")
	l.Warn(ctx, "warn message")
	l.Error(ctx, "error message")

	out := buf.String()
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufLogger(t)

	child := l.With("component", "session")
	require.NotNil(t, child)
	child.Info(context.Background(), "restored")

	assert.Contains(t, buf.String(), "component=session")
}
