package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "warn", "")

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))

	slog.New(h).Warn("[Test] something odd", slog.String("label", "neg"))
	assert.Contains(t, buf.String(), "[Test] something odd")
	assert.Contains(t, buf.String(), "neg")
}

func TestFileHandlerWritesJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "thaisenti.log")
	h := NewHandler(nil, "info", file)

	slog.New(h).Info("[Test] written to file", slog.Int("count", 3))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"[Test] written to file"`)
	assert.Contains(t, string(data), `"count":3`)
}
