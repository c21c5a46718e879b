package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"easy-matters/internal/core/config"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := build(config.Log{Level: "warn", JSON: true}, zapcore.AddSync(&buf))
	defer cleanup()

	l.Info("dropped")
	l.Warn("kept", zap.String("k", "v"))
	require.NoError(t, l.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "ts")
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := build(config.Log{Level: "loud", JSON: true}, zapcore.AddSync(&buf))
	defer cleanup()

	l.Debug("dropped")
	l.Info("kept")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestBuild_RotateFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "api.log")
	l, cleanup := build(config.Log{
		Level:  "info",
		Rotate: config.Rotate{Enable: true, Filename: file, MaxSizeMB: 1},
	}, zapcore.AddSync(&buf))

	l.Info("to both sinks")
	cleanup()

	assert.FileExists(t, file)
	assert.Contains(t, buf.String(), "to both sinks")
}

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.DebugLevel)

	n, err := w.Write([]byte("[GIN-debug] GET /health\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	_, _ = w.Write([]byte("\n"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "[GIN-debug] GET /health", logs.All()[0].Message)
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	std := ToStdLogger(zap.New(core), zapcore.WarnLevel)

	std.Printf("slow query %d ms", 250)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "slow query 250 ms", logs.All()[0].Message)
}
