package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/pdbstruct/internal/config"
	"github.com/andrew-torda/pdbstruct/internal/logger"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("chatty"))
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewHandler(&buf, config.LogConfig{Format: "json", Level: "warn"}))
	l.Info("hidden")
	l.Warn("read structure", "atoms", 12)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "read structure", rec["msg"])
	assert.Equal(t, float64(12), rec["atoms"])
}

func TestInitFile(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	path := filepath.Join(t.TempDir(), "pdbstruct.log")
	closer, err := logger.Init(config.LogConfig{Destination: path, Format: "text", Level: "info"})
	require.NoError(t, err)
	slog.Info("hello", "file", "1abc.cif")
	require.NoError(t, closer())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=hello")
	assert.Contains(t, string(content), "file=1abc.cif")
}

func TestInitBadFile(t *testing.T) {
	_, err := logger.Init(config.LogConfig{Destination: filepath.Join(t.TempDir(), "no", "such", "dir.log")})
	require.Error(t, err)
	_, ok := err.(*gn.Error)
	assert.True(t, ok)
}
