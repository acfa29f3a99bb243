package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/config"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetup_WritesConsoleAndFile(t *testing.T) {
	restoreDefault(t)
	dir := t.TempDir()
	var console bytes.Buffer

	closer := Setup(Options{Console: &console, Dir: dir})
	require.NotNil(t, closer)

	slog.Info("hello", config.LogKeyComponent, config.CompMain)
	require.NoError(t, closer.Close())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, config.CompMain, rec[config.LogKeyComponent])

	data, err := os.ReadFile(filepath.Join(dir, config.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetup_Level(t *testing.T) {
	restoreDefault(t)

	var console bytes.Buffer
	closer := Setup(Options{Console: &console, Dir: t.TempDir()})
	slog.Debug("hidden")
	assert.Empty(t, console.String())
	if closer != nil {
		_ = closer.Close()
	}

	console.Reset()
	closer = Setup(Options{Debug: true, Console: &console, Dir: t.TempDir()})
	slog.Debug("shown")
	assert.Contains(t, console.String(), "shown")
	assert.Contains(t, console.String(), `"source"`)
	if closer != nil {
		_ = closer.Close()
	}
}

func TestSetup_TruncatesOnRestart(t *testing.T) {
	restoreDefault(t)
	dir := t.TempDir()

	c := Setup(Options{Dir: dir})
	slog.Info("first run")
	require.NoError(t, c.Close())

	c = Setup(Options{Dir: dir})
	slog.Info("second run")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(filepath.Join(dir, config.LogFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestSetup_UnwritableDir(t *testing.T) {
	restoreDefault(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, config.FilePermUserRW))

	var console bytes.Buffer
	closer := Setup(Options{Console: &console, Dir: filepath.Join(blocker, "sub")})
	assert.Nil(t, closer)

	slog.Info("still logs")
	assert.Contains(t, console.String(), "still logs")
}
