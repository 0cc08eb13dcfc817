package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathIsNotAnError(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.Sink)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spantrace.yaml")
	content := "sink: stderr\nflush_interval: 10ms\nmock_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "stderr", cfg.Sink)
	require.Equal(t, 10*time.Millisecond, cfg.FlushInterval)
	require.True(t, cfg.MockMode)
}

func TestTraceEnvOverridesSink(t *testing.T) {
	t.Setenv("TRACE", "1")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "1", cfg.Sink)
}

func TestValidateRejectsNegativeFlushInterval(t *testing.T) {
	cfg := Config{FlushInterval: -1}
	require.Error(t, cfg.Validate())
}
