package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Transport.Host)
	require.Equal(t, "8980", cfg.Transport.Port)
	require.Equal(t, 500, cfg.Engine.MaxChanges)
	require.Equal(t, "threshold", cfg.Engine.ChunkMode)
	require.Equal(t, 20*time.Millisecond, cfg.SettleDuration())
	require.Equal(t, 30*time.Second, cfg.TimeoutDuration())
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batchmut.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[transport]
port = "9000"

[engine]
max_changes = 10
chunk_mode = "per-operation"
chunk_size = 50
settle_millis = 20
timeout_seconds = 30
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Transport.Port)
	require.Equal(t, 10, cfg.Engine.MaxChanges)
	require.Equal(t, "per-operation", cfg.Engine.ChunkMode)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batchmut.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[transport]
port = "9000"
`), 0o644))

	t.Setenv("BATCHMUT_PORT", "9999")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.Transport.Port)
}

func TestEnvMaxChangesMustBePositive(t *testing.T) {
	t.Setenv("BATCHMUT_MAX_CHANGES", "0")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 500, cfg.Engine.MaxChanges, "a non-positive override must be ignored")
}

func TestValidateRejectsBadChunkMode(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{ChunkMode: "bogus", MaxChanges: 1, ChunkSize: 1}, Log: LogConfig{Level: "info"}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveMaxChanges(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{ChunkMode: "threshold", MaxChanges: 0, ChunkSize: 1}, Log: LogConfig{Level: "info"}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveChunkSize(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{ChunkMode: "threshold", MaxChanges: 1, ChunkSize: 0}, Log: LogConfig{Level: "info"}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{ChunkMode: "threshold", MaxChanges: 1, ChunkSize: 1}, Log: LogConfig{Level: "verbose"}}
	require.Error(t, cfg.Validate())
}
