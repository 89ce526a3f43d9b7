package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Engine.MaxForwardNodes)
	assert.Equal(t, 0, cfg.Engine.MaxBackwardNodes)
	assert.True(t, cfg.Engine.PruneBackward)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "phonefwd", cfg.Metrics.Namespace)

	assert.Equal(t, cfg, Default())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
engine:
  max_forward_nodes: 1000
  prune_backward: false
log:
  level: debug
  format: json
metrics:
  enabled: true
  namespace: directory
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Engine.MaxForwardNodes)
	assert.Equal(t, 0, cfg.Engine.MaxBackwardNodes)
	assert.False(t, cfg.Engine.PruneBackward)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "directory", cfg.Metrics.Namespace)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PHFWD_ENGINE_MAX_BACKWARD_NODES", "42")
	t.Setenv("PHFWD_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Engine.MaxBackwardNodes)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative forward cap", mutate: func(c *Config) { c.Engine.MaxForwardNodes = -1 }, wantErr: true},
		{name: "negative backward cap", mutate: func(c *Config) { c.Engine.MaxBackwardNodes = -5 }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "metrics without namespace", mutate: func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Namespace = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
