package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "*.{yaml,yml,json}", cfg.Data.WatchPattern)
	assert.Equal(t, 150*time.Millisecond, cfg.Data.Debounce)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
	assert.Equal(t, filepath.Join(dataDir, "chiclet.db"), cfg.DatabaseFile())
	assert.Equal(t, filepath.Join(dataDir, "chiclet.log"), cfg.LogFile())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Data, cfg.Data)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
data:
  file: views/fruit.yaml
  page_size: 25
  watch: true
  debounce: 1s
selection:
  max_selected: 3
tui:
  theme: paper
`)
	dataDir := t.TempDir()

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir, "data dir always comes from the caller")
	assert.Equal(t, filepath.Join(filepath.Dir(path), "views", "fruit.yaml"), cfg.Data.File)
	assert.Equal(t, 25, cfg.Data.PageSize)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, time.Second, cfg.Data.Debounce)
	assert.Equal(t, "*.{yaml,yml,json}", cfg.Data.WatchPattern, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.Selection.MaxSelected)
	assert.Equal(t, "paper", cfg.TUI.Theme)
}

func TestLoad_AbsoluteDataFileKept(t *testing.T) {
	path := writeConfig(t, "data:\n  file: /srv/view.json\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/srv/view.json", cfg.Data.File)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "data: [unterminated")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "negative page size", mutate: func(c *Config) { c.Data.PageSize = -1 }, wantErr: "page_size"},
		{name: "negative debounce", mutate: func(c *Config) { c.Data.Debounce = -time.Second }, wantErr: "debounce"},
		{name: "negative max selected", mutate: func(c *Config) { c.Selection.MaxSelected = -2 }, wantErr: "max_selected"},
		{name: "negative busy timeout", mutate: func(c *Config) { c.Database.BusyTimeout = -1 }, wantErr: "busy_timeout"},
		{name: "no open conns", mutate: func(c *Config) { c.Database.MaxOpenConns = 0 }, wantErr: "max_open_conns"},
		{name: "idle exceeds open", mutate: func(c *Config) { c.Database.MaxIdleConns = 10 }, wantErr: "max_idle_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
