package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleView = `
categories:
  - source:
      display_name: Fruit
    values: [Apple, Banana]
    identity: [apple, banana]
`

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func writeView(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(sampleView), 0o644))
	return path
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.File = writeView(t, "fruit.yaml")

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Database.MaxOpenConns = 0
	cfg.TUI.Theme = "nope"

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	assert.False(t, errors.As(err, &fieldErrs), "structural errors short-circuit deep checks")
}

func TestValidateDeep_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(t *testing.T, c *Config)
		wantField string
		wantErr   string
	}{
		{
			name:      "missing data file",
			mutate:    func(t *testing.T, c *Config) { c.Data.File = filepath.Join(t.TempDir(), "missing.yaml") },
			wantField: "data.file",
			wantErr:   "cannot access",
		},
		{
			name:      "data file is a directory",
			mutate:    func(t *testing.T, c *Config) { c.Data.File = t.TempDir() },
			wantField: "data.file",
			wantErr:   "is a directory",
		},
		{
			name: "data file does not parse",
			mutate: func(t *testing.T, c *Config) {
				path := filepath.Join(t.TempDir(), "bad.yaml")
				require.NoError(t, os.WriteFile(path, []byte("categorical: [oops"), 0o644))
				c.Data.File = path
			},
			wantField: "data.file",
			wantErr:   "parse data view",
		},
		{
			name:      "bad watch pattern",
			mutate:    func(_ *testing.T, c *Config) { c.Data.WatchPattern = "[*.yaml" },
			wantField: "data.watch_pattern",
			wantErr:   "invalid pattern",
		},
		{
			name:      "unknown theme",
			mutate:    func(_ *testing.T, c *Config) { c.TUI.Theme = "solarized-neon" },
			wantField: "tui.theme",
			wantErr:   "unknown theme",
		},
		{
			name: "data dir is a file",
			mutate: func(t *testing.T, c *Config) {
				path := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(path, nil, 0o644))
				c.DataDir = path
			},
			wantField: "data_dir",
			wantErr:   "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(t, cfg)

			err := cfg.ValidateDeep("")

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "config.yaml")))
}

func TestWarnings(t *testing.T) {
	t.Run("no data file", func(t *testing.T) {
		cfg := validConfig(t)
		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "no data file")
	})

	t.Run("watch pattern misses data file", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Data.File = writeView(t, "fruit.txt")
		cfg.Data.Watch = true

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, cfg.Data.WatchPattern, warnings[0].Item)
		assert.Contains(t, warnings[0].Message, "fruit.txt")
	})

	t.Run("watch pattern matches", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Data.File = writeView(t, "fruit.yaml")
		cfg.Data.Watch = true
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("single selection cap", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Data.File = writeView(t, "fruit.yaml")
		cfg.Selection.MaxSelected = 1

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Selection", warnings[0].Category)
	})
}
