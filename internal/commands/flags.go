package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/colonyops/chiclet/internal/chiclet"
	"github.com/colonyops/chiclet/internal/core/config"
)

const appName = "chiclet"

// Flags holds the global flag values shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	DataFile   string // overrides data.file

	// Config is loaded in the root Before hook.
	Config *config.Config
}

// OpenApp binds the stores to the configured data file. Callers close the
// returned App.
func (f *Flags) OpenApp(ctx context.Context) (*chiclet.App, error) {
	return chiclet.Open(ctx, f.Config, f.Config.Data.File)
}

// DefaultConfigPath is $XDG_CONFIG_HOME/chiclet/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.yaml")
}

// DefaultDataDir is $XDG_DATA_HOME/chiclet.
func DefaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appName)
}

// xdgDir reads env, falling back to a path under the home directory.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}
