package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility, the data file's contents, the theme name, and
// the watch pattern. The configPath argument specifies the config file
// location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("data.file", c.Data.File, dataFileReadable),
		criterio.Run("data.watch_pattern", c.Data.WatchPattern, watchPatternValid),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Data.File == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Data",
			Message:  "no data file configured; pass one with --data-file",
		})
	}

	if c.Data.Watch && c.Data.File != "" && doublestar.ValidatePattern(c.Data.WatchPattern) {
		base := filepath.Base(c.Data.File)
		if ok, _ := doublestar.Match(c.Data.WatchPattern, base); !ok {
			warnings = append(warnings, ValidationWarning{
				Category: "Data",
				Item:     c.Data.WatchPattern,
				Message:  fmt.Sprintf("watch pattern does not match %s; changes will be ignored", base),
			})
		}
	}

	if c.Selection.MaxSelected == 1 {
		warnings = append(warnings, ValidationWarning{
			Category: "Selection",
			Message:  "max_selected is 1; multi-select clicks keep only the first identity",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// dataFileReadable validates that the data file exists and decodes.
func dataFileReadable(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if _, err := dataview.ReadFile(path); err != nil {
		return err
	}
	return nil
}

func watchPatternValid(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid pattern %q", pattern)
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}
