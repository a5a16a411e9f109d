// Package main - config.go loads the tray launcher configuration.
//
// The configuration is a JSON file under the XDG config directory. Optional
// numeric fields are pointers so that "not specified" (use the default) can be
// told apart from an explicit value such as a retention of 0 days.
//
// A missing file is not an error: an example configuration is written and
// used, so the launcher always starts.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/chadsten/osdialog"
)

const (
	configRelPath = "osdialog/tray.json"

	defaultHistorySize      = 5
	defaultLogRetentionDays = 7
)

// Config drives the dialogs offered by the tray menu.
type Config struct {
	StartDir         string                `json:"start_dir"`                                           // initial folder for every file and folder dialog
	DefaultFile      string                `json:"default_file,omitempty"`                              // pre-filled name for open and save
	DefaultExt       string                `json:"default_ext,omitempty" validate:"excludesall=:;0x2C"` // appended to saved names without one
	Filters          []osdialog.FilterType `json:"filters" validate:"dive"`                             // file types offered before "All Files"
	HistorySize      *int                  `json:"history_size,omitempty" validate:"omitempty,min=1,max=50"`
	LogRetentionDays *int                  `json:"log_retention_days,omitempty" validate:"omitempty,min=0"`
}

// GetHistorySize returns how many results the tray remembers, 5 when unset.
func (c *Config) GetHistorySize() int {
	if c.HistorySize == nil {
		return defaultHistorySize
	}
	return *c.HistorySize
}

// GetLogRetentionDays returns how many days of tray logs to keep, 7 when
// unset.
func (c *Config) GetLogRetentionDays() int {
	if c.LogRetentionDays == nil {
		return defaultLogRetentionDays
	}
	return *c.LogRetentionDays
}

// exampleConfig is written on first run.
func exampleConfig() *Config {
	startDir := xdg.UserDirs.Documents
	if startDir == "" {
		startDir = xdg.Home
	}
	return &Config{
		StartDir:    startDir,
		DefaultFile: "untitled",
		DefaultExt:  "txt",
		Filters: []osdialog.FilterType{
			{Display: "Text", Extension: "txt"},
			{Display: "Images", Extension: "png"},
		},
	}
}

// configPath returns the configuration file location, creating its parent
// directory when needed.
func configPath() (string, error) {
	return xdg.ConfigFile(configRelPath)
}

// loadConfig reads and validates the configuration at path. When the file
// does not exist the example configuration is saved there and returned.
func loadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		config := exampleConfig()
		if err := saveConfig(fs, path, config); err != nil {
			return nil, fmt.Errorf("write example config: %w", err)
		}
		return config, normalizePaths(config)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	if err := normalizePaths(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// saveConfig writes config as indented JSON, creating parent directories.
func saveConfig(fs afero.Fs, path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateConfig checks the struct tags on Config and on every configured
// FilterType. The history size must be within 1 to 50, the retention must
// not be negative, and extensions must not contain filter separators.
func validateConfig(config *Config) error {
	return validate.Struct(config)
}

// normalizePaths makes StartDir absolute and clean. An empty StartDir is
// left empty so dialogs open wherever the OS chooses.
func normalizePaths(config *Config) error {
	if config.StartDir == "" {
		return nil
	}
	abs, err := filepath.Abs(config.StartDir)
	if err != nil {
		return fmt.Errorf("resolve start_dir: %w", err)
	}
	config.StartDir = filepath.Clean(abs)
	return nil
}
