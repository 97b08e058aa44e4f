// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackchuka/nmclean/internal/model"
)

type Config struct {
	// Scanning
	ScanRoot   string   `yaml:"scan_root"`
	MaxDepth   int      `yaml:"max_depth"`
	TargetName string   `yaml:"target_name"`
	SkipHidden bool     `yaml:"skip_hidden"`
	Exclude    []string `yaml:"exclude"`

	// Removal
	DefaultMode string `yaml:"default_mode"`
	BackupDir   string `yaml:"backup_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func NewConfig() *Config {
	return &Config{
		ScanRoot:   "~",
		MaxDepth:   -1,
		TargetName: model.DefaultTargetName,
		SkipHidden: true,
		Exclude: []string{
			"*/node_modules/node_modules/*",
			"*/snap/*",
			"*/AppData/*",
			"*/Library/*",
		},
		DefaultMode: model.ModeInteractive.String(),
		LogLevel:    "info",
	}
}

// SearchConfig converts the scan settings, expanding ~ in the root.
func (c *Config) SearchConfig() model.SearchConfig {
	exclude := make([]string, len(c.Exclude))
	copy(exclude, c.Exclude)
	return model.SearchConfig{
		StartPath:  ExpandHome(c.ScanRoot),
		MaxDepth:   c.MaxDepth,
		Exclude:    exclude,
		TargetName: c.TargetName,
		SkipHidden: c.SkipHidden,
	}
}

// Mode parses DefaultMode.
func (c *Config) Mode() (model.RemovalMode, error) {
	return model.ParseRemovalMode(c.DefaultMode)
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ScanRoot) == "" {
		errs = append(errs, errors.New("scan_root must not be empty"))
	}
	if c.MaxDepth < -1 {
		errs = append(errs, fmt.Errorf("max_depth must be -1 (unlimited) or >= 0, got %d", c.MaxDepth))
	}
	if strings.ContainsRune(c.TargetName, '/') {
		errs = append(errs, fmt.Errorf("target_name must be a single directory name, got %q", c.TargetName))
	}
	if _, err := c.Mode(); err != nil {
		errs = append(errs, fmt.Errorf("default_mode: %w", err))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	return errors.Join(errs...)
}
