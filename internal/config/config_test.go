// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackchuka/nmclean/internal/model"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.MaxDepth != -1 {
		t.Errorf("MaxDepth = %d, want -1", cfg.MaxDepth)
	}
	if cfg.TargetName != "node_modules" {
		t.Errorf("TargetName = %q, want node_modules", cfg.TargetName)
	}
	if !cfg.SkipHidden {
		t.Error("SkipHidden should default to true")
	}
	if len(cfg.Exclude) != 4 {
		t.Errorf("Exclude length = %d, want 4", len(cfg.Exclude))
	}
	if cfg.DefaultMode != "interactive" {
		t.Errorf("DefaultMode = %q, want interactive", cfg.DefaultMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_SearchConfig(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	cfg := NewConfig()
	cfg.ScanRoot = "~/code"
	cfg.MaxDepth = 3

	sc := cfg.SearchConfig()
	if sc.StartPath != filepath.Join(home, "code") {
		t.Errorf("StartPath = %q, want %q", sc.StartPath, filepath.Join(home, "code"))
	}
	if sc.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", sc.MaxDepth)
	}
	if !sc.SkipHidden {
		t.Error("SkipHidden should carry over")
	}

	sc.Exclude[0] = "changed"
	if cfg.Exclude[0] == "changed" {
		t.Error("SearchConfig should copy the exclude list")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, ""},
		{"negative depth", func(c *Config) { c.MaxDepth = -2 }, "max_depth"},
		{"empty root", func(c *Config) { c.ScanRoot = " " }, "scan_root"},
		{"unknown mode", func(c *Config) { c.DefaultMode = "everything" }, "default_mode"},
		{"mode unused", func(c *Config) { c.DefaultMode = "unused" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"target with slash", func(c *Config) { c.TargetName = "a/b" }, "target_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Mode(t *testing.T) {
	cfg := NewConfig()
	cfg.DefaultMode = "all"
	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode() error = %v", err)
	}
	if mode != model.ModeAll {
		t.Errorf("Mode() = %v, want all", mode)
	}
}

func TestLoad_CreatesDefaultIfMissing(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxDepth != -1 {
		t.Errorf("MaxDepth = %d, want -1", cfg.MaxDepth)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := []byte(`
scan_root: /srv/projects
max_depth: 5
exclude:
  - "*/archive/*"
default_mode: unused
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ScanRoot != "/srv/projects" {
		t.Errorf("ScanRoot = %q, want /srv/projects", cfg.ScanRoot)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.MaxDepth)
	}
	if len(cfg.Exclude) != 1 {
		t.Errorf("Exclude length = %d, want 1", len(cfg.Exclude))
	}
	if cfg.DefaultMode != "unused" {
		t.Errorf("DefaultMode = %q, want unused", cfg.DefaultMode)
	}
	if cfg.TargetName != "node_modules" {
		t.Errorf("TargetName = %q, want default node_modules", cfg.TargetName)
	}
	if !cfg.SkipHidden {
		t.Error("SkipHidden should keep its default when absent from the file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("max_depth: [nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSave_and_Load_Roundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "dir", "config.yaml")

	cfg := NewConfig()
	cfg.ScanRoot = "/home/user/code"
	cfg.MaxDepth = 7
	cfg.SkipHidden = false
	cfg.Exclude = []string{"*/vendor/*"}
	cfg.BackupDir = "/tmp/backups"

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.ScanRoot != "/home/user/code" {
		t.Errorf("ScanRoot = %q, want /home/user/code", loaded.ScanRoot)
	}
	if loaded.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", loaded.MaxDepth)
	}
	if loaded.SkipHidden {
		t.Error("SkipHidden should be false")
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "*/vendor/*" {
		t.Errorf("Exclude = %v, want [*/vendor/*]", loaded.Exclude)
	}
	if loaded.BackupDir != "/tmp/backups" {
		t.Errorf("BackupDir = %q, want /tmp/backups", loaded.BackupDir)
	}
}

func TestSave_CreatesConfigDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "nmclean")
	configPath := filepath.Join(configDir, "config.yaml")

	if err := Save(NewConfig(), configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(configDir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", configDir)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde with path", "~/code", filepath.Join(home, "code")},
		{"absolute path unchanged", "/usr/local/bin", "/usr/local/bin"},
		{"empty string", "", ""},
		{"relative path unchanged", "some/path", "some/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		got := DefaultConfigPath()
		expected := "/custom/config/nmclean/config.yaml"
		if got != expected {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, expected)
		}
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		got := DefaultConfigPath()
		expected := filepath.Join(home, ".config", "nmclean", "config.yaml")
		if got != expected {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, expected)
		}
	})
}
