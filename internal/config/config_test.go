package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.StartTab != "network" {
		t.Errorf("Expected start tab 'network', got %q", cfg.General.StartTab)
	}

	if cfg.Launcher.FolderName != "Program Launcher" {
		t.Errorf("Expected folder 'Program Launcher', got %q", cfg.Launcher.FolderName)
	}

	if cfg.Launcher.UseCache != true {
		t.Error("Expected UseCache to be true")
	}

	if cfg.Pong.TickMS != 15 || cfg.Pong.ServeDelayMS != 1000 {
		t.Errorf("Unexpected pong timing: %+v", cfg.Pong)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			mutate:      func(*Config) {},
			wantWarning: false,
		},
		{
			name:        "invalid template variable",
			mutate:      func(c *Config) { c.Launcher.OpenCommand = "wine {invalid_var}" },
			wantWarning: true,
		},
		{
			name:        "valid template variables",
			mutate:      func(c *Config) { c.Launcher.OpenCommand = "cd {folder} && wine {path} # {name}" },
			wantWarning: false,
		},
		{
			name:        "invalid start tab",
			mutate:      func(c *Config) { c.General.StartTab = "settings" },
			wantWarning: true,
		},
		{
			name:        "start tab is case-insensitive",
			mutate:      func(c *Config) { c.General.StartTab = "Pong" },
			wantWarning: false,
		},
		{
			name:        "invalid network source",
			mutate:      func(c *Config) { c.Network.Source = "wmi" },
			wantWarning: true,
		},
		{
			name:        "invalid search mode",
			mutate:      func(c *Config) { c.Launcher.Search = "regex" },
			wantWarning: true,
		},
		{
			name:        "folder name with separator",
			mutate:      func(c *Config) { c.Launcher.FolderName = "a/b" },
			wantWarning: true,
		},
		{
			name:        "invalid theme color",
			mutate:      func(c *Config) { c.Theme.Primary = "blue" },
			wantWarning: true,
		},
		{
			name:        "invalid tick",
			mutate:      func(c *Config) { c.Pong.TickMS = -1 },
			wantWarning: true,
		},
		{
			name:        "zero tick",
			mutate:      func(c *Config) { c.Pong.TickMS = 0 },
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings := cfg.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[general]
start_tab = "pong"

[launcher]
open_command = "wine {path}"

[theme]
primary = "#FF0000"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.General.StartTab != "pong" {
		t.Errorf("Expected start tab 'pong', got %q", cfg.General.StartTab)
	}
	if cfg.Launcher.OpenCommand != "wine {path}" {
		t.Errorf("Expected open command 'wine {path}', got %q", cfg.Launcher.OpenCommand)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Expected primary '#FF0000', got %q", cfg.Theme.Primary)
	}

	// Non-specified values keep defaults
	if cfg.Theme.Background != "#F5F5F5" {
		t.Errorf("Expected default background, got %q", cfg.Theme.Background)
	}
	if cfg.Launcher.UseCache != true {
		t.Error("Expected UseCache to remain true (default) when not specified in config")
	}
	if cfg.Keys.Quit != "ctrl+c,esc" {
		t.Errorf("Expected default quit keys, got %q", cfg.Keys.Quit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.General.StartTab != "network" {
		t.Error("Expected defaults for a missing file")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nstart_tab = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Theme.Border = "double"
	cfg.Network.Source = "command"
	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Theme.Border != "double" || loaded.Network.Source != "command" {
		t.Errorf("Saved values not loaded back: %+v", loaded)
	}
}

func TestDefaultConfigFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateDefaultConfigFileAt(path); err != nil {
		t.Fatalf("CreateDefaultConfigFileAt() error: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if warnings := cfg.Validate(); len(warnings) > 0 {
		t.Errorf("generated config has warnings: %v", warnings)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "{path}, {name}, {folder}") {
		t.Error("generated config should document template variables")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path := ConfigPath()

	if path != filepath.Join("/tmp/xdg", "geokit", "config.toml") {
		t.Errorf("Expected XDG path, got %q", path)
	}
}

func TestConfigPathHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/test")

	path := ConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "geokit" {
		t.Errorf("Expected geokit dir, got %q", path)
	}
}

func TestResolveBaseDir(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ResolveBaseDir() == "" {
		t.Error("Empty base_dir should resolve to the executable directory")
	}

	cfg.General.BaseDir = "/opt/tools"
	if got := cfg.ResolveBaseDir(); got != "/opt/tools" {
		t.Errorf("Expected /opt/tools, got %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg.General.BaseDir = "~/apps"
	if got := cfg.ResolveBaseDir(); got != filepath.Join(home, "apps") {
		t.Errorf("Expected ~ expansion, got %q", got)
	}
}

func TestStartTabIndex(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StartTabIndex() != 0 {
		t.Errorf("Expected 0, got %d", cfg.StartTabIndex())
	}
	cfg.General.StartTab = "Color"
	if cfg.StartTabIndex() != 4 {
		t.Errorf("Expected 4, got %d", cfg.StartTabIndex())
	}
	cfg.General.StartTab = "bogus"
	if cfg.StartTabIndex() != 0 {
		t.Errorf("Expected fallback 0, got %d", cfg.StartTabIndex())
	}
}

func TestExtractTemplateVars(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"wine {path}", []string{"{path}"}},
		{"no vars here", nil},
		{"{a} {b} {c}", []string{"{a}", "{b}", "{c}"}},
		{"{}", nil}, // Empty braces are not valid template vars
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := extractTemplateVars(tt.input)
			if len(got) != len(tt.expected) {
				t.Errorf("extractTemplateVars(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
