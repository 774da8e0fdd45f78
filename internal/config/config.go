// Package config handles geokit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/geokit/internal/launcher"
	"github.com/henri123lemoine/geokit/internal/theme"
)

// Tabs lists the tab identifiers accepted by general.start_tab, in
// display order.
var Tabs = []string{"network", "launcher", "base", "units", "color", "theme", "pong"}

// Config represents geokit configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Network  NetworkConfig  `toml:"network"`
	Launcher LauncherConfig `toml:"launcher"`
	Theme    theme.Theme    `toml:"theme"`
	Pong     PongConfig     `toml:"pong"`
	Keys     KeysConfig     `toml:"keys"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// Directory that contains the launcher folder (empty = next to the executable)
	BaseDir string `toml:"base_dir"`

	// Tab shown on startup
	StartTab string `toml:"start_tab"`
}

// NetworkConfig contains settings for the network tab.
type NetworkConfig struct {
	// Where adapter data comes from: "system" or "command"
	Source string `toml:"source"`
}

// LauncherConfig contains settings for the program launcher.
type LauncherConfig struct {
	// Name of the folder scanned for programs
	FolderName string `toml:"folder_name"`

	// Search mode: "substring" or "fuzzy"
	Search string `toml:"search"`

	// Command used to launch entries (empty = start directly / OS opener)
	// Template variables: {path}, {name}, {folder}
	OpenCommand string `toml:"open_command"`

	// Show the cached index while rescanning
	UseCache bool `toml:"use_cache"`
}

// PongConfig contains game timing.
type PongConfig struct {
	// Milliseconds between frames
	TickMS int `toml:"tick_ms"`

	// Pause after a point, in milliseconds
	ServeDelayMS int `toml:"serve_delay_ms"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	NextTab string `toml:"next_tab"`
	PrevTab string `toml:"prev_tab"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Left    string `toml:"left"`
	Right   string `toml:"right"`
	Enter   string `toml:"enter"`
	Copy    string `toml:"copy"`
	CopyAlt string `toml:"copy_alt"`
	Refresh string `toml:"refresh"`
	Help    string `toml:"help"`
	Quit    string `toml:"quit"`

	PaddleUp   string `toml:"paddle_up"`
	PaddleDown string `toml:"paddle_down"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			BaseDir:  "",
			StartTab: "network",
		},
		Network: NetworkConfig{
			Source: "system",
		},
		Launcher: LauncherConfig{
			FolderName:  launcher.DefaultFolderName,
			Search:      launcher.SearchSubstring,
			OpenCommand: "",
			UseCache:    true,
		},
		Theme: theme.Default(),
		Pong: PongConfig{
			TickMS:       15,
			ServeDelayMS: 1000,
		},
		Keys: KeysConfig{
			NextTab: "tab",
			PrevTab: "shift+tab",
			Up:      "up",
			Down:    "down",
			Left:    "left",
			Right:   "right",
			Enter:   "enter",
			Copy:    "ctrl+y",
			CopyAlt: "ctrl+u",
			Refresh: "ctrl+r",
			Help:    "f1",
			Quit:    "ctrl+c,esc",

			PaddleUp:   "w",
			PaddleDown: "s",
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/geokit/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "geokit", "config.toml")
	}
	// Default to ~/.config on Unix (including macOS)
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "geokit", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "geokit", "config.toml")
	}
	return filepath.Join(configDir, "geokit", "config.toml")
}

// IsFirstRun returns true if no config file exists.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return os.IsNotExist(err)
}

// ResolveBaseDir returns the directory that holds the launcher folder.
// An empty base_dir means the directory of the running executable,
// falling back to the working directory. A leading "~" is expanded.
func (c *Config) ResolveBaseDir() string {
	dir := c.General.BaseDir
	if dir == "" {
		if exe, err := os.Executable(); err == nil {
			return filepath.Dir(exe)
		}
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

// StartTabIndex returns the index of general.start_tab in Tabs, or 0.
func (c *Config) StartTabIndex() int {
	for i, t := range Tabs {
		if strings.EqualFold(t, c.General.StartTab) {
			return i
		}
	}
	return 0
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the file, so
	// unspecified fields keep their defaults (including booleans).
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path.
func SaveToPath(cfg *Config, path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile creates a default config file with comments.
func CreateDefaultConfigFile() error {
	return CreateDefaultConfigFileAt(ConfigPath())
}

// CreateDefaultConfigFileAt writes the commented default config to path.
func CreateDefaultConfigFileAt(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(generateDefaultConfigContent()), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# Geokit Configuration\n\n")

	b.WriteString("[general]\n")
	b.WriteString("# Directory containing the launcher folder\n")
	b.WriteString("# Leave empty to use the directory of the geokit executable.\n")
	fmt.Fprintf(&b, "base_dir = %q\n", cfg.General.BaseDir)
	fmt.Fprintf(&b, "# Tab shown on startup: %s\n", strings.Join(Tabs, ", "))
	fmt.Fprintf(&b, "start_tab = %q\n\n", cfg.General.StartTab)

	b.WriteString("[network]\n")
	b.WriteString("# \"system\" reads interfaces directly, \"command\" parses ipconfig/ip/ifconfig output\n")
	fmt.Fprintf(&b, "source = %q\n\n", cfg.Network.Source)

	b.WriteString("[launcher]\n")
	b.WriteString("# Folder scanned (recursively) for programs and documents\n")
	fmt.Fprintf(&b, "folder_name = %q\n", cfg.Launcher.FolderName)
	b.WriteString("# Search mode: \"substring\" or \"fuzzy\"\n")
	fmt.Fprintf(&b, "search = %q\n", cfg.Launcher.Search)
	b.WriteString("# Command used to launch entries (default: run programs, open documents)\n")
	b.WriteString("# Template variables: {path}, {name}, {folder}\n")
	b.WriteString("# Variables are shell-escaped for safety.\n")
	b.WriteString("# open_command = \"wine {path}\"\n")
	b.WriteString("# Show the last scan immediately while rescanning\n")
	fmt.Fprintf(&b, "use_cache = %v\n\n", cfg.Launcher.UseCache)

	b.WriteString("[theme]\n")
	b.WriteString("# Colors as #RRGGBB or #RGB\n")
	fmt.Fprintf(&b, "background = %q\n", cfg.Theme.Background)
	fmt.Fprintf(&b, "card = %q\n", cfg.Theme.Card)
	fmt.Fprintf(&b, "primary = %q\n", cfg.Theme.Primary)
	fmt.Fprintf(&b, "secondary = %q\n", cfg.Theme.Secondary)
	fmt.Fprintf(&b, "text = %q\n", cfg.Theme.Text)
	fmt.Fprintf(&b, "# Border style: %s\n", strings.Join(theme.Borders, ", "))
	fmt.Fprintf(&b, "border = %q\n\n", cfg.Theme.Border)

	b.WriteString("[pong]\n")
	fmt.Fprintf(&b, "tick_ms = %d\n", cfg.Pong.TickMS)
	fmt.Fprintf(&b, "serve_delay_ms = %d\n\n", cfg.Pong.ServeDelayMS)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# next_tab = %q\n", cfg.Keys.NextTab)
	fmt.Fprintf(&b, "# prev_tab = %q\n", cfg.Keys.PrevTab)
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# left = %q\n", cfg.Keys.Left)
	fmt.Fprintf(&b, "# right = %q\n", cfg.Keys.Right)
	fmt.Fprintf(&b, "# enter = %q\n", cfg.Keys.Enter)
	fmt.Fprintf(&b, "# copy = %q\n", cfg.Keys.Copy)
	fmt.Fprintf(&b, "# copy_alt = %q\n", cfg.Keys.CopyAlt)
	fmt.Fprintf(&b, "# refresh = %q\n", cfg.Keys.Refresh)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)
	b.WriteString("# Left paddle in the pong tab\n")
	fmt.Fprintf(&b, "# paddle_up = %q\n", cfg.Keys.PaddleUp)
	fmt.Fprintf(&b, "# paddle_down = %q\n", cfg.Keys.PaddleDown)

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	validVars := []string{"{path}", "{name}", "{folder}"}
	for _, v := range extractTemplateVars(c.Launcher.OpenCommand) {
		found := false
		for _, valid := range validVars {
			if v == valid {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("Unknown template variable in launcher.open_command: %s", v))
		}
	}

	if c.General.StartTab != "" {
		found := false
		for _, t := range Tabs {
			if strings.EqualFold(t, c.General.StartTab) {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("Invalid value for general.start_tab: %s (expected one of %s)", c.General.StartTab, strings.Join(Tabs, ", ")))
		}
	}

	if c.Network.Source != "" &&
		c.Network.Source != "system" &&
		c.Network.Source != "command" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for network.source: %s (expected system or command)", c.Network.Source))
	}

	if c.Launcher.Search != "" &&
		c.Launcher.Search != launcher.SearchSubstring &&
		c.Launcher.Search != launcher.SearchFuzzy {
		warnings = append(warnings, fmt.Sprintf("Invalid value for launcher.search: %s (expected substring or fuzzy)", c.Launcher.Search))
	}

	if strings.ContainsAny(c.Launcher.FolderName, `/\`) {
		warnings = append(warnings, fmt.Sprintf("launcher.folder_name should be a single folder name, got %s", c.Launcher.FolderName))
	}

	if err := c.Theme.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("Invalid theme: %v", err))
	}

	if c.Pong.TickMS < 1 || c.Pong.TickMS > 1000 {
		warnings = append(warnings, fmt.Sprintf("pong.tick_ms must be 1-1000, got %d", c.Pong.TickMS))
	}
	if c.Pong.ServeDelayMS < 0 {
		warnings = append(warnings, fmt.Sprintf("pong.serve_delay_ms must not be negative, got %d", c.Pong.ServeDelayMS))
	}

	return warnings
}

// extractTemplateVars extracts template variables from a string.
func extractTemplateVars(s string) []string {
	re := regexp.MustCompile(`\{[^}]+\}`)
	return re.FindAllString(s, -1)
}
