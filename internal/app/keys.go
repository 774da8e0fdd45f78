package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/geokit/internal/config"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Tabs
	NextTab key.Binding
	PrevTab key.Binding
	Tabs    []key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Enter   key.Binding
	Copy    key.Binding
	CopyAlt key.Binding
	Refresh key.Binding

	// Pong
	PaddleUp   key.Binding
	PaddleDown key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMapFromConfig(&config.DefaultConfig().Keys)
}

// KeyMapFromConfig creates a KeyMap from config settings. Empty settings
// keep the default binding.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	def := config.DefaultConfig().Keys

	km := KeyMap{
		NextTab:    binding(cfg.NextTab, def.NextTab, "next tab"),
		PrevTab:    binding(cfg.PrevTab, def.PrevTab, "previous tab"),
		Up:         binding(cfg.Up, def.Up, "up"),
		Down:       binding(cfg.Down, def.Down, "down"),
		Left:       binding(cfg.Left, def.Left, "previous option"),
		Right:      binding(cfg.Right, def.Right, "next option"),
		Enter:      binding(cfg.Enter, def.Enter, "run action"),
		Copy:       binding(cfg.Copy, def.Copy, "copy"),
		CopyAlt:    binding(cfg.CopyAlt, def.CopyAlt, "copy alternate"),
		Refresh:    binding(cfg.Refresh, def.Refresh, "refresh"),
		PaddleUp:   binding(cfg.PaddleUp, def.PaddleUp, "left paddle up"),
		PaddleDown: binding(cfg.PaddleDown, def.PaddleDown, "left paddle down"),
		Help:       binding(cfg.Help, def.Help, "help"),
		Quit:       binding(cfg.Quit, def.Quit, "quit"),
	}

	// Number keys jump to a tab; they are only honored when no text
	// field has focus.
	for i := range config.Tabs {
		n := fmt.Sprint(i + 1)
		km.Tabs = append(km.Tabs, key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, config.Tabs[i]),
		))
	}

	return km
}

// binding builds a key.Binding from a comma-separated key list, falling
// back to def when keys is empty.
func binding(keys, def, desc string) key.Binding {
	if strings.TrimSpace(keys) == "" {
		keys = def
	}
	return key.NewBinding(
		key.WithKeys(parseKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

// parseKeys parses a comma-separated list of keys.
func parseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// helpKeys returns the display form of a binding's keys.
func helpKeys(b key.Binding) string {
	return strings.ReplaceAll(b.Help().Key, ",", "/")
}
