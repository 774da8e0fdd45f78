package app

import (
	"github.com/henri123lemoine/geokit/internal/launcher"
	"github.com/henri123lemoine/geokit/internal/netinfo"
)

// Message types for the bubbletea app.

// AdaptersLoadedMsg is sent when network adapters are loaded.
type AdaptersLoadedMsg struct {
	Adapters []netinfo.Adapter
	Err      error
}

// IndexLoadedMsg is sent when the launcher index is loaded, either from
// the cache or from a fresh scan.
type IndexLoadedMsg struct {
	Index  *launcher.Index
	Cached bool
	Err    error
}

// LaunchedMsg is sent when a launcher entry has been started.
type LaunchedMsg struct {
	Entry launcher.Entry
	Err   error
}

// ClipboardMsg is sent when a clipboard write completes. Status is the
// message to show on success.
type ClipboardMsg struct {
	Status string
	Err    error
}

// ThemeSavedMsg is sent when the applied theme has been written to the
// config file.
type ThemeSavedMsg struct {
	Path string
	Err  error
}

// PongTickMsg advances the game. Ticks whose Generation does not match the
// running game are dropped.
type PongTickMsg struct {
	Generation int
}
