package app

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/geokit/internal/config"
	"github.com/henri123lemoine/geokit/internal/exec"
	"github.com/henri123lemoine/geokit/internal/launcher"
	"github.com/henri123lemoine/geokit/internal/netinfo"
)

const (
	adapterTimeout = 10 * time.Second
	scanTimeout    = 2 * time.Minute
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// launchEntry is replaced in tests.
var launchEntry = exec.Launch

// saveConfig is replaced in tests.
var saveConfig = config.SaveToPath

// Commands

func loadAdapters(src netinfo.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adapterTimeout)
		defer cancel()
		raw, err := src.Adapters(ctx)
		return AdaptersLoadedMsg{Adapters: netinfo.Summarize(raw), Err: err}
	}
}

func loadCachedIndex(root string) tea.Cmd {
	return func() tea.Msg {
		return IndexLoadedMsg{Index: launcher.LoadCache(root), Cached: true}
	}
}

func scanIndex(root string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		var (
			idx *launcher.Index
			err error
		)
		if useCache {
			idx, err = launcher.ScanAndCache(ctx, root)
		} else {
			idx, err = launcher.Scan(ctx, root)
		}
		return IndexLoadedMsg{Index: idx, Err: err}
	}
}

func launch(command string, e launcher.Entry) tea.Cmd {
	return func() tea.Msg {
		return LaunchedMsg{Entry: e, Err: launchEntry(command, e)}
	}
}

func copyToClipboard(value, status string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Status: status, Err: writeClipboard(value)}
	}
}

func saveTheme(cfg config.Config, path string) tea.Cmd {
	return func() tea.Msg {
		return ThemeSavedMsg{Path: path, Err: saveConfig(&cfg, path)}
	}
}

func pongTick(generation int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return PongTickMsg{Generation: generation}
	})
}

// Helper functions

// placeholders are display values that must never reach the clipboard.
var placeholders = []string{
	"",
	"Retrieving...",
	netinfo.NotAvailable,
	netinfo.NotFound,
	"Result will appear here",
	"Select type",
	"Ready to convert",
}

// copyable reports whether a displayed value holds real data.
func copyable(value string) bool {
	value = strings.TrimSpace(value)
	for _, p := range placeholders {
		if value == p {
			return false
		}
	}
	return !strings.Contains(value, "Error")
}
