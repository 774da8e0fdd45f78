// Package ui provides rendering functions for the geokit terminal UI.
//
// Render takes RenderParams and produces the terminal output for the
// active tab. Styles are Lipgloss definitions rebuilt by ApplyTheme.
// Rendering has no side effects and holds no state of its own.
package ui
