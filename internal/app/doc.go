// Package app provides the main Bubble Tea application model for geokit.
//
// It owns the tab state machine, routes key presses to the active tab and
// runs the blocking work (adapter queries, launcher scans, clipboard writes,
// config saves, game ticks) as tea.Cmds whose results come back as messages.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View) and manages all application state.
package app
