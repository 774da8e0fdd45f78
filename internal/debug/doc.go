// Package debug provides debug logging functionality for geokit.
//
// When enabled via the --debug flag, it logs adapter enumeration,
// launcher scans and UI events to a file, since the terminal itself is
// owned by the UI.
package debug
