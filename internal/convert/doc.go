// Package convert provides the pure conversions behind the converter tabs.
//
// It contains integer base conversion (binary, octal, decimal, hex),
// linear unit scaling through a per-category base unit, Celsius-pivot
// temperature conversion, and RGB <-> HEX color packing. Nothing here
// touches the terminal; the app package formats results and errors for
// display.
package convert
