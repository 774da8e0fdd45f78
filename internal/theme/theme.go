// Package theme defines the user-customizable color theme.
package theme

import (
	"fmt"

	"github.com/henri123lemoine/geokit/internal/convert"
)

// Border styles selectable in the customizer.
var Borders = []string{"rounded", "normal", "thick", "double", "hidden"}

// Theme holds the customizable colors and border style.
type Theme struct {
	Background string `toml:"background"`
	Card       string `toml:"card"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Text       string `toml:"text"`
	Border     string `toml:"border"`
}

// Default returns the stock theme.
func Default() Theme {
	return Theme{
		Background: "#F5F5F5",
		Card:       "#FFFFFF",
		Primary:    "#007BFF",
		Secondary:  "#28A745",
		Text:       "#333333",
		Border:     "rounded",
	}
}

// Field is one editable theme color.
type Field struct {
	Label string
	Get   func(*Theme) string
	Set   func(*Theme, string)
}

// Fields lists the editable colors in customizer order.
var Fields = []Field{
	{"Background Color", func(t *Theme) string { return t.Background }, func(t *Theme, v string) { t.Background = v }},
	{"Card/Tab Background", func(t *Theme) string { return t.Card }, func(t *Theme, v string) { t.Card = v }},
	{"Primary Button Color", func(t *Theme) string { return t.Primary }, func(t *Theme, v string) { t.Primary = v }},
	{"Secondary Button Color", func(t *Theme) string { return t.Secondary }, func(t *Theme, v string) { t.Secondary = v }},
	{"Text Color", func(t *Theme) string { return t.Text }, func(t *Theme, v string) { t.Text = v }},
}

// Validate returns an error describing the first invalid value.
func (t Theme) Validate() error {
	for _, f := range Fields {
		v := f.Get(&t)
		if !convert.IsHexColor(v) {
			return fmt.Errorf("%s: %w: %q", f.Label, convert.ErrHexFormat, v)
		}
	}
	if !ValidBorder(t.Border) {
		return fmt.Errorf("unknown border style %q", t.Border)
	}
	return nil
}

// ValidBorder reports whether name is a known border style.
func ValidBorder(name string) bool {
	for _, b := range Borders {
		if b == name {
			return true
		}
	}
	return false
}

// Normalize rewrites every color as canonical "#RRGGBB".
// Invalid values are left untouched.
func (t Theme) Normalize() Theme {
	for _, f := range Fields {
		if c, err := convert.ParseHex(f.Get(&t)); err == nil {
			f.Set(&t, c.Hex())
		}
	}
	return t
}

// NextBorder returns the border style after current, wrapping around.
func NextBorder(current string) string {
	for i, b := range Borders {
		if b == current {
			return Borders[(i+1)%len(Borders)]
		}
	}
	return Borders[0]
}
