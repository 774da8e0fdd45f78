package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/geokit/internal/convert"
	"github.com/henri123lemoine/geokit/internal/theme"
)

// Fixed colors that the theme does not override.
var (
	ColorDanger = lipgloss.Color("1")   // Red (dimmer)
	ColorMuted  = lipgloss.Color("245") // Light gray
)

// Theme-derived colors. Set by ApplyTheme.
var (
	ColorBackground lipgloss.Color
	ColorCard       lipgloss.Color
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorText       lipgloss.Color
)

// Styles. Rebuilt by ApplyTheme.
var (
	BoxStyle       lipgloss.Style
	TitleStyle     lipgloss.Style
	HeaderStyle    lipgloss.Style
	SelectedStyle  lipgloss.Style
	NormalStyle    lipgloss.Style
	PathStyle      lipgloss.Style
	HelpStyle      lipgloss.Style
	InputStyle     lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	DividerStyle   lipgloss.Style
	LabelStyle     lipgloss.Style
	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style
	StatusStyle    lipgloss.Style
	FieldStyle     lipgloss.Style
	PaddleStyle    lipgloss.Style
	BallStyle      lipgloss.Style
)

// Symbols
const (
	SymbolCursor  = "›"
	SymbolDivider = "─"
	SymbolUp      = "↑"
	SymbolDown    = "↓"
	SymbolLeft    = "‹"
	SymbolRight   = "›"
	SymbolPaddle  = "█"
	SymbolBall    = "●"
	SymbolNet     = "┊"
	SymbolSwatch  = "█"
)

func init() {
	ApplyTheme(theme.Default())
}

// BorderFor returns the lipgloss border for a theme border name.
func BorderFor(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// ApplyTheme rebuilds every style from t. Invalid colors fall back to
// the default theme's value for that field.
func ApplyTheme(t theme.Theme) {
	def := theme.Default()
	for _, f := range theme.Fields {
		if !convert.IsHexColor(f.Get(&t)) {
			f.Set(&t, f.Get(&def))
		}
	}
	if !theme.ValidBorder(t.Border) {
		t.Border = def.Border
	}
	t = t.Normalize()

	ColorBackground = lipgloss.Color(t.Background)
	ColorCard = lipgloss.Color(t.Card)
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorText = lipgloss.Color(t.Text)

	border := BorderFor(t.Border)

	BoxStyle = lipgloss.NewStyle().
		Border(border).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	PathStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	InputStyle = lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorDanger)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Width(18)

	TabStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBackground).
		Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Background(ColorCard).
		Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	FieldStyle = lipgloss.NewStyle().
		Border(border).
		BorderForeground(ColorMuted)

	PaddleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	BallStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}
