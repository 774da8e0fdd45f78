package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/henri123lemoine/geokit/internal/convert"
	"github.com/henri123lemoine/geokit/internal/launcher"
	"github.com/henri123lemoine/geokit/internal/netinfo"
	"github.com/henri123lemoine/geokit/internal/pong"
	"github.com/henri123lemoine/geokit/internal/theme"
)

// State constants (matching app.State)
const (
	StateTabs = iota
	StateHelp
)

// Tab constants (matching app.Tab)
const (
	TabNetwork = iota
	TabLauncher
	TabBase
	TabUnits
	TabColor
	TabTheme
	TabPong
)

// TabNames are the tab bar labels, indexed by tab.
var TabNames = []string{"Network", "Launcher", "Base", "Units", "Color", "Theme", "Pong"}

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// NetworkParams holds the network tab data.
type NetworkParams struct {
	Adapters []netinfo.Adapter
	Cursor   int
	Loading  bool
	Source   string
}

// LauncherParams holds the launcher tab data.
type LauncherParams struct {
	SearchInput string
	Entries     []launcher.Entry
	Cursor      int
	Root        string
	Total       int
	Scanning    bool
	ScannedAt   time.Time
	Fuzzy       bool
}

// BaseParams holds the base converter data.
type BaseParams struct {
	Input  string
	From   string
	To     string
	Result string
	Focus  int
}

// UnitParams holds the unit converter data.
type UnitParams struct {
	Category string
	Input    string
	From     string
	To       string
	Result   string
	Focus    int
}

// ColorParams holds the color picker data.
type ColorParams struct {
	R, G, B string
	Hex     string
	Focus   int
	// Swatch is the current valid color, nil while the inputs are invalid.
	Swatch *convert.RGB
}

// ThemeParams holds the theme customizer data.
type ThemeParams struct {
	Inputs []string
	Border string
	Focus  int
	// Pending is the theme as currently edited, not yet applied.
	Pending theme.Theme
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State        int
	Tab          int
	Width        int
	Height       int
	Status       string
	Err          error
	HelpSections []HelpSection
	SpinnerFrame string

	Network  NetworkParams
	Launcher LauncherParams
	Base     BaseParams
	Units    UnitParams
	Color    ColorParams
	Theme    ThemeParams
	Game     *pong.Game
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	if p.State == StateHelp {
		return renderHelp(p)
	}

	var body string
	switch p.Tab {
	case TabLauncher:
		body = renderLauncher(p)
	case TabBase:
		body = renderBase(p)
	case TabUnits:
		body = renderUnits(p)
	case TabColor:
		body = renderColor(p)
	case TabTheme:
		body = renderTheme(p)
	case TabPong:
		body = renderPong(p)
	default:
		body = renderNetwork(p)
	}

	var b strings.Builder
	b.WriteString(renderTabBar(p.Tab, p.Width) + "\n")
	if p.Err != nil {
		body = ErrorStyle.Render("Error: "+p.Err.Error()) + "\n\n" + body
	}
	b.WriteString(wrapInBox(body, p.Width, p.Height) + "\n")
	b.WriteString(renderStatus(p))
	return b.String()
}

// renderTabBar renders the row of tab labels.
func renderTabBar(active, width int) string {
	labels := make([]string, len(TabNames))
	for i, name := range TabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if width < 80 {
			label = name
		}
		if i == active {
			labels[i] = ActiveTabStyle.Render(label)
		} else {
			labels[i] = TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// renderStatus renders the status line below the box.
func renderStatus(p RenderParams) string {
	status := p.Status
	if status == "" {
		status = "Ready."
	}
	help := compactHelp("tab/shift+tab switch • f1 help • esc quit", "f1 help", p.Width)
	line := StatusStyle.Render(status)
	gap := p.Width - lipgloss.Width(line) - lipgloss.Width(help) - 1
	if gap < 1 {
		return line
	}
	return line + strings.Repeat(" ", gap) + HelpStyle.Render(help)
}

func header(title string, contentWidth int) string {
	return HeaderStyle.Render(title) + "\n" +
		DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n"
}

func footer(text string, contentWidth int) string {
	return "\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n" +
		HelpStyle.Render(text)
}

// cursorPrefix returns the selection marker for a row.
func cursorPrefix(selected bool) string {
	if selected {
		return SelectedStyle.Render(SymbolCursor + " ")
	}
	return "  "
}

// renderSelector renders a value that is cycled with left/right.
func renderSelector(value string, focused bool) string {
	if focused {
		return SelectedStyle.Render(SymbolLeft + " " + value + " " + SymbolRight)
	}
	return NormalStyle.Render("  " + value + "  ")
}

// renderField renders a labelled form row.
func renderField(label, value string, focused bool) string {
	return cursorPrefix(focused) + LabelStyle.Render(label) + value + "\n"
}

// renderNetwork renders the adapter list and details.
func renderNetwork(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	n := p.Network

	b.WriteString(header("NETWORK ADAPTERS", contentWidth))
	if n.Source != "" {
		b.WriteString(PathStyle.Render("source: "+n.Source) + "\n")
	}
	b.WriteString("\n")

	if n.Loading && len(n.Adapters) == 0 {
		b.WriteString(p.SpinnerFrame + " Fetching network information...\n")
		return b.String()
	}

	for i, a := range n.Adapters {
		name := a.Name
		if i == n.Cursor {
			name = SelectedStyle.Render(name)
		} else {
			name = NormalStyle.Render(name)
		}
		b.WriteString(cursorPrefix(i == n.Cursor) + name + "\n")
	}

	if n.Cursor >= 0 && n.Cursor < len(n.Adapters) {
		a := n.Adapters[n.Cursor]
		b.WriteString("\n")
		b.WriteString(renderField("IPv4 Address:", NormalStyle.Render(a.IPv4), false))
		b.WriteString(renderField("MAC Address:", NormalStyle.Render(a.MAC), false))
		if a.MTU > 0 {
			b.WriteString(renderField("MTU:", NormalStyle.Render(fmt.Sprint(a.MTU)), false))
		}
		if a.Name != netinfo.NoConnection {
			state := ErrorStyle.Render("down")
			if a.Up {
				state = SuccessStyle.Render("up")
			}
			b.WriteString(renderField("State:", state, false))
		}
		if a.BytesSent > 0 || a.BytesRecv > 0 {
			traffic := fmt.Sprintf("%s %s  %s %s",
				SymbolUp, humanize.Bytes(a.BytesSent),
				SymbolDown, humanize.Bytes(a.BytesRecv))
			b.WriteString(renderField("Traffic:", PathStyle.Render(traffic), false))
		}
	}

	b.WriteString(footer(compactHelp(
		"↑/↓ adapter • ctrl+y copy IPv4 • ctrl+u copy MAC • ctrl+r refresh",
		"↑/↓ • ^y IPv4 • ^u MAC • ^r",
		p.Width,
	), contentWidth))
	return b.String()
}

// renderLauncher renders the search box and matching entries.
func renderLauncher(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	l := p.Launcher

	title := "PROGRAM LAUNCHER"
	if l.Fuzzy {
		title += "  " + PathStyle.Render("(fuzzy)")
	}
	b.WriteString(header(title, contentWidth))
	if l.Root != "" {
		b.WriteString(PathStyle.Render(l.Root) + "\n")
	}
	b.WriteString("\n" + l.SearchInput + "\n\n")

	if l.Scanning && l.Total == 0 {
		b.WriteString(p.SpinnerFrame + " Scanning...\n")
		return b.String()
	}

	if len(l.Entries) == 0 {
		b.WriteString(PathStyle.Render("No matching files.") + "\n")
	} else {
		// Leave room for tab bar, box chrome, header, search and footer.
		visible := p.Height - 16
		if visible < 3 {
			visible = 3
		}
		start, end := window(l.Cursor, len(l.Entries), visible)
		if start > 0 {
			b.WriteString(PathStyle.Render(fmt.Sprintf("  %s %d more", SymbolUp, start)) + "\n")
		}
		for i := start; i < end; i++ {
			e := l.Entries[i]
			selected := i == l.Cursor
			name := truncate(e.Name, contentWidth-4)
			if selected {
				b.WriteString(cursorPrefix(true) + SelectedStyle.Render(name) + "\n")
			} else {
				b.WriteString(cursorPrefix(false) + NormalStyle.Render(name) + "\n")
			}
		}
		if end < len(l.Entries) {
			b.WriteString(PathStyle.Render(fmt.Sprintf("  %s %d more", SymbolDown, len(l.Entries)-end)) + "\n")
		}
		if l.Cursor >= 0 && l.Cursor < len(l.Entries) {
			b.WriteString("\n" + PathStyle.Render(truncate(l.Entries[l.Cursor].DisplayPath(), contentWidth)) + "\n")
		}
	}

	info := fmt.Sprintf("%s files", humanize.Comma(int64(l.Total)))
	if !l.ScannedAt.IsZero() {
		info += " • scanned " + humanize.Time(l.ScannedAt)
	}
	if l.Scanning {
		info += " • " + p.SpinnerFrame + " rescanning"
	}
	b.WriteString("\n" + PathStyle.Render(info) + "\n")

	b.WriteString(footer(compactHelp(
		"type to search • ↑/↓ select • enter launch • ctrl+y copy path • ctrl+r rescan",
		"↑/↓ • enter launch • ^y copy • ^r",
		p.Width,
	), contentWidth))
	return b.String()
}

// window returns the [start, end) slice of n rows of which size are
// visible, keeping cursor in view.
func window(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}

// renderBase renders the number base converter.
func renderBase(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	c := p.Base

	b.WriteString(header("BASE CONVERTER", contentWidth) + "\n")
	b.WriteString(renderField("Input Number:", c.Input, c.Focus == 0))
	b.WriteString(renderField("Input Base:", renderSelector(c.From, c.Focus == 1), c.Focus == 1))
	b.WriteString(renderField("Output Base:", renderSelector(c.To, c.Focus == 2), c.Focus == 2))
	b.WriteString("\n" + renderResult(c.Result))

	b.WriteString(footer(compactHelp(
		"↑/↓ field • ←/→ change base • enter convert • ctrl+y copy result",
		"↑/↓ • ←/→ • enter • ^y",
		p.Width,
	), contentWidth))
	return b.String()
}

// renderUnits renders the unit converter.
func renderUnits(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	c := p.Units

	b.WriteString(header("MEASUREMENT CONVERTER", contentWidth) + "\n")
	b.WriteString(renderField("Category:", renderSelector(c.Category, c.Focus == 0), c.Focus == 0))
	b.WriteString(renderField("Value:", c.Input, c.Focus == 1))
	b.WriteString(renderField("From:", renderSelector(c.From, c.Focus == 2), c.Focus == 2))
	b.WriteString(renderField("To:", renderSelector(c.To, c.Focus == 3), c.Focus == 3))
	b.WriteString("\n" + renderResult(c.Result))

	b.WriteString(footer(compactHelp(
		"↑/↓ field • ←/→ change selection • enter convert • ctrl+y copy result",
		"↑/↓ • ←/→ • enter • ^y",
		p.Width,
	), contentWidth))
	return b.String()
}

func renderResult(result string) string {
	if result == "" {
		return PathStyle.Render("Result will appear here") + "\n"
	}
	if strings.HasPrefix(result, "Error") {
		return ErrorStyle.Render(result) + "\n"
	}
	return LabelStyle.Render("Result:") + SuccessStyle.Bold(true).Render(result) + "\n"
}

// renderColor renders the RGB/HEX picker with a swatch.
func renderColor(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	c := p.Color

	b.WriteString(header("COLOR PICKER", contentWidth) + "\n")
	b.WriteString(renderField("Red (0-255):", c.R, c.Focus == 0))
	b.WriteString(renderField("Green (0-255):", c.G, c.Focus == 1))
	b.WriteString(renderField("Blue (0-255):", c.B, c.Focus == 2))
	b.WriteString(renderField("HEX:", c.Hex, c.Focus == 3))
	b.WriteString("\n" + RenderSwatch(c.Swatch, 24) + "\n")

	b.WriteString(footer(compactHelp(
		"↑/↓ field • enter convert • ctrl+y copy HEX • ctrl+u copy RGB",
		"↑/↓ • enter • ^y HEX • ^u RGB",
		p.Width,
	), contentWidth))
	return b.String()
}

// RenderSwatch renders a color block labelled with its HEX value in a
// contrasting color. A nil color renders a placeholder.
func RenderSwatch(c *convert.RGB, width int) string {
	if c == nil {
		return PathStyle.Render("(no valid color)")
	}
	label := c.Hex()
	pad := width - len(label)
	if pad < 0 {
		pad = 0
	}
	text := strings.Repeat(" ", pad/2) + label + strings.Repeat(" ", pad-pad/2)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(c.Contrast().Hex()))
	blank := style.Render(strings.Repeat(" ", len(text)))
	return blank + "\n" + style.Render(text) + "\n" + blank
}

// renderTheme renders the theme customizer.
func renderTheme(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8
	t := p.Theme

	b.WriteString(header("THEME CUSTOMIZER", contentWidth) + "\n")
	for i, f := range theme.Fields {
		input := ""
		if i < len(t.Inputs) {
			input = t.Inputs[i]
		}
		chip := "  "
		if rgb, err := convert.ParseHex(f.Get(&t.Pending)); err == nil {
			chip = lipgloss.NewStyle().Foreground(lipgloss.Color(rgb.Hex())).Render(SymbolSwatch + SymbolSwatch)
		}
		b.WriteString(cursorPrefix(t.Focus == i) + LabelStyle.Width(24).Render(f.Label+":") + chip + " " + input + "\n")
	}
	borderIdx := len(theme.Fields)
	b.WriteString(cursorPrefix(t.Focus == borderIdx) + LabelStyle.Width(26).Render("Border Style:") +
		renderSelector(t.Border, t.Focus == borderIdx) + "\n")

	preview := lipgloss.NewStyle().
		Border(BorderFor(t.Border)).
		BorderForeground(lipgloss.Color(safeHex(t.Pending.Primary))).
		Foreground(lipgloss.Color(safeHex(t.Pending.Text))).
		Padding(0, 1).
		Render("Preview")
	b.WriteString("\n" + preview + "\n")

	b.WriteString(footer(compactHelp(
		"↑/↓ field • ←/→ border • enter apply and save",
		"↑/↓ • ←/→ • enter apply",
		p.Width,
	), contentWidth))
	return b.String()
}

// safeHex returns s as a canonical color or the muted gray.
func safeHex(s string) string {
	if c, err := convert.ParseHex(s); err == nil {
		return c.Hex()
	}
	return string(ColorMuted)
}

// renderPong renders the score line and the playing field.
func renderPong(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8

	b.WriteString(header("PONG", contentWidth))
	if p.Game == nil {
		return b.String()
	}
	b.WriteString(TitleStyle.Render(p.Game.Score()) + "\n")

	cols := contentWidth - 2
	if cols > 80 {
		cols = 80
	}
	// Terminal cells are roughly twice as tall as wide.
	rows := int(math.Round(float64(cols) * pong.Height / pong.Width / 2))
	if limit := p.Height - 14; rows > limit {
		rows = limit
	}
	if rows < 5 {
		rows = 5
	}

	grid := PongGrid(p.Game, cols, rows)
	field := lipgloss.NewStyle().
		Border(BorderFor("normal")).
		BorderForeground(ColorMuted).
		Render(colorizePong(strings.Join(grid, "\n")))
	b.WriteString(field + "\n")

	help := "enter start • w/s left paddle • ↑/↓ right paddle"
	if p.Game.Running {
		help = "enter restart • w/s left paddle • ↑/↓ right paddle"
	}
	b.WriteString(footer(compactHelp(help, "enter • w/s • ↑/↓", p.Width), contentWidth))
	return b.String()
}

// PongGrid rasterizes the game onto a cols x rows character grid.
func PongGrid(g *pong.Game, cols, rows int) []string {
	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", cols))
		cells[y][cols/2] = []rune(SymbolNet)[0]
	}

	fill := func(r pong.Rect, ch rune) {
		x1, x2 := scale(r.X1, r.X2, pong.Width, cols)
		y1, y2 := scale(r.Y1, r.Y2, pong.Height, rows)
		for y := y1; y < y2; y++ {
			for x := x1; x < x2; x++ {
				cells[y][x] = ch
			}
		}
	}
	fill(g.LeftPaddle, []rune(SymbolPaddle)[0])
	fill(g.RightPaddle, []rune(SymbolPaddle)[0])
	fill(g.Ball, []rune(SymbolBall)[0])

	lines := make([]string, rows)
	for y, row := range cells {
		lines[y] = string(row)
	}
	return lines
}

// scale maps [a, b) in a field of size onto cell indices in [0, n),
// covering at least one cell.
func scale(a, b, size float64, n int) (int, int) {
	lo := int(math.Floor(a / size * float64(n)))
	hi := int(math.Ceil(b / size * float64(n)))
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= n {
		lo = n - 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func colorizePong(s string) string {
	s = strings.ReplaceAll(s, SymbolPaddle, PaddleStyle.Render(SymbolPaddle))
	s = strings.ReplaceAll(s, SymbolBall, BallStyle.Render(SymbolBall))
	return strings.ReplaceAll(s, SymbolNet, DividerStyle.Render(SymbolNet))
}

// renderHelp renders the help overlay.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 8

	b.WriteString(header("HELP", contentWidth) + "\n")

	for i, section := range p.HelpSections {
		b.WriteString(NormalStyle.Bold(true).Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, 40)) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 14 chars for alignment
			keys := binding.Keys
			if len(keys) < 14 {
				keys = keys + strings.Repeat(" ", 14-len(keys))
			}
			b.WriteString(PathStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString(footer("Press any key to close", contentWidth))
	return wrapInBox(b.String(), p.Width, p.Height)
}

// wrapInBox wraps content in a box.
func wrapInBox(content string, width, height int) string {
	boxWidth := width - 2
	// Graceful degradation: use actual width, just ensure minimum for box borders
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}

	// Don't force height - let content determine size
	style := BoxStyle.Width(boxWidth)

	return style.Render(content)
}

// compactHelp returns a shortened help string for small terminals.
func compactHelp(full, compact string, width int) string {
	// If terminal is wide enough, use full help text
	if width >= 80 {
		return full
	}
	return compact
}
