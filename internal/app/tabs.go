package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/geokit/internal/convert"
	"github.com/henri123lemoine/geokit/internal/netinfo"
	"github.com/henri123lemoine/geokit/internal/pong"
	"github.com/henri123lemoine/geokit/internal/theme"
	"github.com/henri123lemoine/geokit/internal/ui"
)

// handleNetworkKeys handles key presses in the network tab.
func (m Model) handleNetworkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.netCursor > 0 {
			m.netCursor--
			m.status = "Displaying details for: " + m.adapters[m.netCursor].Name
		}
	case key.Matches(msg, m.keys.Down):
		if m.netCursor < len(m.adapters)-1 {
			m.netCursor++
			m.status = "Displaying details for: " + m.adapters[m.netCursor].Name
		}
	case key.Matches(msg, m.keys.Copy):
		a, ok := m.selectedAdapter()
		if !ok || !a.HasIPv4() || !copyable(a.IPv4) {
			m.status = "Copy failed: No valid IPv4 address available."
			return m, nil
		}
		return m, copyToClipboard(a.IPv4, fmt.Sprintf("Copied IPv4: %s to clipboard.", a.IPv4))
	case key.Matches(msg, m.keys.CopyAlt):
		a, ok := m.selectedAdapter()
		if !ok || !copyable(a.MAC) {
			m.status = "Copy failed: No valid MAC address available."
			return m, nil
		}
		return m, copyToClipboard(a.MAC, fmt.Sprintf("Copied MAC: %s to clipboard.", a.MAC))
	case key.Matches(msg, m.keys.Refresh):
		if m.netLoading {
			return m, nil
		}
		m.netLoading = true
		m.status = "Fetching network information..."
		return m, tea.Batch(loadAdapters(m.netSource), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) selectedAdapter() (netinfo.Adapter, bool) {
	if m.netCursor < 0 || m.netCursor >= len(m.adapters) {
		return netinfo.Adapter{}, false
	}
	return m.adapters[m.netCursor], true
}

// handleLauncherKeys handles key presses in the launcher tab. The search
// field always has focus; navigation keys move the selection.
func (m Model) handleLauncherKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.launcherCursor > 0 {
			m.launcherCursor--
			m.status = "Selected: " + m.entries[m.launcherCursor].Name
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.launcherCursor < len(m.entries)-1 {
			m.launcherCursor++
			m.status = "Selected: " + m.entries[m.launcherCursor].Name
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.launcherCursor >= len(m.entries) {
			m.status = "Launch failed: Invalid selection."
			return m, nil
		}
		e := m.entries[m.launcherCursor]
		m.status = fmt.Sprintf("Attempting to launch: %s...", e.Name)
		return m, launch(m.config.Launcher.OpenCommand, e)
	case key.Matches(msg, m.keys.Copy):
		if m.launcherCursor >= len(m.entries) {
			m.status = "Copy failed: No app selected or path unavailable."
			return m, nil
		}
		p := m.entries[m.launcherCursor].DisplayPath()
		return m, copyToClipboard(p, fmt.Sprintf("Copied Path: %s to clipboard.", p))
	case key.Matches(msg, m.keys.Refresh):
		if m.scanning {
			return m, nil
		}
		m.scanning = true
		return m, tea.Batch(scanIndex(m.launcherRoot, m.config.Launcher.UseCache), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter filters entries based on the search input.
func (m *Model) applyFilter() {
	m.entries = m.index.Query(m.config.Launcher.Search, m.searchInput.Value())
	m.launcherCursor = clamp(m.launcherCursor, len(m.entries))
}

// cycle moves i by delta within [0, n), wrapping around.
func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// direction returns -1 for Left, +1 for Right and 0 otherwise.
func (m Model) direction(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, m.keys.Left):
		return -1
	case key.Matches(msg, m.keys.Right):
		return 1
	}
	return 0
}

// moveFocus moves a form focus row up or down and refocuses inputs.
func (m *Model) moveFocus(focus *int, rows int, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		*focus = cycle(*focus, -1, rows)
	case key.Matches(msg, m.keys.Down):
		*focus = cycle(*focus, 1, rows)
	default:
		return false, nil
	}
	return true, m.syncFocus()
}

// handleBaseKeys handles key presses in the base converter.
func (m Model) handleBaseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moved, cmd := m.moveFocus(&m.baseFocus, 3, msg); moved {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		m.convertBase()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if !copyable(m.baseResult) {
			m.status = "Copy failed: No valid output to copy."
			return m, nil
		}
		return m, copyToClipboard(m.baseResult, fmt.Sprintf("Copied output: %s to clipboard.", m.baseResult))
	}

	if d := m.direction(msg); d != 0 && m.baseFocus != baseInputRow {
		if m.baseFocus == baseFromRow {
			m.baseFrom = cycle(m.baseFrom, d, len(convert.Bases))
		} else {
			m.baseTo = cycle(m.baseTo, d, len(convert.Bases))
		}
		return m, nil
	}

	if m.baseFocus == baseInputRow {
		var cmd tea.Cmd
		m.baseInput, cmd = m.baseInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) convertBase() {
	from, to := convert.Bases[m.baseFrom], convert.Bases[m.baseTo]
	out, err := convert.ConvertBase(m.baseInput.Value(), from, to)
	switch {
	case err == nil:
		m.baseResult = out
		m.status = fmt.Sprintf("Conversion successful: %s to %s.", from.Name, to.Name)
	case errors.Is(err, convert.ErrEmptyInput):
		m.baseResult = "Error: Empty input"
		m.status = "Base conversion failed: Empty input."
	case errors.Is(err, convert.ErrInvalidDigits):
		m.baseResult = fmt.Sprintf("Error: Invalid input for %s", from.Name)
		m.status = "Base conversion failed: Invalid input."
	default:
		m.baseResult = "Error: " + err.Error()
		m.status = "Base conversion failed: Unexpected error."
	}
}

// category returns the selected unit category.
func (m Model) category() convert.Category {
	return convert.Categories[m.unitCategory]
}

// handleUnitKeys handles key presses in the unit converter.
func (m Model) handleUnitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moved, cmd := m.moveFocus(&m.unitFocus, 4, msg); moved {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		m.convertUnit()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if !copyable(m.unitResult) {
			m.status = "Copy failed: No valid conversion result available."
			return m, nil
		}
		return m, copyToClipboard(m.unitResult, fmt.Sprintf("Copied '%s' to clipboard.", m.unitResult))
	}

	if d := m.direction(msg); d != 0 && m.unitFocus != unitInputRow {
		n := len(m.category().Units)
		switch m.unitFocus {
		case unitCategoryRow:
			// A new category resets both sides to its first unit.
			m.unitCategory = cycle(m.unitCategory, d, len(convert.Categories))
			m.unitFrom, m.unitTo = 0, 0
			m.unitResult = ""
		case unitFromRow:
			m.unitFrom = cycle(m.unitFrom, d, n)
		case unitToRow:
			m.unitTo = cycle(m.unitTo, d, n)
		}
		return m, nil
	}

	if m.unitFocus == unitInputRow {
		var cmd tea.Cmd
		m.unitInput, cmd = m.unitInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) convertUnit() {
	c := m.category()
	from, to := c.Units[m.unitFrom].Name, c.Units[m.unitTo].Name

	v, err := convert.ParseValue(m.unitInput.Value())
	if err == nil {
		v, err = convert.ConvertUnit(c.Name, v, from, to)
	}
	switch {
	case err == nil:
		m.unitResult = convert.FormatValue(v)
		m.status = fmt.Sprintf("Conversion successful: %s to %s.", from, to)
	case errors.Is(err, convert.ErrEmptyInput):
		m.unitResult = "Error: Empty input"
		m.status = "Measurement conversion failed: Empty input."
	case errors.Is(err, convert.ErrNotANumber), errors.Is(err, convert.ErrUnknownUnit):
		m.unitResult = "Error: Invalid input"
		m.status = "Measurement conversion failed: Invalid number or unit."
	default:
		m.unitResult = "Error: " + err.Error()
		m.status = "Measurement conversion failed: Unexpected error."
	}
}

// handleColorKeys handles key presses in the color picker. Editing the
// RGB side updates HEX and vice versa; values set programmatically do not
// feed back into the other side.
func (m Model) handleColorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moved, cmd := m.moveFocus(&m.colorFocus, 4, msg); moved {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		m.convertColor()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		c, err := convert.ParseHex(m.colorInputs[colorHexRow].Value())
		if err != nil {
			m.status = "Copy failed: No valid HEX value available."
			return m, nil
		}
		return m, copyToClipboard(c.Hex(), fmt.Sprintf("Copied HEX: %s to clipboard.", c.Hex()))
	case key.Matches(msg, m.keys.CopyAlt):
		if m.swatch == nil {
			m.status = "Copy failed: No valid RGB value available."
			return m, nil
		}
		s := m.swatch.String()
		return m, copyToClipboard(s, fmt.Sprintf("Copied RGB: %s to clipboard.", s))
	}

	var cmd tea.Cmd
	before := m.colorInputs[m.colorFocus].Value()
	m.colorInputs[m.colorFocus], cmd = m.colorInputs[m.colorFocus].Update(msg)
	if m.colorInputs[m.colorFocus].Value() != before {
		m.syncColor()
	}
	return m, cmd
}

// syncColor propagates a user edit to the other side when it is valid.
func (m *Model) syncColor() {
	if m.colorFocus == colorHexRow {
		c, err := convert.ParseHex(m.colorInputs[colorHexRow].Value())
		if err != nil {
			m.swatch = nil
			return
		}
		m.setRGB(c)
		return
	}
	c, err := convert.ParseRGB(m.colorInputs[0].Value(), m.colorInputs[1].Value(), m.colorInputs[2].Value())
	if err != nil {
		m.swatch = nil
		return
	}
	m.colorInputs[colorHexRow].SetValue(c.Hex())
	m.swatch = &c
}

func (m *Model) setRGB(c convert.RGB) {
	m.colorInputs[0].SetValue(fmt.Sprint(c.R))
	m.colorInputs[1].SetValue(fmt.Sprint(c.G))
	m.colorInputs[2].SetValue(fmt.Sprint(c.B))
	m.swatch = &c
}

// convertColor converts from the focused side and reports the result.
func (m *Model) convertColor() {
	if m.colorFocus == colorHexRow {
		c, err := convert.ParseHex(m.colorInputs[colorHexRow].Value())
		if err != nil {
			m.status = "HEX conversion error: Invalid format."
			return
		}
		m.colorInputs[colorHexRow].SetValue(c.Hex())
		m.setRGB(c)
		m.status = fmt.Sprintf("Converted HEX to RGB(%d,%d,%d).", c.R, c.G, c.B)
		return
	}
	c, err := convert.ParseRGB(m.colorInputs[0].Value(), m.colorInputs[1].Value(), m.colorInputs[2].Value())
	if err != nil {
		m.status = fmt.Sprintf("RGB conversion error: %v", convert.ErrRGBRange)
		return
	}
	m.colorInputs[colorHexRow].SetValue(c.Hex())
	m.swatch = &c
	m.status = fmt.Sprintf("Converted RGB(%d,%d,%d) to %s.", c.R, c.G, c.B, c.Hex())
}

// pendingTheme returns the theme as currently edited.
func (m Model) pendingTheme() theme.Theme {
	t := m.config.Theme
	for i, f := range theme.Fields {
		f.Set(&t, m.themeInputs[i].Value())
	}
	t.Border = m.themeBorder
	return t
}

// handleThemeKeys handles key presses in the theme customizer.
func (m Model) handleThemeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.themeInputs) + 1
	if moved, cmd := m.moveFocus(&m.themeFocus, rows, msg); moved {
		return m, cmd
	}

	if key.Matches(msg, m.keys.Enter) {
		return m.applyTheme()
	}

	if m.themeFocus == len(m.themeInputs) {
		if d := m.direction(msg); d > 0 {
			m.themeBorder = theme.NextBorder(m.themeBorder)
		} else if d < 0 {
			m.themeBorder = prevBorder(m.themeBorder)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.themeInputs[m.themeFocus], cmd = m.themeInputs[m.themeFocus].Update(msg)
	return m, cmd
}

func prevBorder(current string) string {
	for i, b := range theme.Borders {
		if b == current {
			return theme.Borders[cycle(i, -1, len(theme.Borders))]
		}
	}
	return theme.Borders[0]
}

// applyTheme validates the edited theme, restyles the UI and saves it.
func (m Model) applyTheme() (tea.Model, tea.Cmd) {
	t := m.pendingTheme()
	if err := t.Validate(); err != nil {
		m.errs[TabTheme] = err
		m.status = fmt.Sprintf("Theme error: %v", err)
		return m, nil
	}
	t = t.Normalize()
	for i, f := range theme.Fields {
		m.themeInputs[i].SetValue(f.Get(&t))
	}

	ui.ApplyTheme(t)
	m.config.Theme = t
	m.errs[TabTheme] = nil
	m.status = appliedStatus(t)
	return m, saveTheme(*m.config, m.configPath)
}

// appliedStatus is the status line reported for an applied theme.
func appliedStatus(t theme.Theme) string {
	return fmt.Sprintf("Styles applied! Border: %s, Primary Color: %s", t.Border, t.Primary)
}

// handlePongKeys handles key presses in the pong tab.
func (m Model) handlePongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		gen := m.game.Start()
		m.status = "Pong game started! Use W/S (Left) or UP/DOWN (Right)."
		return m, pongTick(gen, m.game.TickInterval)
	case key.Matches(msg, m.keys.PaddleUp):
		m.game.MovePaddle(pong.Left, -pong.PlayerStep)
	case key.Matches(msg, m.keys.PaddleDown):
		m.game.MovePaddle(pong.Left, pong.PlayerStep)
	case key.Matches(msg, m.keys.Up):
		m.game.MovePaddle(pong.Right, -pong.PlayerStep)
	case key.Matches(msg, m.keys.Down):
		m.game.MovePaddle(pong.Right, pong.PlayerStep)
	}
	return m, nil
}
