package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/geokit/internal/config"
	"github.com/henri123lemoine/geokit/internal/convert"
	"github.com/henri123lemoine/geokit/internal/debug"
	"github.com/henri123lemoine/geokit/internal/exec"
	"github.com/henri123lemoine/geokit/internal/launcher"
	"github.com/henri123lemoine/geokit/internal/netinfo"
	"github.com/henri123lemoine/geokit/internal/pong"
	"github.com/henri123lemoine/geokit/internal/theme"
	"github.com/henri123lemoine/geokit/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StateTabs State = iota
	StateHelp
)

// Tab identifies a tab.
type Tab int

const (
	TabNetwork Tab = iota
	TabLauncher
	TabBase
	TabUnits
	TabColor
	TabTheme
	TabPong
)

const tabCount = 7

// Focus rows per tab.
const (
	baseInputRow = 0
	baseFromRow  = 1
	baseToRow    = 2

	unitCategoryRow = 0
	unitInputRow    = 1
	unitFromRow     = 2
	unitToRow       = 3

	colorHexRow = 3
)

// Model is the main application model.
type Model struct {
	// Configuration
	config     *config.Config
	configPath string

	// State
	tab    Tab
	state  State
	status string
	errs   [tabCount]error

	// UI
	width   int
	height  int
	keys    KeyMap
	spinner spinner.Model

	// Network
	netSource  netinfo.Source
	adapters   []netinfo.Adapter
	netCursor  int
	netLoading bool

	// Launcher
	launcherRoot   string
	index          *launcher.Index
	entries        []launcher.Entry
	launcherCursor int
	searchInput    textinput.Model
	scanning       bool
	scanned        bool

	// Base converter
	baseInput  textinput.Model
	baseFrom   int
	baseTo     int
	baseResult string
	baseFocus  int

	// Unit converter
	unitCategory int
	unitInput    textinput.Model
	unitFrom     int
	unitTo       int
	unitResult   string
	unitFocus    int

	// Color picker: R, G, B, HEX
	colorInputs [4]textinput.Model
	colorFocus  int
	swatch      *convert.RGB

	// Theme customizer
	themeInputs []textinput.Model
	themeBorder string
	themeFocus  int

	// Pong
	game *pong.Game
}

// New creates a new Model. configPath is where theme changes are saved.
func New(cfg *config.Config, configPath string) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search files..."
	searchInput.CharLimit = 100

	baseInput := textinput.New()
	baseInput.Placeholder = "e.g. 255"
	baseInput.CharLimit = 256

	unitInput := textinput.New()
	unitInput.Placeholder = "e.g. 12.5"
	unitInput.CharLimit = 32

	var colorInputs [4]textinput.Model
	for i := range colorInputs {
		colorInputs[i] = textinput.New()
		colorInputs[i].Placeholder = "0-255"
		colorInputs[i].CharLimit = 3
	}
	colorInputs[colorHexRow].Placeholder = "#RRGGBB"
	colorInputs[colorHexRow].CharLimit = 7

	themeInputs := make([]textinput.Model, len(theme.Fields))
	for i, f := range theme.Fields {
		themeInputs[i] = textinput.New()
		themeInputs[i].Placeholder = "#RRGGBB"
		themeInputs[i].CharLimit = 7
		themeInputs[i].SetValue(f.Get(&cfg.Theme))
	}

	game := pong.New(nil)
	if cfg.Pong.TickMS > 0 {
		game.TickInterval = time.Duration(cfg.Pong.TickMS) * time.Millisecond
	}
	if cfg.Pong.ServeDelayMS >= 0 {
		game.ServeDelay = time.Duration(cfg.Pong.ServeDelayMS) * time.Millisecond
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		config:       cfg,
		configPath:   configPath,
		keys:         KeyMapFromConfig(&cfg.Keys),
		spinner:      s,
		tab:          Tab(cfg.StartTabIndex()),
		state:        StateTabs,
		status:       "Ready.",
		netSource:    netinfo.SourceFor(cfg.Network.Source),
		netLoading:   true,
		launcherRoot: launcher.Root(cfg.ResolveBaseDir(), cfg.Launcher.FolderName),
		searchInput:  searchInput,
		scanning:     true,
		baseInput:    baseInput,
		baseFrom:     2, // Decimal
		baseTo:       0, // Binary
		unitInput:    unitInput,
		colorInputs:  colorInputs,
		themeInputs:  themeInputs,
		themeBorder:  cfg.Theme.Border,
		game:         game,
	}
	m.syncFocus()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadAdapters(m.netSource),
		scanIndex(m.launcherRoot, m.config.Launcher.UseCache),
		textinput.Blink,
	}
	if m.config.Launcher.UseCache {
		cmds = append(cmds, loadCachedIndex(m.launcherRoot))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle quit globally
		if key.Matches(msg, m.keys.Quit) {
			m.game.Stop()
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.netLoading && !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case AdaptersLoadedMsg:
		m.netLoading = false
		m.adapters = msg.Adapters
		m.netCursor = clamp(m.netCursor, len(m.adapters))
		if msg.Err != nil {
			debug.Log("adapters: %v", msg.Err)
			m.errs[TabNetwork] = msg.Err
			m.status = "Could not find any active network adapters."
			return m, nil
		}
		m.errs[TabNetwork] = nil
		if len(m.adapters) == 1 && m.adapters[0].Name == netinfo.NoConnection {
			m.status = "Network data refreshed. No active connections found."
		} else {
			m.status = fmt.Sprintf("Network data refreshed. Found %d adapters.", len(m.adapters))
		}
		return m, nil

	case IndexLoadedMsg:
		return m.handleIndexLoaded(msg)

	case LaunchedMsg:
		switch {
		case msg.Err == nil:
			m.status = "Successfully launched: " + msg.Entry.Name
		case errors.Is(msg.Err, exec.ErrNotFound):
			m.status = "Launch failed: File not found at " + msg.Entry.Path
		default:
			m.status = fmt.Sprintf("Launch failed: %v", msg.Err)
		}
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Copy error: %v", msg.Err)
			return m, nil
		}
		m.status = msg.Status
		return m, nil

	case ThemeSavedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("%s (not saved: %v)", appliedStatus(m.config.Theme), msg.Err)
			m.errs[TabTheme] = msg.Err
			return m, nil
		}
		m.errs[TabTheme] = nil
		debug.Log("theme saved to %s", msg.Path)
		return m, nil

	case PongTickMsg:
		if msg.Generation != m.game.Generation || !m.game.Running {
			return m, nil
		}
		events, delay := m.game.Tick()
		for _, e := range events {
			m.status = e.String()
		}
		return m, pongTick(msg.Generation, delay)
	}

	return m, nil
}

// handleIndexLoaded merges a cached or freshly scanned index.
func (m Model) handleIndexLoaded(msg IndexLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Cached {
		// Any scan result, even a failed one, wins over the cache.
		if msg.Index == nil || m.scanned {
			return m, nil
		}
		m.index = msg.Index
		m.applyFilter()
		return m, nil
	}

	m.scanning = false
	m.scanned = true
	if msg.Err != nil {
		debug.Log("launcher scan: %v", msg.Err)
		m.errs[TabLauncher] = msg.Err
		m.index = nil
		m.applyFilter()
		m.status = fmt.Sprintf("Launcher Error: %v", msg.Err)
		return m, nil
	}

	m.errs[TabLauncher] = nil
	m.index = msg.Index
	m.applyFilter()
	if m.index.Len() == 0 {
		m.status = fmt.Sprintf("No files found in '%s' or its subfolders.", m.config.Launcher.FolderName)
	} else {
		m.status = fmt.Sprintf("Loaded %d files. Start typing to search.", m.index.Len())
	}
	return m, nil
}

// handleKeyPress handles key presses based on current state.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateHelp {
		// Any key closes help
		m.state = StateTabs
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.state = StateHelp
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	}

	if !m.typing() {
		for i, b := range m.keys.Tabs {
			if key.Matches(msg, b) {
				return m.switchTab(Tab(i))
			}
		}
	}

	switch m.tab {
	case TabNetwork:
		return m.handleNetworkKeys(msg)
	case TabLauncher:
		return m.handleLauncherKeys(msg)
	case TabBase:
		return m.handleBaseKeys(msg)
	case TabUnits:
		return m.handleUnitKeys(msg)
	case TabColor:
		return m.handleColorKeys(msg)
	case TabTheme:
		return m.handleThemeKeys(msg)
	case TabPong:
		return m.handlePongKeys(msg)
	}
	return m, nil
}

// switchTab activates tab t. Leaving the game stops it.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if m.tab == TabPong && t != TabPong {
		m.game.Stop()
	}
	m.tab = t
	return m, m.syncFocus()
}

// focusedInput returns the text input that receives typing, if any.
func (m *Model) focusedInput() *textinput.Model {
	switch m.tab {
	case TabLauncher:
		return &m.searchInput
	case TabBase:
		if m.baseFocus == baseInputRow {
			return &m.baseInput
		}
	case TabUnits:
		if m.unitFocus == unitInputRow {
			return &m.unitInput
		}
	case TabColor:
		return &m.colorInputs[m.colorFocus]
	case TabTheme:
		if m.themeFocus < len(m.themeInputs) {
			return &m.themeInputs[m.themeFocus]
		}
	}
	return nil
}

// typing reports whether a text input has focus.
func (m Model) typing() bool {
	return m.focusedInput() != nil
}

// syncFocus focuses the current text input and blurs all others.
func (m *Model) syncFocus() tea.Cmd {
	m.searchInput.Blur()
	m.baseInput.Blur()
	m.unitInput.Blur()
	for i := range m.colorInputs {
		m.colorInputs[i].Blur()
	}
	for i := range m.themeInputs {
		m.themeInputs[i].Blur()
	}
	if in := m.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

// View renders the UI.
func (m Model) View() string {
	p := ui.RenderParams{
		State:        int(m.state),
		Tab:          int(m.tab),
		Width:        m.width,
		Height:       m.height,
		Status:       m.status,
		Err:          m.errs[m.tab],
		HelpSections: m.helpSections(),
		SpinnerFrame: m.spinner.View(),
		Network: ui.NetworkParams{
			Adapters: m.adapters,
			Cursor:   m.netCursor,
			Loading:  m.netLoading,
			Source:   m.netSource.Name(),
		},
		Launcher: ui.LauncherParams{
			SearchInput: m.searchInput.View(),
			Entries:     m.entries,
			Cursor:      m.launcherCursor,
			Root:        m.launcherRoot,
			Total:       m.index.Len(),
			Scanning:    m.scanning,
			Fuzzy:       m.config.Launcher.Search == launcher.SearchFuzzy,
		},
		Base: ui.BaseParams{
			Input:  m.baseInput.View(),
			From:   convert.Bases[m.baseFrom].Name,
			To:     convert.Bases[m.baseTo].Name,
			Result: m.baseResult,
			Focus:  m.baseFocus,
		},
		Units: ui.UnitParams{
			Category: m.category().Name,
			Input:    m.unitInput.View(),
			From:     m.category().Units[m.unitFrom].Name,
			To:       m.category().Units[m.unitTo].Name,
			Result:   m.unitResult,
			Focus:    m.unitFocus,
		},
		Color: ui.ColorParams{
			R:      m.colorInputs[0].View(),
			G:      m.colorInputs[1].View(),
			B:      m.colorInputs[2].View(),
			Hex:    m.colorInputs[colorHexRow].View(),
			Focus:  m.colorFocus,
			Swatch: m.swatch,
		},
		Theme: ui.ThemeParams{
			Border:  m.themeBorder,
			Focus:   m.themeFocus,
			Pending: m.pendingTheme(),
		},
		Game: m.game,
	}
	if m.index != nil {
		p.Launcher.ScannedAt = m.index.ScannedAt
	}
	for _, in := range m.themeInputs {
		p.Theme.Inputs = append(p.Theme.Inputs, in.View())
	}
	return ui.Render(p)
}

// helpSections builds the help overlay from the active key map.
func (m Model) helpSections() []ui.HelpSection {
	k := m.keys
	h := func(b key.Binding, desc string) ui.HelpBinding {
		return ui.HelpBinding{Keys: helpKeys(b), Desc: desc}
	}
	return []ui.HelpSection{
		{Title: "General", Bindings: []ui.HelpBinding{
			h(k.NextTab, "next tab"),
			h(k.PrevTab, "previous tab"),
			{Keys: "1-7", Desc: "jump to tab (outside text fields)"},
			h(k.Help, "toggle help"),
			h(k.Quit, "quit"),
		}},
		{Title: "Network / Launcher", Bindings: []ui.HelpBinding{
			h(k.Up, "previous adapter or file"),
			h(k.Down, "next adapter or file"),
			h(k.Enter, "launch selected file"),
			h(k.Copy, "copy IPv4 or file path"),
			h(k.CopyAlt, "copy MAC address"),
			h(k.Refresh, "refresh adapters or rescan files"),
		}},
		{Title: "Converters / Theme", Bindings: []ui.HelpBinding{
			h(k.Up, "previous field"),
			h(k.Down, "next field"),
			h(k.Left, "previous option"),
			h(k.Right, "next option"),
			h(k.Enter, "convert or apply theme"),
			h(k.Copy, "copy result or HEX"),
			h(k.CopyAlt, "copy RGB"),
		}},
		{Title: "Pong", Bindings: []ui.HelpBinding{
			h(k.Enter, "start or restart"),
			h(k.PaddleUp, "left paddle up"),
			h(k.PaddleDown, "left paddle down"),
			{Keys: helpKeys(k.Up) + "/" + helpKeys(k.Down), Desc: "right paddle"},
		}},
	}
}

// clamp keeps cursor inside [0, n).
func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
