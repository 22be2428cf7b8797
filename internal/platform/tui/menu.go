package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/registry"
	"github.com/vovakirdan/wingchase/internal/storage"
)

// menuDifficulties are cycled with left/right in the menu.
var menuDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// MenuKeyMap defines the key bindings for the level picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Easier     key.Binding
	Harder     key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s")),
		Easier:     key.NewBinding(key.WithKeys("left", "h", "a")),
		Harder:     key.NewBinding(key.WithKeys("right", "l", "d")),
		Select:     key.NewBinding(key.WithKeys("enter", " ")),
		Scoreboard: key.NewBinding(key.WithKeys("tab")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID     string
	Title       string
	Description string
	Best        string // fastest win, empty if none
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	difficulty     int // index into menuDifficulties
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	levels := registry.List()
	items := make([]MenuItem, 0, len(levels))

	var stats map[string]*storage.LevelStats
	if store != nil {
		stats, _ = store.GetAllLevelStats()
	}

	for _, l := range levels {
		item := MenuItem{
			LevelID:     l.ID,
			Title:       l.Title,
			Description: l.Description,
		}
		if s, ok := stats[l.ID]; ok && s.Wins > 0 {
			item.Best = formatElapsed(s.BestTime)
		}
		items = append(items, item)
	}

	return MenuModel{
		items:      items,
		difficulty: 1,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keys:       DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Easier):
		if m.difficulty > 0 {
			m.difficulty--
		}

	case key.Matches(msg, m.keys.Harder):
		if m.difficulty < len(menuDifficulties)-1 {
			m.difficulty++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText("  W I N G C H A S E  ", m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	// Level list
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.Best != "" {
			best = "  best " + item.Best
		}

		line := fmt.Sprintf("%s%s%s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.items[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.Difficulty()), m.width))
	b.WriteString("\n")

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset currently shown.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuDifficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.LevelID = m.Selected().LevelID
		result.Difficulty = m.Difficulty()
	} else {
		result.Quit = true
	}

	return result, nil
}
