package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/core"
)

// KeyMap translates Bubble Tea key messages to directions and commands.
// Bindings come from the level's keys section.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Look   key.Binding // help only; look mode is entered with the mouse
	Cancel key.Binding
	Quit   key.Binding
}

// NewKeyMap builds bindings from config. Empty lists fall back to the defaults.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	def := config.DefaultKeys()
	pick := func(keys, fallback []string) []string {
		if len(keys) == 0 {
			return fallback
		}
		return keys
	}
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		)
	}

	return KeyMap{
		Left:  bind(pick(cfg.Left, def.Left), "strafe left"),
		Right: bind(pick(cfg.Right, def.Right), "strafe right"),
		Up:    bind(pick(cfg.Up, def.Up), "forward"),
		Down:  bind(pick(cfg.Down, def.Down), "back"),
		Look: key.NewBinding(
			key.WithKeys("click"),
			key.WithHelp("click", "mouse look"),
		),
		Cancel: bind(pick(cfg.Cancel, def.Cancel), "stop looking"),
		Quit:   bind(pick(cfg.Quit, def.Quit), "quit"),
	}
}

// Direction returns the movement direction bound to msg, or core.DirNone.
func (k KeyMap) Direction(msg tea.KeyMsg) core.Direction {
	switch {
	case key.Matches(msg, k.Left):
		return core.DirLeft
	case key.Matches(msg, k.Right):
		return core.DirRight
	case key.Matches(msg, k.Up):
		return core.DirUp
	case key.Matches(msg, k.Down):
		return core.DirDown
	}
	return core.DirNone
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Look, k.Cancel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Look, k.Cancel, k.Quit},
	}
}
