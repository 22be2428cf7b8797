package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/game"
	"github.com/vovakirdan/wingchase/internal/storage"
)

// Options configures a play session.
type Options struct {
	LevelID    string
	Player     string
	Difficulty string
	Store      *storage.Store // nil disables run history
	Logger     *log.Logger    // nil discards
	Runtime    core.RuntimeConfig
}

// ReloadMsg replaces the running session, e.g. after a level file changed.
type ReloadMsg struct {
	Mode *game.Mode
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	mode   *game.Mode
	opts   Options
	keys   KeyMap
	help   help.Model
	screen *core.Screen
	hold   *holdTracker
	now    func() time.Time

	lastTick       time.Time
	mouseX, mouseY int
	saved          bool // Whether the finished run has been stored
	quitting       bool
}

// NewModel creates a new Bubble Tea model around mode.
func NewModel(mode *game.Mode, opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultRuntimeConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := mode.Config()

	m := Model{
		mode:   mode,
		opts:   opts,
		keys:   NewKeyMap(cfg.Keys),
		help:   help.New(),
		screen: core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 0)),
		hold:   newHoldTracker(cfg.Platform.RepeatDelay, cfg.Platform.HoldTimeout),
		now:    time.Now,
	}
	m.help.Width = opts.Runtime.ScreenW
	m.setAspect()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		// Repeats stop arriving while unfocused.
		for _, d := range m.hold.releaseAll() {
			m.mode.HandleEvent(core.KeyUpEvent(d), m.windowH())
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.mode.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.mode.HandleEvent(core.Event{Kind: core.EventCancel}, m.windowH())
		return m, nil
	}

	if d := m.keys.Direction(msg); d != core.DirNone {
		// Auto-repeats only keep the key held.
		if m.hold.press(d, m.now()) {
			m.mode.HandleEvent(core.KeyDownEvent(d), m.windowH())
		}
	}
	return m, nil
}

// handleMouse turns clicks into look mode and motion into look deltas.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if tea.MouseEvent(msg).IsWheel() {
			return m, nil
		}
		m.mode.HandleEvent(core.Event{Kind: core.EventPointerDown}, m.windowH())
		m.mouseX, m.mouseY = msg.X, msg.Y

	case tea.MouseActionMotion:
		dx, dy := msg.X-m.mouseX, msg.Y-m.mouseY
		m.mouseX, m.mouseY = msg.X, msg.Y
		if dx != 0 || dy != 0 {
			m.mode.HandleEvent(core.MotionEvent(float32(dx), float32(dy)), m.windowH())
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	m.setAspect()
	return m, nil
}

// handleTick releases stale keys, advances the session and stores a finished run once.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, d := range m.hold.expire(now) {
		m.mode.HandleEvent(core.KeyUpEvent(d), m.windowH())
	}

	m.mode.Update(float32(m.frameTime(now).Seconds()))
	m.lastTick = now

	if m.mode.Terminal() && !m.saved {
		m.saveRun()
		m.saved = true
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// frameTime measures the time since the previous tick, capped at the level's max step.
func (m Model) frameTime(now time.Time) time.Duration {
	nominal := time.Second / time.Duration(m.opts.Runtime.TickRate)
	if m.lastTick.IsZero() {
		return nominal
	}
	dt := now.Sub(m.lastTick)
	if dt < 0 {
		return 0
	}
	return min(dt, m.mode.Config().Platform.MaxStep)
}

func (m Model) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Mode == nil {
		return m, nil
	}
	m.mode.Close()
	m.mode = msg.Mode
	cfg := m.mode.Config()
	m.keys = NewKeyMap(cfg.Keys)
	m.hold = newHoldTracker(cfg.Platform.RepeatDelay, cfg.Platform.HoldTimeout)
	m.lastTick = time.Time{}
	m.saved = false
	m.setAspect()
	m.opts.Logger.Info("level reloaded", "level", m.opts.LevelID)
	return m, nil
}

func (m Model) saveRun() {
	outcome := storage.OutcomeWon
	if m.mode.State() == game.StateLost {
		outcome = storage.OutcomeLost
	}
	elapsed := time.Duration(m.mode.Elapsed() * float64(time.Second))
	m.opts.Logger.Info("run finished", "level", m.opts.LevelID, "player", m.opts.Player,
		"outcome", outcome, "elapsed", elapsed)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		LevelID:    m.opts.LevelID,
		Player:     m.opts.Player,
		Outcome:    outcome,
		Difficulty: m.opts.Difficulty,
		Elapsed:    elapsed,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
}

func (m Model) setAspect() {
	if m.opts.Runtime.ScreenH > 0 {
		m.mode.Camera().Camera.Aspect = float32(m.opts.Runtime.ScreenW) / float32(m.opts.Runtime.ScreenH)
	}
}

// windowH is the height pointer deltas are normalized by.
func (m Model) windowH() float32 {
	return float32(m.opts.Runtime.ScreenH)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawSession(m.screen, m.mode)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Mode returns the running session.
func (m Model) Mode() *game.Mode {
	return m.mode
}

// NewProgram wraps a model in a full-screen program with mouse motion reporting.
func NewProgram(model Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}, opts...)
	return tea.NewProgram(model, opts...)
}

// Run starts the Bubble Tea program for mode and blocks until it exits.
func Run(mode *game.Mode, opts Options) error {
	_, err := NewProgram(NewModel(mode, opts)).Run()
	return err
}
