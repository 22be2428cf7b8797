// Package game runs one session of a level: bouncing hazards and goal, the
// ankle wobble, the flying camera and the win/lose state machine.
//
// A Mode mutates the scene it is given. Callers that need a pristine level
// again (a new session, another SSH client) pass a Scene.Clone().
package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/scene"
)

var (
	// ErrMissingNode is returned by New when a required transform is absent.
	ErrMissingNode = errors.New("game: scene is missing node")
	// ErrCameraCount is returned by New when the scene does not have exactly one camera.
	ErrCameraCount = errors.New("game: wrong camera count")
)

// State is the session outcome so far.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "playing"
	}
}

// Option configures a Mode.
type Option func(*Mode)

// WithLogger sets the logger for construction and transitions.
func WithLogger(l *log.Logger) Option {
	return func(m *Mode) {
		if l != nil {
			m.logger = l
		}
	}
}

// Mode is one play session.
type Mode struct {
	scene  *scene.Scene
	cfg    config.Level
	sink   audio.Sink
	bank   audio.Bank
	logger *log.Logger

	input      core.InputState
	bodies     []*Body // gravity hazard first, then the other hazard, then the goal
	hazards    []*Body
	goal       *Body
	oscillator *Oscillator
	camera     *CameraController
	music      audio.Handle

	win     bool
	lose    bool
	elapsed float64
	ticks   uint64
}

// New binds a session to sc. It fails if a configured node is missing or the
// scene does not have exactly one camera. Background music starts immediately.
// A nil sink discards audio.
func New(sc *scene.Scene, cfg config.Level, sink audio.Sink, bank audio.Bank, opts ...Option) (*Mode, error) {
	if sink == nil {
		sink = audio.NopSink{}
	}
	m := &Mode{
		scene:  sc,
		cfg:    cfg,
		sink:   sink,
		bank:   bank,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}

	find := func(name string) (*scene.Transform, error) {
		t := sc.Find(name)
		if t == nil {
			return nil, fmt.Errorf("%w %q", ErrMissingNode, name)
		}
		return t, nil
	}

	box := cfg.Bounds.Box()
	var rest []*Body
	for _, h := range cfg.Hazards {
		node, err := find(h.Node)
		if err != nil {
			return nil, err
		}
		b := &Body{Node: node, Velocity: h.Velocity, Gravity: h.Gravity, Bounds: box}
		m.hazards = append(m.hazards, b)
		if b.Gravity != 0 {
			m.bodies = append(m.bodies, b)
		} else {
			rest = append(rest, b)
		}
	}
	goalNode, err := find(cfg.Goal.Node)
	if err != nil {
		return nil, err
	}
	m.goal = &Body{Node: goalNode, Velocity: cfg.Goal.Velocity, Bounds: box}
	m.bodies = append(append(m.bodies, rest...), m.goal)

	left, err := find(cfg.Oscillator.LeftAnkle)
	if err != nil {
		return nil, err
	}
	right, err := find(cfg.Oscillator.RightAnkle)
	if err != nil {
		return nil, err
	}
	m.oscillator = NewOscillator(left, right, cfg.Oscillator.Rate, cfg.Oscillator.Amplitude)

	if n := len(sc.Cameras); n != 1 {
		return nil, fmt.Errorf("%w: expecting scene to have exactly one camera, but it has %d", ErrCameraCount, n)
	}
	m.camera = &CameraController{
		Camera:      sc.Cameras[0],
		Speed:       cfg.Camera.Speed,
		Sensitivity: cfg.Camera.LookSensitivity,
		Bounds:      box,
	}

	m.music = m.sink.Loop(bank.BGM, cfg.Audio.BGMVolume)
	m.logger.Debug("session started",
		"hazards", len(m.hazards),
		"goal", goalNode.Name,
		"camera", m.camera.Camera.Transform.Name)
	return m, nil
}

// HandleEvent applies one input event. windowH is the window height in the
// units of the event's pointer deltas. It reports whether the event was used.
func (m *Mode) HandleEvent(ev core.Event, windowH float32) bool {
	switch ev.Kind {
	case core.EventKeyDown:
		if m.input.Button(ev.Direction) == nil {
			return false
		}
		m.input.KeyDown(ev.Direction)
		return true
	case core.EventKeyUp:
		if m.input.Button(ev.Direction) == nil {
			return false
		}
		m.input.KeyUp(ev.Direction)
		return true
	case core.EventPointerDown:
		return m.input.PointerDown()
	case core.EventCancel:
		if !m.input.Looking() {
			return false
		}
		m.input.CancelLook()
		return true
	case core.EventPointerMotion:
		if !m.input.Looking() || windowH <= 0 {
			return false
		}
		// Window Y grows downward; pitch up on upward motion.
		m.camera.ApplyLook(ev.DX, -ev.DY, 1/windowH)
		return true
	}
	return false
}

// Update advances the session by dt seconds. It does nothing once won or lost.
func (m *Mode) Update(dt float32) {
	if m.Terminal() {
		return
	}
	m.ticks++
	m.elapsed += float64(dt)

	m.oscillator.Advance(dt)
	for _, b := range m.bodies {
		b.Advance(dt)
	}
	m.camera.Advance(dt, &m.input)
	m.camera.SyncListener(m.sink, m.cfg.Audio.ListenerRamp)

	eye := m.camera.Position()
	if m.goal.Position().Sub(eye).Len() < m.cfg.Rules.WinRadius {
		m.win = true
		m.sink.Play(m.bank.Win, m.cfg.Audio.CueVolume, m.cfg.Audio.CuePan)
		m.logger.Info("you win", "elapsed", m.elapsed, "ticks", m.ticks)
	}
	for _, h := range m.hazards {
		if h.Position().Sub(eye).Len() < m.cfg.Rules.LoseRadius {
			m.lose = true
			m.sink.Play(m.bank.Lose, m.cfg.Audio.CueVolume, m.cfg.Audio.CuePan)
			m.logger.Info("you lose", "elapsed", m.elapsed, "ticks", m.ticks, "hazard", h.Node.Name)
			break
		}
	}

	m.input.ConsumeAndReset()
}

// Close stops the background music.
func (m *Mode) Close() {
	if m.music != nil {
		m.music.Stop()
		m.music = nil
	}
}

// State returns the outcome. A tick that both wins and loses reports StateLost.
func (m *Mode) State() State {
	switch {
	case m.lose:
		return StateLost
	case m.win:
		return StateWon
	default:
		return StatePlaying
	}
}

// Won reports whether the win transition has fired.
func (m *Mode) Won() bool { return m.win }

// Lost reports whether the lose transition has fired.
func (m *Mode) Lost() bool { return m.lose }

// Terminal reports whether the simulation is frozen.
func (m *Mode) Terminal() bool { return m.win || m.lose }

// Status returns the overlay line for the current state.
func (m *Mode) Status() string {
	switch m.State() {
	case StateLost:
		return m.cfg.Messages.Lose
	case StateWon:
		return m.cfg.Messages.Win
	default:
		return m.cfg.Messages.Prompt
	}
}

// Elapsed returns the seconds simulated while playing.
func (m *Mode) Elapsed() float64 { return m.elapsed }

// Ticks returns the number of simulated updates.
func (m *Mode) Ticks() uint64 { return m.ticks }

// Scene returns the scene the session mutates.
func (m *Mode) Scene() *scene.Scene { return m.scene }

// Config returns the tuning the session was built with.
func (m *Mode) Config() config.Level { return m.cfg }

// Camera returns the camera controller.
func (m *Mode) Camera() *CameraController { return m.camera }

// Oscillator returns the ankle wobble.
func (m *Mode) Oscillator() *Oscillator { return m.oscillator }

// Hazards returns the hazard bodies in config order.
func (m *Mode) Hazards() []*Body { return m.hazards }

// Goal returns the goal body.
func (m *Mode) Goal() *Body { return m.goal }

// Input exposes the held-direction state for display.
func (m *Mode) Input() *core.InputState { return &m.input }
