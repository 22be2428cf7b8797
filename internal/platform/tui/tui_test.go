package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/game"
	"github.com/vovakirdan/wingchase/internal/levels"
	"github.com/vovakirdan/wingchase/internal/storage"
)

// loadLevel loads the default level without picking up user config files.
func loadLevel(t *testing.T) *levels.Loaded {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	loaded, err := levels.Load(levels.DefaultID, levels.Options{})
	if err != nil {
		t.Fatalf("levels.Load() error: %v", err)
	}
	return loaded
}

func newTestModel(t *testing.T, loaded *levels.Loaded, store *storage.Store) Model {
	t.Helper()
	mode, err := game.New(loaded.Scene, loaded.Config, audio.NopSink{}, audio.Bank{})
	if err != nil {
		t.Fatalf("game.New() error: %v", err)
	}
	return NewModel(mode, Options{
		LevelID: loaded.Info.ID,
		Player:  "tester",
		Store:   store,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapDefaults(t *testing.T) {
	km := NewKeyMap(config.KeysConfig{})

	tests := []struct {
		msg  tea.KeyMsg
		want core.Direction
	}{
		{runeKey('w'), core.DirUp},
		{tea.KeyMsg{Type: tea.KeyUp}, core.DirUp},
		{runeKey('s'), core.DirDown},
		{runeKey('a'), core.DirLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.DirRight},
		{runeKey('x'), core.DirNone},
	}
	for _, tc := range tests {
		if got := km.Direction(tc.msg); got != tc.want {
			t.Errorf("Direction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestKeyMapCustom(t *testing.T) {
	km := NewKeyMap(config.KeysConfig{Up: []string{"i"}, Left: []string{"j"}})

	if got := km.Direction(runeKey('i')); got != core.DirUp {
		t.Errorf("Direction(i) = %v, expected Up", got)
	}
	if got := km.Direction(runeKey('w')); got != core.DirNone {
		t.Errorf("Direction(w) = %v, expected None once up is rebound", got)
	}
	// Unset actions keep their defaults.
	if got := km.Direction(runeKey('d')); got != core.DirRight {
		t.Errorf("Direction(d) = %v, expected Right", got)
	}
}

func TestHoldTracker(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := newHoldTracker(500*time.Millisecond, 100*time.Millisecond)

	if !h.press(core.DirUp, t0) {
		t.Error("first press should be new")
	}
	// Waiting for the terminal's repeat delay.
	if got := h.expire(t0.Add(400 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expire before repeat delay = %v, expected none", got)
	}
	if h.press(core.DirUp, t0.Add(450*time.Millisecond)) {
		t.Error("repeat should not be a new press")
	}
	// Repeats use the shorter timeout.
	if got := h.expire(t0.Add(500 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expire within hold timeout = %v, expected none", got)
	}
	got := h.expire(t0.Add(600 * time.Millisecond))
	if len(got) != 1 || got[0] != core.DirUp {
		t.Errorf("expire after hold timeout = %v, expected [Up]", got)
	}
	if !h.press(core.DirUp, t0.Add(700*time.Millisecond)) {
		t.Error("press after release should be new")
	}
}

func TestHoldTrackerReleaseAll(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := newHoldTracker(time.Second, time.Second)
	h.press(core.DirLeft, t0)
	h.press(core.DirUp, t0)

	got := h.releaseAll()
	if len(got) != 2 {
		t.Errorf("releaseAll() = %v, expected 2 directions", got)
	}
	if len(h.releaseAll()) != 0 {
		t.Error("second releaseAll() should be empty")
	}
}

func TestModelKeyHoldMovesCamera(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	t0 := time.Unix(1000, 0)
	m.now = func() time.Time { return t0 }
	start := m.Mode().Camera().Position()

	m, _ = update(t, m, runeKey('w'))
	if !m.Mode().Input().Up.Pressed {
		t.Fatal("w should hold Up")
	}

	m, cmd := update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	// The camera starts looking along +Y.
	if y := m.Mode().Camera().Position().Y(); y <= start.Y() {
		t.Errorf("camera Y = %v, expected to move forward from %v", y, start.Y())
	}

	// No repeat arrives within the repeat delay.
	m, _ = update(t, m, TickMsg(t0.Add(time.Second)))
	if m.Mode().Input().Up.Pressed {
		t.Error("Up should be released when repeats stop")
	}
}

func TestModelRepeatIsNotNewPress(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	t0 := time.Unix(1000, 0)
	m.now = func() time.Time { return t0 }

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, runeKey('d'))
	if downs := m.Mode().Input().Right.Downs; downs != 1 {
		t.Errorf("Right.Downs = %d, expected 1", downs)
	}
}

func TestModelMouseLook(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	before := m.Mode().Camera().Camera.Transform.Rotation

	// Motion before a click is ignored.
	m, _ = update(t, m, tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionMotion})
	if m.Mode().Camera().Camera.Transform.Rotation != before {
		t.Error("motion without look mode should not turn the camera")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Mode().Input().Looking() {
		t.Fatal("click should enter look mode")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionMotion})
	after := m.Mode().Camera().Camera.Transform.Rotation
	if after.ApproxEqual(before) {
		t.Error("motion in look mode should turn the camera")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode().Input().Looking() {
		t.Error("esc should leave look mode")
	}
}

func TestModelWheelDoesNotLook(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.Mode().Input().Looking() {
		t.Error("wheel should not enter look mode")
	}
}

func TestFrameTime(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	t0 := time.Unix(1000, 0)

	if got := m.frameTime(t0); got != time.Second/60 {
		t.Errorf("first frameTime = %v, expected %v", got, time.Second/60)
	}
	m.lastTick = t0
	if got := m.frameTime(t0.Add(20 * time.Millisecond)); got != 20*time.Millisecond {
		t.Errorf("frameTime = %v, expected 20ms", got)
	}
	if got := m.frameTime(t0.Add(5 * time.Second)); got != 100*time.Millisecond {
		t.Errorf("frameTime after a stall = %v, expected max step 100ms", got)
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	loaded := loadLevel(t)
	// Put the target on the camera so the first tick wins.
	loaded.Scene.Find("Target").Position = loaded.Scene.Cameras[0].Transform.Position

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, loaded, store)
	t0 := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(t0))
	if m.Mode().State() != game.StateWon {
		t.Fatalf("state = %v, expected won", m.Mode().State())
	}
	m, _ = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))

	runs, err := store.BestTimes(loaded.Info.ID, 10)
	if err != nil {
		t.Fatalf("BestTimes() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, expected 1", len(runs))
	}
	if runs[0].Player != "tester" || runs[0].Outcome != storage.OutcomeWon {
		t.Errorf("run = %+v, expected a win by tester", runs[0])
	}
	if !strings.Contains(m.View(), "You win!") {
		t.Error("view should show the win message")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeSetsAspect(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
	if got := m.Mode().Camera().Camera.Aspect; !mgl32.FloatEqual(got, 3) {
		t.Errorf("Aspect = %v, expected 3", got)
	}
}

func TestDrawSession(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	scr := core.NewScreen(60, 20)
	drawSession(scr, m.Mode())

	if !strings.Contains(scr.Row(0), "Balls = Death, Wings = Success!") {
		t.Errorf("status row = %q, expected the prompt", scr.Row(0))
	}
	var rows []string
	for y := 1; y < 19; y++ {
		rows = append(rows, scr.Row(y))
	}
	out := strings.Join(rows, "\n")
	for _, glyph := range []string{"↑", "W", "O"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("map missing %q:\n%s", glyph, out)
		}
	}
	if !strings.Contains(scr.Row(19), "alt") {
		t.Errorf("info row = %q, expected readouts", scr.Row(19))
	}
}

func TestDrawSessionTooSmall(t *testing.T) {
	m := newTestModel(t, loadLevel(t), nil)
	scr := core.NewScreen(10, 4)
	drawSession(scr, m.Mode())
	if !strings.Contains(scr.String(), "small") {
		t.Errorf("small screen should show a warning:\n%s", scr.String())
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		forward mgl32.Vec3
		want    rune
	}{
		{mgl32.Vec3{1, 0, 0}, '→'},
		{mgl32.Vec3{0, 1, 0}, '↑'},
		{mgl32.Vec3{-1, 0, 0}, '←'},
		{mgl32.Vec3{0, -1, 0}, '↓'},
		{mgl32.Vec3{1, 1, 0}, '↗'},
		{mgl32.Vec3{-1, -1, 0}, '↙'},
		{mgl32.Vec3{0, 0, -1}, cameraFlat},
	}
	for _, tc := range tests {
		if got := heading(tc.forward); got != tc.want {
			t.Errorf("heading(%v) = %q, expected %q", tc.forward, got, tc.want)
		}
	}
}

func TestScoreboardShowsFastestWins(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{LevelID: "boxsphere", Player: "slow", Outcome: storage.OutcomeWon, Elapsed: 9 * time.Second},
		{LevelID: "boxsphere", Player: "fast", Outcome: storage.OutcomeWon, Elapsed: 3 * time.Second},
		{LevelID: "boxsphere", Player: "unlucky", Outcome: storage.OutcomeLost, Elapsed: time.Second},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.levels) == 0 || m.levels[0].ID != "boxsphere" {
		t.Fatalf("levels = %v, expected boxsphere first", m.levels)
	}
	if len(m.runs) != 2 || m.runs[0].Player != "fast" {
		t.Errorf("runs = %+v, expected two wins with fast first", m.runs)
	}
	if m.stats == nil || m.stats.Losses != 1 {
		t.Errorf("stats = %+v, expected one loss", m.stats)
	}

	view := m.View()
	for _, want := range []string{"FASTEST WINS", "3.0s", "fast", "3 runs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Next level has no runs.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if sm := next.(ScoreboardModel); len(sm.runs) != 0 {
		t.Errorf("runs after tab = %d, expected 0", len(sm.runs))
	}
}

func TestMenuSelectsLevelAndDifficulty(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if len(m.items) < 2 {
		t.Fatalf("menu items = %d, expected every registered level", len(m.items))
	}
	if m.Difficulty() != config.DifficultyNormal {
		t.Errorf("default difficulty = %v, expected normal", m.Difficulty())
	}

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyRight})
	press(tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("difficulty = %v, expected hard to be the last preset", m.Difficulty())
	}
	if !strings.Contains(m.View(), m.items[1].Description) {
		t.Error("view should describe the highlighted level")
	}

	press(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().LevelID != m.items[1].LevelID {
		t.Errorf("Selected() = %+v, expected %s", m.Selected(), m.items[1].LevelID)
	}
}

func TestSSHServerShutdownClosesStoreAfterServer(t *testing.T) {
	loaded := loadLevel(t)
	dir := t.TempDir()

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "runs.db"),
		IdleTimeout: time.Minute,
		TickRate:    60,
		Level:       loaded,
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() error: %v", err)
	}
	if srv.store == nil {
		t.Fatal("store = nil, expected an open run database")
	}
	if _, err := srv.store.SaveRun(storage.Run{LevelID: loaded.Info.ID, Player: "tester", Outcome: storage.OutcomeWon}); err != nil {
		t.Fatalf("SaveRun() before shutdown error: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v, expected nil", err)
	}
	if _, err := srv.store.SaveRun(storage.Run{LevelID: loaded.Info.ID, Player: "tester", Outcome: storage.OutcomeWon}); err == nil {
		t.Error("SaveRun() after shutdown = nil error, expected a closed database")
	}
}
