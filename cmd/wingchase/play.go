package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wingchase/internal/audio"
	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/game"
	"github.com/vovakirdan/wingchase/internal/levels"
	"github.com/vovakirdan/wingchase/internal/platform/tui"
	"github.com/vovakirdan/wingchase/internal/storage"
	"github.com/vovakirdan/wingchase/internal/watch"
)

var (
	playLevel  levelFlags
	flagMute   bool
	flagWatch  bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level (default: boxsphere).

Controls:
  W/S, Up/Down      - Fly forward/back
  A/D, Left/Right   - Strafe
  Mouse click       - Start mouse look, then move the mouse
  Esc               - Stop mouse look
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Balls move at 75% speed
  normal - Balls move at the configured speed
  hard   - Balls move at 150% speed
  fixed  - Configured speed, no scaling

Examples:
  wingchase play
  wingchase play courtyard --difficulty easy
  wingchase play --config ./my-level.yaml --watch
  wingchase play --scene ./arena.scene.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playLevel.register(playCmd)
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart the level when --config or --scene files change")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with runs")
}

func runPlay(cmd *cobra.Command, args []string) {
	if flagWatch && playLevel.config == "" && playLevel.scene == "" {
		exitf("--watch needs --config or --scene")
	}

	loaded, err := playLevel.load(args)
	if err != nil {
		exitf("%v", err)
	}

	logger, closeLog, err := fileLogger("wingchase")
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - the level still plays
		store = nil
	}

	runErr := playSession(loaded, playLevel.difficulty, store, logger, terminalRuntime(), flagWatch)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running level: %v", runErr)
	}
}

// terminalRuntime sizes the first frame to the terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// playSession runs one level in the full-screen UI until the player quits.
func playSession(loaded *levels.Loaded, difficulty string, store *storage.Store, logger *log.Logger, rt core.RuntimeConfig, watchFiles bool) error {
	sink := openSink(logger)
	if out, ok := sink.Next.(*audio.EbitenSink); ok {
		defer out.Close()
	}
	bank := loadBank(loaded, logger)

	mode, err := newMode(loaded, sink, bank, logger)
	if err != nil {
		return err
	}

	player := flagPlayer
	if player == "" {
		player = "player"
	}

	model := tui.NewModel(mode, tui.Options{
		LevelID:    loaded.Info.ID,
		Player:     player,
		Difficulty: difficulty,
		Store:      store,
		Logger:     logger,
		Runtime:    rt,
	})
	p := tui.NewProgram(model)

	if watchFiles {
		w, watchErr := watch.New(playLevel.config, playLevel.scene)
		if watchErr != nil {
			return fmt.Errorf("cannot watch level files: %w", watchErr)
		}
		defer w.Close()
		go reloadOnChange(w, p.Send, loaded.Info.ID, sink, bank, logger)
	}

	_, err = p.Run()
	return err
}

// openSink returns the sound output wrapped in a cue log.
func openSink(logger *log.Logger) *audio.LogSink {
	sink := audio.NewLogSink(logger)
	if flagMute {
		return sink
	}
	out, err := audio.NewEbitenSink()
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return sink
	}
	sink.Next = out
	return sink
}

func loadBank(loaded *levels.Loaded, logger *log.Logger) audio.Bank {
	a := loaded.Config.Audio
	bank, err := audio.LoadBank(a.BGM, a.Win, a.Lose)
	if err != nil {
		logger.Warn("could not load audio samples, using built-in tones", "error", err)
		return audio.SynthBank()
	}
	return bank
}

func newMode(loaded *levels.Loaded, sink audio.Sink, bank audio.Bank, logger *log.Logger) (*game.Mode, error) {
	mode, err := game.New(loaded.Scene, loaded.Config, sink, bank, game.WithLogger(logger))
	if errors.Is(err, game.ErrMissingNode) || errors.Is(err, game.ErrCameraCount) {
		return nil, fmt.Errorf("level %s does not match its scene: %w", loaded.Info.ID, err)
	}
	return mode, err
}

// reloadOnChange rebuilds the session each time a watched file changes.
// Broken edits are logged and the running session is kept.
func reloadOnChange(w *watch.Watcher, send func(tea.Msg), levelID string, sink audio.Sink, bank audio.Bank, logger *log.Logger) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			loaded, err := playLevel.load([]string{levelID})
			if err != nil {
				logger.Warn("reload failed", "file", path, "error", err)
				continue
			}
			mode, err := newMode(loaded, sink, bank, logger)
			if err != nil {
				logger.Warn("reload failed", "file", path, "error", err)
				continue
			}
			send(tui.ReloadMsg{Mode: mode})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
