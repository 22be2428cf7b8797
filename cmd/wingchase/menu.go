package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wingchase/internal/levels"
	"github.com/vovakirdan/wingchase/internal/platform/tui"
	"github.com/vovakirdan/wingchase/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start wingchase with a level picker menu",
	Long: `Start wingchase in interactive menu mode.

Use arrow keys or j/k to pick a level, left/right to pick a difficulty
and Enter to play. Quitting a level returns you to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Difficulty
  Enter/Space     - Play level
  Tab             - Scoreboard
  Q               - Quit

Examples:
  wingchase menu
  wingchase menu --fps 30
  wingchase menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	menuCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with runs")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := fileLogger("wingchase")
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}

	cfg := terminalRuntime()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}

		loaded, err := levels.Load(menuResult.LevelID, levels.Options{Difficulty: menuResult.Difficulty})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if err := playSession(loaded, string(menuResult.Difficulty), store, logger, cfg, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
