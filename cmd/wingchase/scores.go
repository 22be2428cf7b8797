package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wingchase/internal/platform/tui"
	"github.com/vovakirdan/wingchase/internal/registry"
	"github.com/vovakirdan/wingchase/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show fastest wins",
	Long: `Display the 10 fastest wins for the specified level.
Without a level, opens the interactive scoreboard for every level.

Examples:
  wingchase scores
  wingchase scores boxsphere
  wingchase scores courtyard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the level's run history")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening run database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	levelID := args[0]
	level, err := registry.Get(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'wingchase list' to see available levels.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", level.Title)
		return
	}

	runs, err := store.BestTimes(levelID, 10)
	if err != nil {
		exitf("retrieving runs: %v", err)
	}

	fmt.Printf("Fastest Wins - %s\n", level.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'wingchase play %s' to set the first time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %s\n", "Rank", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %s\n", "----", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-12s  %s\n", i+1,
			fmt.Sprintf("%.2fs", r.Elapsed.Seconds()), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Won: %d  Lost: %d\n", stats.Runs, stats.Wins, stats.Losses)
	}
}
