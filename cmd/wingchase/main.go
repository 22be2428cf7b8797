// wingchase is a first-person chase played in the terminal: fly the camera
// into the winged target before a bouncing ball hits you.
//
// Usage:
//
//	wingchase list              - List available levels
//	wingchase play [level]      - Play a level
//	wingchase menu              - Pick levels interactively
//	wingchase serve             - Start SSH server for remote play
//	wingchase scores [level]    - Show fastest wins
//	wingchase sim [level]       - Run a level headless with scripted input
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.wingchase/runs.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Log file used while the full-screen UI runs
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wingchase/internal/config"
	"github.com/vovakirdan/wingchase/internal/levels"
	"github.com/vovakirdan/wingchase/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wingchase",
	Short: "Wingchase - catch the winged target, dodge the balls",
	Long: `Wingchase is a first-person chase in your terminal. Two balls bounce
around a box. Fly into the flapping target before either of them reaches you.

Available commands:
  list     - Show all available levels
  play     - Play a level
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View fastest wins
  sim      - Run a level headless

Examples:
  wingchase list
  wingchase play
  wingchase play courtyard --difficulty hard
  wingchase menu
  wingchase serve --ssh :2222
  wingchase scores boxsphere`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wingchase/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.wingchase/wingchase.log", "Log file used by the full-screen UI")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger opens --log-file for appending. The alt screen owns the terminal
// while playing, so logs cannot go to stderr.
func fileLogger(prefix string) (*log.Logger, func(), error) {
	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "wingchase")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// levelFlags are shared by every command that loads a level.
type levelFlags struct {
	config     string
	scene      string
	difficulty string
}

func (f *levelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "Path to custom level tuning YAML")
	cmd.Flags().StringVar(&f.scene, "scene", "", "Path to custom scene YAML")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// load resolves the level named in args, or the default level.
func (f *levelFlags) load(args []string) (*levels.Loaded, error) {
	levelID := levels.DefaultID
	if len(args) > 0 {
		levelID = args[0]
	}
	if !registry.Exists(levelID) {
		return nil, fmt.Errorf("unknown level %q\nRun 'wingchase list' to see available levels", levelID)
	}

	preset := config.ParseDifficulty(f.difficulty)
	if f.difficulty != "" && preset == "" {
		return nil, fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", f.difficulty)
	}

	return levels.Load(levelID, levels.Options{
		ScenePath:  f.scene,
		ConfigPath: f.config,
		Difficulty: preset,
	})
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
