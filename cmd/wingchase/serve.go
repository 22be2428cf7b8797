package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wingchase/internal/platform/tui"
)

var (
	serveLevel      levelFlags
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [level]",
	Short: "Start the wingchase SSH server",
	Long: `Start an SSH server that lets users connect and play a level.

Each SSH connection gets its own copy of the level. Runs are stored
per-server under the SSH user name, so everyone shares one scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wingchase/host_key

Examples:
  wingchase serve                           # Listen on :23234 with auto-generated key
  wingchase serve courtyard --ssh :2222     # Serve another level on port 2222
  wingchase serve --host-key ./my_host_key  # Use specific host key
  wingchase serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveLevel.register(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	loaded, err := serveLevel.load(args)
	if err != nil {
		exitf("%v", err)
	}

	logger, err := newLogger(os.Stderr, "wingchase-ssh")
	if err != nil {
		exitf("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Level:       loaded,
		Difficulty:  serveLevel.difficulty,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		exitf("creating server: %v", err)
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", cfg.Address)
	logger.Info("press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("server: %v", err)
	}
}
