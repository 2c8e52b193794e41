package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dibyajd/dj-codex/internal/config"
	"github.com/Dibyajd/dj-codex/internal/games/snake"
	"github.com/Dibyajd/dj-codex/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeGame   string
	flagIdleTimeout int
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection starts straight into a game. Leaving a finished or
paused game shows the high score table; leaving the table starts a new
game. Scores are stored per-server (all users share the same leaderboard)
under their SSH user name.

With --watch, edits to the --config file apply to every game started
afterwards.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --db ./scores.db          # Use specific database
  arcade serve --config ./snake.yaml --watch  # Reload config on change

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeGame, "game", "snake", "Game every session plays")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the --config file when it changes")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		GameID:      flagServeGame,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("arcade-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if flagWatch {
		watcher, err := watchConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// watchConfig reloads the --config file into new games as it changes.
func watchConfig() (*config.Watcher, error) {
	if flagConfig == "" {
		return nil, errors.New("--watch needs --config")
	}

	watcher, err := config.NewWatcher(flagConfig,
		func(cfg config.SnakeConfig) {
			snake.SetConfig(cfg)
			logger.Info("config reloaded", "grid", cfg.Board.GridSize, "tick", cfg.Timing.TickInterval)
		},
		func(err error) {
			logger.Warn("config not reloaded", "error", err)
		},
	)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(context.Background()); err != nil {
		watcher.Close()
		return nil, err
	}
	logger.Info("watching config", "path", watcher.Path())
	return watcher, nil
}
