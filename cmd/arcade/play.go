package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dibyajd/dj-codex/internal/core"
	"github.com/Dibyajd/dj-codex/internal/games/snake"
	"github.com/Dibyajd/dj-codex/internal/platform/tui"
	"github.com/Dibyajd/dj-codex/internal/registry"
	"github.com/Dibyajd/dj-codex/internal/storage"
)

var flagPlayGrid int

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (snake if omitted).

Controls:
  Arrows/WASD  - Steer
  Space/P      - Pause
  R            - Restart (after game over)
  Esc/B        - Leave (when paused or over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  arcade play
  arcade play snake --grid 24
  arcade play --seed 42 --fps 30
  arcade play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayGrid, "grid", 0, "Board edge length (0 = from config)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	snakeCfg, err := withGrid(flagPlayGrid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	snake.SetConfig(snakeCfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Debug("starting game", "game", gameID, "grid", snakeCfg.Board.GridSize, "seed", flagSeed, "fps", flagFPS)
	runErr := tui.Run(game, store, logger, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
