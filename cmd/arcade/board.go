package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dibyajd/dj-codex/internal/platform/tui"
	"github.com/Dibyajd/dj-codex/internal/registry"
	"github.com/Dibyajd/dj-codex/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board [game]",
	Short: "Browse high scores interactively",
	Long: `Open a scrollable high score table for a game (snake if omitted).

Examples:
  arcade board
  arcade board snake --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, args []string) {
	gameID := gameArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.RunScoreboard(store, gameID, width, height)
	store.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", runErr)
		os.Exit(1)
	}
}
