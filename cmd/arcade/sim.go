package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dibyajd/dj-codex/internal/games/snake"
	"github.com/Dibyajd/dj-codex/internal/replay"
	"github.com/Dibyajd/dj-codex/internal/storage"
)

var (
	flagSimMaxTicks int
	flagSimOut      string
	flagSimSave     bool
	flagSimGrid     int
	flagSimRuns     int
	flagSimWorkers  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play",
	Long: `Run the snake engine headless with a greedy autopilot until each game
ends or --max-ticks is reached. Run i of a batch uses seed --seed + i.

Every tick of every run can be written to one parquet replay file (rows
carry a run id), and final scores can be saved to the score table under
the player name "autopilot".

Examples:
  arcade sim --seed 42
  arcade sim --grid 10 --out ./runs/run.parquet
  arcade sim --runs 100 --workers 8 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", replay.DefaultMaxTicks, "Stop a run after this many moves")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write a parquet replay to this path")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save final scores to the database")
	simCmd.Flags().IntVar(&flagSimGrid, "grid", 0, "Board edge length (0 = from config)")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent games (0 = number of CPUs)")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := withGrid(flagSimGrid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := replay.SimulateBatch(ctx, replay.SimOptions{
		GridSize: cfg.Board.GridSize,
		Seed:     seed,
		MaxTicks: flagSimMaxTicks,
	}, flagSimRuns, flagSimWorkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	best, total := 0, 0
	for _, res := range results {
		final := res.Final
		logger.Debug("run finished",
			"run", res.Recorder.RunID(),
			"ticks", res.Ticks,
			"score", final.Score,
			"length", len(final.Snake),
			"status", final.Status,
		)
		best = max(best, final.Score)
		total += final.Score
	}

	avg := 0.0
	if len(results) > 0 {
		avg = float64(total) / float64(len(results))
	}
	logger.Info("simulation finished",
		"runs", len(results),
		"seed", seed,
		"grid", cfg.Board.GridSize,
		"best", best,
		"avg", fmt.Sprintf("%.1f", avg),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if flagSimOut != "" {
		rows := replay.BatchRows(results)
		if err := replay.WriteFile(flagSimOut, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing replay: %v\n", err)
			os.Exit(1)
		}
		logger.Info("replay written", "path", flagSimOut, "rows", len(rows))
	}

	if flagSimSave {
		if err := saveSimScores(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving scores: %v\n", err)
			os.Exit(1)
		}
	}
}

// saveSimScores records every run under the autopilot player.
func saveSimScores(results []replay.SimResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, res := range results {
		final := res.Final
		if _, err := store.SaveScore(storage.ScoreRecord{
			GameID:   snake.GameID,
			Player:   "autopilot",
			Score:    final.Score,
			Length:   len(final.Snake),
			GridSize: final.GridSize,
		}); err != nil {
			return err
		}
	}
	logger.Info("scores saved", "count", len(results))
	return nil
}
