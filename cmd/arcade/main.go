// arcade is a terminal Snake game with local play, an SSH server for remote
// play, a score table and an autopilot simulator.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (default: snake)
//	arcade board [game]      - Browse high scores interactively
//	arcade scores [game]     - Print high scores and statistics
//	arcade serve             - Start SSH server for remote play
//	arcade sim               - Run the autopilot and record a replay
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--config <path>     - Path to a snake.yaml config
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Dibyajd/dj-codex/internal/config"
	"github.com/Dibyajd/dj-codex/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// snakeConfig is loaded before any subcommand runs.
	snakeConfig config.SnakeConfig

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play Snake in your terminal",
	Long: `TUI Arcade is a terminal Snake game.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  board    - Browse high scores
  scores   - Print high scores
  serve    - Start SSH server for remote play
  sim      - Let the autopilot play and record a replay

Examples:
  arcade play
  arcade play --grid 20
  arcade serve --ssh :2222
  arcade scores
  arcade sim --seed 42 --out ./runs/42.parquet`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// setup applies the log level and loads the snake config.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	snakeConfig = cfg
	snake.SetConfig(cfg)
	logger.Debug("config loaded", "grid", cfg.Board.GridSize, "tick", cfg.Timing.TickInterval)
	return nil
}

// withGrid applies a --grid override to the loaded config. Zero keeps the
// configured size.
func withGrid(grid int) (config.SnakeConfig, error) {
	cfg := snakeConfig
	if grid == 0 {
		return cfg, nil
	}
	cfg.Board.GridSize = grid
	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, err
	}
	return cfg, nil
}

// gameArg returns the game named on the command line, defaulting to snake.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return snake.GameID
}
