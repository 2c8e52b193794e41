// Package config provides YAML-based game configuration loading for the
// arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("config: invalid")

// minGridSize mirrors the engine's smallest playable board.
const minGridSize = 4

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board  SnakeBoard  `yaml:"board"`
	Timing SnakeTiming `yaml:"timing"`
}

// SnakeBoard defines the board geometry.
type SnakeBoard struct {
	GridSize int `yaml:"grid_size"`
}

// SnakeTiming defines how fast the snake moves.
type SnakeTiming struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Validate checks that the config describes a playable game.
func (c SnakeConfig) Validate() error {
	if c.Board.GridSize < minGridSize {
		return fmt.Errorf("%w: board.grid_size %d is below %d", ErrInvalidConfig, c.Board.GridSize, minGridSize)
	}
	if c.Timing.TickInterval <= 0 {
		return fmt.Errorf("%w: timing.tick_interval must be positive, got %s", ErrInvalidConfig, c.Timing.TickInterval)
	}
	return nil
}

// MoveEveryTicks converts the tick interval into a number of platform
// frames at the given frame rate. The result is at least 1.
func (c SnakeConfig) MoveEveryTicks(tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	frame := time.Second / time.Duration(tickRate)
	n := int((c.Timing.TickInterval + frame/2) / frame)
	return max(1, n)
}
