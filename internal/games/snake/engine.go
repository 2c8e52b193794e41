// Package snake implements the Snake game: a pure, deterministic grid engine
// (State and its transition methods) plus a registry.Game adapter that drives
// it from platform frames.
//
// Engine operations never mutate their receiver. Each returns a fresh State
// and the caller keeps whichever snapshot it considers current.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultGridSize is the board edge used when Options.GridSize is zero.
const DefaultGridSize = 16

// MinGridSize is the smallest board that fits the starting snake.
const MinGridSize = 4

var (
	// ErrInvalidGridSize is returned by New for boards that cannot hold the starting snake.
	ErrInvalidGridSize = errors.New("snake: invalid grid size")

	// ErrNoOpenCell is returned by New when the initial food cannot be placed.
	ErrNoOpenCell = errors.New("snake: no open cell for food")
)

// Point represents a board cell.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit displacement for d. Y grows downwards.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}

// Status is the lifecycle stage of a game.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "running":
		return StatusRunning, nil
	case "paused":
		return StatusPaused, nil
	case "game-over":
		return StatusGameOver, nil
	}
	return StatusRunning, fmt.Errorf("snake: unknown status %q", s)
}

// RandomSource yields floats in [0, 1). A nil source falls back to math/rand.
type RandomSource func() float64

func (r RandomSource) float() float64 {
	if r == nil {
		return rand.Float64()
	}
	return r()
}

// State is one immutable snapshot of the game.
//
// Snake lists the body head first. Slices held by a State are never written
// once the State has been returned, so snapshots may share them.
type State struct {
	GridSize      int
	Snake         []Point
	Direction     Direction // applied on the last completed tick
	NextDirection Direction // applied on the next tick
	Food          Point
	Score         int
	Status        Status
}

// Options configures New.
type Options struct {
	GridSize int          // 0 means DefaultGridSize
	Rand     RandomSource // nil means math/rand
}

// New creates the starting state: a three-cell snake centred on the board
// facing right, and food on a random open cell.
func New(opts Options) (State, error) {
	size := opts.GridSize
	if size == 0 {
		size = DefaultGridSize
	}
	if size < MinGridSize {
		return State{}, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidGridSize, size, MinGridSize)
	}

	body := InitialSnake(size)
	food, ok := PlaceFood(body, size, opts.Rand)
	if !ok {
		return State{}, fmt.Errorf("%w: grid size %d", ErrNoOpenCell, size)
	}

	return State{
		GridSize:      size,
		Snake:         body,
		Direction:     DirRight,
		NextDirection: DirRight,
		Food:          food,
		Status:        StatusRunning,
	}, nil
}

// InitialSnake returns the starting body for a board of the given size.
func InitialSnake(gridSize int) []Point {
	x, y := gridSize/2, gridSize/2
	return []Point{
		{X: x, Y: y},
		{X: x - 1, Y: y},
		{X: x - 2, Y: y},
	}
}

// PlaceFood picks an open cell uniformly using rnd. Cells are enumerated
// row by row from the top-left corner. It returns false when the snake
// covers the whole board.
func PlaceFood(snake []Point, gridSize int, rnd RandomSource) (Point, bool) {
	occupied := make(map[Point]struct{}, len(snake))
	for _, p := range snake {
		occupied[p] = struct{}{}
	}

	open := make([]Point, 0, max(gridSize*gridSize-len(occupied), 0))
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			p := Point{X: x, Y: y}
			if _, ok := occupied[p]; !ok {
				open = append(open, p)
			}
		}
	}
	if len(open) == 0 {
		return Point{}, false
	}

	idx := int(rnd.float() * float64(len(open)))
	idx = min(max(idx, 0), len(open)-1)
	return open[idx], true
}

// Head returns the first segment.
func (s State) Head() Point {
	return s.Snake[0]
}

// Occupies reports whether any segment covers p.
func (s State) Occupies(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// InBounds reports whether p lies on the board.
func (s State) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.GridSize && p.Y >= 0 && p.Y < s.GridSize
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Snake = make([]Point, len(s.Snake))
	copy(out.Snake, s.Snake)
	return out
}

// RequestDirection queues d for the next tick. A reversal of the applied
// direction, or any request after game over, returns s unchanged.
func (s State) RequestDirection(d Direction) State {
	if s.Status == StatusGameOver || d == s.Direction.Opposite() {
		return s
	}
	s.NextDirection = d
	return s
}

// TogglePause flips between running and paused. Game over is left alone.
func (s State) TogglePause() State {
	switch s.Status {
	case StatusRunning:
		s.Status = StatusPaused
	case StatusPaused:
		s.Status = StatusRunning
	}
	return s
}

// Advance moves the snake one cell along NextDirection.
//
// Ticks while paused or after game over return s unchanged. Leaving the
// board or running into the body ends the game without moving the snake.
// Eating food grows the snake by one, scores a point and places new food
// with rnd; a board with no open cell left ends the game with Food unchanged.
func (s State) Advance(rnd RandomSource) State {
	if s.Status != StatusRunning {
		return s
	}

	next := s.Head().Add(s.NextDirection.Delta())
	s.Direction = s.NextDirection

	if !s.InBounds(next) || s.collides(next) {
		s.Status = StatusGameOver
		return s
	}

	grows := next == s.Food
	keep := len(s.Snake)
	if !grows {
		keep--
	}

	body := make([]Point, 0, keep+1)
	body = append(body, next)
	body = append(body, s.Snake[:keep]...)
	s.Snake = body

	if grows {
		s.Score++
		if food, ok := PlaceFood(body, s.GridSize, rnd); ok {
			s.Food = food
		} else {
			s.Status = StatusGameOver
		}
	}
	return s
}

// collides reports whether moving the head onto p hits the body. The tail
// only counts when the snake is about to grow, since otherwise it vacates
// its cell this tick.
func (s State) collides(p Point) bool {
	body := s.Snake
	if p != s.Food {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == p {
			return true
		}
	}
	return false
}
