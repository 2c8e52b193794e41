package snake

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Dibyajd/dj-codex/internal/config"
	"github.com/Dibyajd/dj-codex/internal/core"
	"github.com/Dibyajd/dj-codex/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "snake"

const (
	hudHeight = 2 // Score line and separator
	cellWidth = 2 // Terminal cells are roughly twice as tall as wide
)

var (
	configMu     sync.RWMutex
	activeConfig = config.DefaultSnakeConfig() // used by games created through the registry
)

// SetConfig sets the configuration used by subsequently created games.
// Games already running keep their config. Safe for concurrent use.
func SetConfig(cfg config.SnakeConfig) {
	configMu.Lock()
	activeConfig = cfg
	configMu.Unlock()
}

// ActiveConfig returns the configuration new games will use.
func ActiveConfig() config.SnakeConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return activeConfig
}

var (
	_ registry.Resizer    = (*Game)(nil)
	_ registry.Summarizer = (*Game)(nil)
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return NewGame()
	})
}

// Game drives the engine from platform frames. It owns the current State
// and replaces it with the result of every engine call.
type Game struct {
	cfg   config.SnakeConfig
	rng   *rand.Rand
	state State
	err   error // construction failure, shown instead of the board

	frame          uint64
	moves          uint64
	tickRate       int
	moveEveryTicks int
	moveTicker     int

	screenW  int
	screenH  int
	tooSmall bool
}

// NewGame creates a game using the configuration set with SetConfig.
func NewGame() *Game {
	return NewGameWithConfig(ActiveConfig())
}

// NewGameWithConfig creates a game with an explicit configuration.
func NewGameWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset starts a new game seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.frame = 0
	g.moves = 0
	g.moveTicker = 0
	g.tickRate = tickRate
	g.moveEveryTicks = g.cfg.MoveEveryTicks(tickRate)
	g.state, g.err = New(Options{GridSize: g.cfg.Board.GridSize, Rand: g.rng.Float64})
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.boardWidth() || h < hudHeight+g.boardHeight()
}

// gridSize prefers the engine's resolved size over the configured one.
func (g *Game) gridSize() int {
	if g.state.GridSize > 0 {
		return g.state.GridSize
	}
	return g.cfg.Board.GridSize
}

// boardWidth is the on-screen width of the board including its frame.
func (g *Game) boardWidth() int {
	return g.gridSize()*cellWidth + 2
}

// boardHeight is the on-screen height of the board including its frame.
func (g *Game) boardHeight() int {
	return g.gridSize() + 2
}

// Step advances the game by one platform frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.frame++

	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionRestart) && g.state.Status == StatusGameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.state = g.state.TogglePause()
	}

	if d, ok := directionFor(input.Last); ok {
		g.state = g.state.RequestDirection(d)
	}

	if g.tooSmall || g.state.Status != StatusRunning {
		return core.StepResult{State: g.State()}
	}

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.state = g.state.Advance(g.rng.Float64)
		g.moves++
	}

	return core.StepResult{State: g.State()}
}

// directionFor maps a movement action to a Direction.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.err != nil || g.state.Status == StatusGameOver,
		Paused:   g.state.Status == StatusPaused,
	}
}

// Summary reports the run for the score ledger.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Score:    g.state.Score,
		Length:   len(g.state.Snake),
		GridSize: g.state.GridSize,
	}
}

// Err returns the construction error of the current game, if any.
func (g *Game) Err() error {
	return g.err
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.err != nil:
		renderOverlay(dst, "Board too small", fmt.Sprintf("grid_size %d", g.cfg.Board.GridSize))
		return
	case g.tooSmall:
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	board := g.boardRect(dst)
	dst.DrawBox(board, core.ColorGray)
	g.renderCells(dst, board)

	switch g.state.Status {
	case StatusGameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - press R to restart", g.state.Score))
	case StatusPaused:
		renderOverlay(dst, "Paused", "Press Space to continue")
	}
}

// boardRect centers the framed board below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	return area.Centered(g.boardWidth(), g.boardHeight())
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" SNAKE  Score: %d  Length: %d", g.state.Score, len(g.state.Snake))
	dst.DrawTextColored(0, 0, hud, core.ColorBrightYellow)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderCells draws empty cells, food and the snake inside the frame.
func (g *Game) renderCells(dst *core.Screen, board core.Rect) {
	toScreen := func(p Point) (int, int) {
		return board.X + 1 + p.X*cellWidth, board.Y + 1 + p.Y
	}

	for y := 0; y < g.state.GridSize; y++ {
		for x := 0; x < g.state.GridSize; x++ {
			sx, sy := toScreen(Point{X: x, Y: y})
			dst.SetColored(sx, sy, '·', core.ColorGray)
		}
	}

	fx, fy := toScreen(g.state.Food)
	dst.SetColored(fx, fy, '*', core.ColorRed)

	// Tail first so the head wins if segments ever overlap on screen
	for i := len(g.state.Snake) - 1; i >= 0; i-- {
		sx, sy := toScreen(g.state.Snake[i])
		if i == 0 {
			dst.SetColored(sx, sy, '@', core.ColorBrightGreen)
		} else {
			dst.SetColored(sx, sy, 'o', core.ColorGreen)
		}
	}
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorCyan)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
