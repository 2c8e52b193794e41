package snake

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Dibyajd/dj-codex/internal/config"
	"github.com/Dibyajd/dj-codex/internal/core"
	"github.com/Dibyajd/dj-codex/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewGameWithConfig(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 60})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	return g
}

// stepN runs n frames with no input.
func stepN(g *Game, n int) {
	input := core.NewInputFrame()
	for i := 0; i < n; i++ {
		g.Step(input)
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 60:
			input.Set(core.ActionLeft)
		case 120:
			input.Set(core.ActionUp)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("snapshots diverged (-g1 +g2):\n%s", diff)
	}
}

func TestMovesAtConfiguredInterval(t *testing.T) {
	g := newTestGame(t, 1)
	start := g.Snapshot().State.Head()

	every := g.Snapshot().MoveEveryTicks
	if every != 8 {
		t.Fatalf("MoveEveryTicks = %d, expected 8 for 140ms at 60fps", every)
	}

	stepN(g, every-1)
	if g.Snapshot().Moves != 0 {
		t.Fatalf("moved after %d frames", every-1)
	}

	stepN(g, 1)
	snap := g.Snapshot()
	if snap.Moves != 1 {
		t.Fatalf("Moves = %d, expected 1", snap.Moves)
	}
	if want := start.Add(DirRight.Delta()); snap.State.Head() != want {
		t.Errorf("Head = %v, expected %v", snap.State.Head(), want)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.state.NextDirection != DirRight {
		t.Errorf("NextDirection = %v, expected right after reversal request", g.state.NextDirection)
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.state.NextDirection != DirDown {
		t.Errorf("NextDirection = %v, expected down", g.state.NextDirection)
	}
}

func TestLastDirectionWins(t *testing.T) {
	g := newTestGame(t, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	input.Set(core.ActionDown)
	g.Step(input)

	if g.state.NextDirection != DirDown {
		t.Errorf("NextDirection = %v, expected down", g.state.NextDirection)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 7)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if !g.State().Paused {
		t.Fatal("State().Paused = false after pause action")
	}
	before := g.Snapshot()

	stepN(g, 50)
	after := g.Snapshot()
	if diff := cmp.Diff(before.State, after.State); diff != "" {
		t.Errorf("engine state changed while paused (-before +after):\n%s", diff)
	}
	if after.Phase != PhasePaused {
		t.Errorf("Phase = %s, expected %s", after.Phase, PhasePaused)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("State().Paused = true after second pause action")
	}
}

func TestWallEndsGameAndRestart(t *testing.T) {
	g := newTestGame(t, 99)

	// Snake heads right from the centre; it reaches the wall eventually
	stepN(g, 8*DefaultGridSize)

	if !g.State().GameOver {
		t.Fatal("State().GameOver = false after driving into the wall")
	}
	if g.Snapshot().Phase != PhaseGameOver {
		t.Errorf("Phase = %s, expected %s", g.Snapshot().Phase, PhaseGameOver)
	}

	// Pause and direction input are absorbed after game over
	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	input.Set(core.ActionUp)
	before := g.Snapshot().State
	g.Step(input)
	if diff := cmp.Diff(before, g.Snapshot().State); diff != "" {
		t.Errorf("input changed finished game (-before +after):\n%s", diff)
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	snap := g.Snapshot()
	if g.State().GameOver {
		t.Error("State().GameOver = true after restart")
	}
	if snap.State.Score != 0 || len(snap.State.Snake) != 3 {
		t.Errorf("restart state score/len = %d/%d, expected 0/3", snap.State.Score, len(snap.State.Snake))
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t, 5)
	stepN(g, 8)
	before := g.Snapshot()

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	after := g.Snapshot()
	if after.Frame != before.Frame+1 || after.Moves != before.Moves {
		t.Errorf("frame/moves = %d/%d, expected %d/%d", after.Frame, after.Moves, before.Frame+1, before.Moves)
	}
	if diff := cmp.Diff(before.State, after.State); diff != "" {
		t.Errorf("restart changed a running game (-before +after):\n%s", diff)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewGameWithConfig(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}

	snap := g.Snapshot()
	if snap.Phase != PhasePausedSmall {
		t.Errorf("Phase = %s, expected %s", snap.Phase, PhasePausedSmall)
	}

	stepN(g, 100)
	if g.Snapshot().Moves != 0 {
		t.Error("snake moved while the window was too small")
	}

	g.Resize(80, 24)
	if g.tooSmall {
		t.Error("tooSmall still set after resize")
	}
}

func TestInvalidGridSize(t *testing.T) {
	cfg := config.SnakeConfig{
		Board:  config.SnakeBoard{GridSize: 3},
		Timing: config.SnakeTiming{TickInterval: 140 * time.Millisecond},
	}
	g := NewGameWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if !errors.Is(g.Err(), ErrInvalidGridSize) {
		t.Fatalf("Err() = %v, expected ErrInvalidGridSize", g.Err())
	}
	if !g.State().GameOver {
		t.Error("State().GameOver = false for a game that failed to start")
	}
	if g.Snapshot().Phase != PhaseInvalid {
		t.Errorf("Phase = %s, expected %s", g.Snapshot().Phase, PhaseInvalid)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Board too small") {
		t.Error("render should explain the invalid board")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	content := screen.String()

	for _, want := range []string{"SNAKE", "Score: 0", "Length: 3", "@", "*"} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}

	board := g.boardRect(screen)
	head := g.state.Head()
	cell := screen.GetCell(board.X+1+head.X*cellWidth, board.Y+1+head.Y)
	if cell.Rune != '@' || cell.Color != core.ColorBrightGreen {
		t.Errorf("head cell = %q/%v, expected '@'/bright green", cell.Rune, cell.Color)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 444)
	screen := core.NewScreen(80, 24)

	g.state = g.state.TogglePause()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}

	g.state.Status = StatusGameOver
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay missing")
	}
}

func TestGameIdentity(t *testing.T) {
	g := NewGame()
	if g.ID() != "snake" {
		t.Errorf("ID() = %s, expected snake", g.ID())
	}
	if g.Title() != "Snake" {
		t.Errorf("Title() = %s, expected Snake", g.Title())
	}
	if !registry.Exists(GameID) {
		t.Error("snake is not registered")
	}
}

func TestSetConfigAppliesToNewGames(t *testing.T) {
	prev := ActiveConfig()
	t.Cleanup(func() { SetConfig(prev) })

	cfg := config.DefaultSnakeConfig()
	cfg.Board.GridSize = 10
	cfg.Timing.TickInterval = 250 * time.Millisecond
	SetConfig(cfg)

	game, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("registry.Create() error = %v", err)
	}
	game.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	snap := game.(*Game).Snapshot()
	if snap.State.GridSize != 10 {
		t.Errorf("GridSize = %d, expected 10", snap.State.GridSize)
	}
	if snap.MoveEveryTicks != 15 {
		t.Errorf("MoveEveryTicks = %d, expected 15", snap.MoveEveryTicks)
	}
}
