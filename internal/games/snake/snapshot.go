package snake

// Phase describes what the adapter is doing, which can differ from the
// engine Status when the window is too small or construction failed.
type Phase string

const (
	PhasePlaying     Phase = "playing"
	PhasePaused      Phase = "paused"
	PhaseGameOver    Phase = "game_over"
	PhasePausedSmall Phase = "paused_small_window"
	PhaseInvalid     Phase = "invalid_config"
)

// Snapshot captures the adapter and engine state for determinism testing and replay.
type Snapshot struct {
	Frame          uint64
	Moves          uint64
	MoveEveryTicks int
	Phase          Phase
	State          State // deep copy
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.err != nil:
		phase = PhaseInvalid
	case g.state.Status == StatusGameOver:
		phase = PhaseGameOver
	case g.state.Status == StatusPaused:
		phase = PhasePaused
	case g.tooSmall:
		phase = PhasePausedSmall
	}

	return Snapshot{
		Frame:          g.frame,
		Moves:          g.moves,
		MoveEveryTicks: g.moveEveryTicks,
		Phase:          phase,
		State:          g.state.Clone(),
	}
}
