package snake

import "github.com/Dibyajd/dj-codex/internal/core"

// probeOrder is the order in which moves are considered.
var probeOrder = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// SafeDirections returns the moves that survive the next tick: on the board,
// not a reversal, and clear of the body under the same tail rule as Advance.
func SafeDirections(s State) []Direction {
	safe := make([]Direction, 0, len(probeOrder))
	for _, d := range probeOrder {
		if d == s.Direction.Opposite() {
			continue
		}
		next := s.Head().Add(d.Delta())
		if !s.InBounds(next) || s.collides(next) {
			continue
		}
		safe = append(safe, d)
	}
	return safe
}

// Autopilot picks the safe move that gets closest to the food, breaking ties
// in probe order. With no safe move it keeps the queued direction.
func Autopilot(s State) Direction {
	best := s.NextDirection
	bestDist := -1
	for _, d := range SafeDirections(s) {
		next := s.Head().Add(d.Delta())
		dist := core.Abs(next.X-s.Food.X) + core.Abs(next.Y-s.Food.Y)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
