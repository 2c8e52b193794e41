package replay

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Dibyajd/dj-codex/internal/games/snake"
)

// DefaultMaxTicks bounds a simulation whose options leave MaxTicks unset.
const DefaultMaxTicks = 10000

// SimOptions configures an autopilot run.
type SimOptions struct {
	GridSize int // 0 means snake.DefaultGridSize
	Seed     int64
	MaxTicks int // 0 means DefaultMaxTicks
}

// SimResult is the outcome of Simulate.
type SimResult struct {
	Final    snake.State
	Ticks    int
	Recorder *Recorder
}

// Simulate plays one game with the autopilot, recording every tick, until the
// game ends or MaxTicks is reached. Equal options give equal rows apart from
// the run id.
func Simulate(opts SimOptions) (SimResult, error) {
	maxTicks := opts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s, err := snake.New(snake.Options{GridSize: opts.GridSize, Rand: rng.Float64})
	if err != nil {
		return SimResult{}, err
	}

	rec := NewRecorder(opts.Seed)
	rec.Record(0, s)

	tick := 0
	for tick < maxTicks && s.Status == snake.StatusRunning {
		tick++
		s = s.RequestDirection(snake.Autopilot(s)).Advance(rng.Float64)
		rec.Record(tick, s)
	}

	return SimResult{Final: s, Ticks: tick, Recorder: rec}, nil
}

// SimulateBatch plays runs games on at most workers goroutines. Run i uses
// seed opts.Seed+i. Results are returned in run order.
func SimulateBatch(ctx context.Context, opts SimOptions, runs, workers int) ([]SimResult, error) {
	if runs <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SimResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := opts
			o.Seed = opts.Seed + int64(i)
			res, err := Simulate(o)
			if err != nil {
				return fmt.Errorf("replay: run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchRows concatenates the recorded rows of every result. Rows stay
// grouped by run, each group in tick order.
func BatchRows(results []SimResult) []Row {
	n := 0
	for _, r := range results {
		n += len(r.Recorder.Rows())
	}
	rows := make([]Row, 0, n)
	for _, r := range results {
		rows = append(rows, r.Recorder.Rows()...)
	}
	return rows
}
