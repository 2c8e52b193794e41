// Package replay records engine snapshots and stores them as parquet files,
// one row per tick, so runs can be inspected or re-checked offline.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/Dibyajd/dj-codex/internal/games/snake"
)

// SchemaVersion is stored under the "schema" metadata key.
const SchemaVersion = "snake_tick_v1"

// ErrSchemaMismatch is returned by ReadFile for files of another layout.
var ErrSchemaMismatch = errors.New("replay: schema mismatch")

// Row is a single (run, tick) snapshot. Tick 0 is the initial state.
type Row struct {
	RunID         string  `parquet:"run_id,dict"`
	Seed          int64   `parquet:"seed"`
	Tick          int32   `parquet:"tick"`
	GridSize      int32   `parquet:"grid_size"`
	Status        string  `parquet:"status,dict"`
	Direction     string  `parquet:"direction,dict"`
	NextDirection string  `parquet:"next_direction,dict"`
	Score         int32   `parquet:"score"`
	FoodX         int32   `parquet:"food_x"`
	FoodY         int32   `parquet:"food_y"`
	BodyX         []int32 `parquet:"body_x"`
	BodyY         []int32 `parquet:"body_y"`
}

// NewRow flattens an engine state.
func NewRow(runID string, seed int64, tick int, s snake.State) Row {
	row := Row{
		RunID:         runID,
		Seed:          seed,
		Tick:          int32(tick),
		GridSize:      int32(s.GridSize),
		Status:        s.Status.String(),
		Direction:     s.Direction.String(),
		NextDirection: s.NextDirection.String(),
		Score:         int32(s.Score),
		FoodX:         int32(s.Food.X),
		FoodY:         int32(s.Food.Y),
		BodyX:         make([]int32, len(s.Snake)),
		BodyY:         make([]int32, len(s.Snake)),
	}
	for i, p := range s.Snake {
		row.BodyX[i] = int32(p.X)
		row.BodyY[i] = int32(p.Y)
	}
	return row
}

// State rebuilds the engine state stored in r.
func (r Row) State() (snake.State, error) {
	if len(r.BodyX) != len(r.BodyY) {
		return snake.State{}, fmt.Errorf("replay: tick %d: body has %d xs and %d ys", r.Tick, len(r.BodyX), len(r.BodyY))
	}
	status, err := snake.ParseStatus(r.Status)
	if err != nil {
		return snake.State{}, fmt.Errorf("replay: tick %d: %w", r.Tick, err)
	}
	dir, err := snake.ParseDirection(r.Direction)
	if err != nil {
		return snake.State{}, fmt.Errorf("replay: tick %d: %w", r.Tick, err)
	}
	next, err := snake.ParseDirection(r.NextDirection)
	if err != nil {
		return snake.State{}, fmt.Errorf("replay: tick %d: %w", r.Tick, err)
	}

	body := make([]snake.Point, len(r.BodyX))
	for i := range r.BodyX {
		body[i] = snake.Point{X: int(r.BodyX[i]), Y: int(r.BodyY[i])}
	}

	return snake.State{
		GridSize:      int(r.GridSize),
		Snake:         body,
		Direction:     dir,
		NextDirection: next,
		Food:          snake.Point{X: int(r.FoodX), Y: int(r.FoodY)},
		Score:         int(r.Score),
		Status:        status,
	}, nil
}

// Recorder collects rows for one run.
type Recorder struct {
	runID string
	seed  int64
	rows  []Row
}

// NewRecorder starts a run with a fresh id.
func NewRecorder(seed int64) *Recorder {
	return &Recorder{
		runID: uuid.New().String(),
		seed:  seed,
	}
}

// RunID returns the id stamped on every row.
func (r *Recorder) RunID() string {
	return r.runID
}

// Record appends the snapshot for tick.
func (r *Recorder) Record(tick int, s snake.State) {
	r.rows = append(r.rows, NewRow(r.runID, r.seed, tick, s))
}

// Rows returns the recorded rows in tick order.
func (r *Recorder) Rows() []Row {
	return r.rows
}

// WriteFile writes rows as zstd-compressed parquet. The file is written to a
// temporary path first and renamed into place.
func WriteFile(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("replay: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replay: rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every row of a replay file.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: open parquet: %w", err)
	}
	if schema, _ := pf.Lookup("schema"); schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %q", ErrSchemaMismatch, schema)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	// Each row gets its own slot so decoded body slices are never shared.
	rows := make([]Row, reader.NumRows())
	total := 0
	for total < len(rows) {
		n, err := reader.Read(rows[total:])
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("replay: read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows[:total], nil
}
