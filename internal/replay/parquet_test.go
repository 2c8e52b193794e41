package replay

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/Dibyajd/dj-codex/internal/games/snake"
)

// recordRun plays an autopilot game and records every tick.
func recordRun(t *testing.T, seed int64, maxTicks int) (*Recorder, []snake.State) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s, err := snake.New(snake.Options{GridSize: 8, Rand: rng.Float64})
	if err != nil {
		t.Fatalf("snake.New() error = %v", err)
	}

	rec := NewRecorder(seed)
	states := []snake.State{s}
	rec.Record(0, s)
	for tick := 1; tick <= maxTicks && s.Status == snake.StatusRunning; tick++ {
		s = s.RequestDirection(snake.Autopilot(s)).Advance(rng.Float64)
		rec.Record(tick, s)
		states = append(states, s)
	}
	return rec, states
}

func TestRecorderRows(t *testing.T) {
	rec, states := recordRun(t, 1, 50)

	if _, err := uuid.Parse(rec.RunID()); err != nil {
		t.Errorf("RunID() = %q is not a uuid: %v", rec.RunID(), err)
	}

	rows := rec.Rows()
	if len(rows) != len(states) {
		t.Fatalf("len(Rows()) = %d, expected %d", len(rows), len(states))
	}
	for i, row := range rows {
		if int(row.Tick) != i || row.RunID != rec.RunID() || row.Seed != 1 {
			t.Errorf("row %d header = %d/%s/%d", i, row.Tick, row.RunID, row.Seed)
		}
		got, err := row.State()
		if err != nil {
			t.Fatalf("row %d State() error = %v", i, err)
		}
		if diff := cmp.Diff(states[i], got); diff != "" {
			t.Errorf("row %d state mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rec, _ := recordRun(t, 42, 200)
	path := filepath.Join(t.TempDir(), "runs", "run.parquet")

	if err := WriteFile(path, rec.Rows()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if diff := cmp.Diff(rec.Rows(), got); diff != "" {
		t.Errorf("rows mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestReadFileRejectsOtherSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.parquet")
	rows := []Row{{RunID: "x", Status: "running", Direction: "right", NextDirection: "right"}}
	if err := parquet.WriteFile(path, rows, parquet.KeyValueMetadata("schema", "something_else")); err != nil {
		t.Fatalf("parquet.WriteFile() error = %v", err)
	}

	if _, err := ReadFile(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("ReadFile() error = %v, expected ErrSchemaMismatch", err)
	}
}

func TestRowStateRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  Row
	}{
		{"ragged body", Row{Status: "running", Direction: "up", NextDirection: "up", BodyX: []int32{1}, BodyY: nil}},
		{"bad status", Row{Status: "won", Direction: "up", NextDirection: "up"}},
		{"bad direction", Row{Status: "running", Direction: "north", NextDirection: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.row.State(); err == nil {
				t.Error("State() expected error")
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Error("ReadFile() on a missing file expected error")
	}
}
