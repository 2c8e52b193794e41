package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, rec ScoreRecord) {
	t.Helper()
	if _, err := store.SaveScore(rec); err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", rec, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 10, Length: 13, GridSize: 16})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 5, Length: 8, GridSize: 16, Player: "alice"})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 20, Length: 23, GridSize: 20})
	mustSave(t, store, ScoreRecord{GameID: "other", Score: 500})

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{20, 10, 5}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, w)
		}
	}

	if scores[0].Length != 23 || scores[0].GridSize != 20 {
		t.Errorf("top record length/grid = %d/%d, expected 23/20", scores[0].Length, scores[0].GridSize)
	}
	if scores[1].Player != "local" {
		t.Errorf("default player = %q, expected local", scores[1].Player)
	}
	if scores[2].Player != "alice" {
		t.Errorf("player = %q, expected alice", scores[2].Player)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(ScoreRecord{Score: 1}); err == nil {
		t.Error("SaveScore() without game id expected error")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, ScoreRecord{GameID: "snake", Score: (i + 1) * 10})
	}

	scores, err := store.TopScores("snake", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 7, Player: "first"})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 7, Player: "second"})

	scores, err := store.TopScores("snake", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Player != "first" {
		t.Errorf("tie order = %v, expected first run ahead", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 10})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 30})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 20})

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("snake")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 4, Length: 7})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 8, Length: 11})

	stats, err := store.GameStats("snake")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 8 {
		t.Errorf("HighScore = %d, expected 8", stats.HighScore)
	}
	if stats.AvgScore != 6 {
		t.Errorf("AvgScore = %v, expected 6", stats.AvgScore)
	}
	if stats.LongestRun != 11 {
		t.Errorf("LongestRun = %d, expected 11", stats.LongestRun)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 1})
	mustSave(t, store, ScoreRecord{GameID: "snake", Score: 2})
	mustSave(t, store, ScoreRecord{GameID: "other", Score: 3})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	snakeScores, _ := store.TopScores("snake", 10)
	if len(snakeScores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(snakeScores))
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("other scores should not be affected by clearing snake")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
