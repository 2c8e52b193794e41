package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWatcher(t *testing.T, path string) (chan SnakeConfig, chan error, *Watcher) {
	t.Helper()
	loads := make(chan SnakeConfig, 8)
	errs := make(chan error, 8)

	w, err := NewWatcher(path,
		func(cfg SnakeConfig) { loads <- cfg },
		func(err error) { errs <- err },
	)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	return loads, errs, w
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "snake.yaml")
	writeFile(t, path, "board:\n  grid_size: 10\n")

	loads, _, w := startWatcher(t, path)
	defer w.Close()

	writeFile(t, path, "board:\n  grid_size: 20\ntiming:\n  tick_interval: 100ms\n")

	select {
	case cfg := <-loads:
		assert.Equal(t, 20, cfg.Board.GridSize)
		assert.Equal(t, 100*time.Millisecond, cfg.Timing.TickInterval)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the file changed")
	}

	require.NoError(t, w.Close())
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "snake.yaml")
	writeFile(t, path, "board:\n  grid_size: 10\n")

	loads, errs, w := startWatcher(t, path)
	defer w.Close()

	writeFile(t, path, "board:\n  grid_size: 2\n")

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case cfg := <-loads:
		t.Fatalf("invalid config was loaded: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config was not reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	writeFile(t, path, "board:\n  grid_size: 10\n")

	loads, _, w := startWatcher(t, path)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "board:\n  grid_size: 12\n")

	select {
	case cfg := <-loads:
		t.Fatalf("reloaded after an unrelated file changed: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "snake.yaml"), func(SnakeConfig) {}, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Start(context.Background()))
}

func TestWatcherCloseWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "snake.yaml"), func(SnakeConfig) {}, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, statErr := os.Stat(w.Path())
	assert.True(t, os.IsNotExist(statErr))
}
