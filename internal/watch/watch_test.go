package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RunsOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT 1"), 0644))

	runs := make(chan struct{}, 10)
	w, err := NewWatcher(file, func(context.Context) error {
		runs <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitRun(t, runs)

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.sql"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(file, []byte("SELECT 2"), 0644))
	waitRun(t, runs)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_CallbackErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "query.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT 1"), 0644))

	boom := errors.New("boom")
	w, err := NewWatcher(file, func(context.Context) error { return boom })
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "query.sql"), func(context.Context) error { return nil })
	assert.Error(t, err)
}

func waitRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(3 * time.Second):
		t.Fatal("callback did not run")
	}
}
