package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsPhysics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movement":{"moveSpeed":150}}`), 0o644))

	w, err := NewWatcher(NewLoader(dir))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"movement":{"moveSpeed":200}}`), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case cfg := <-w.Updates:
			require.NotNil(t, cfg)
			if cfg.Movement.MoveSpeed == 200 {
				return
			}
		case <-deadline:
			t.Fatal("no reload received")
		}
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(NewLoader(dir))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	select {
	case cfg := <-w.Updates:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesUpdates(t *testing.T) {
	w, err := NewWatcher(NewLoader(t.TempDir()))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	_, ok := <-w.Updates
	assert.False(t, ok)
	assert.NoError(t, w.Close(), "second close is a no-op")
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(NewLoader(filepath.Join(t.TempDir(), "absent")))
	assert.Error(t, err)
}
