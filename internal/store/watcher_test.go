package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// writeExternal mimics a sync tool dropping a complete file into the
// folder: write a temp file, then rename it into place.
func writeExternal(t *testing.T, dir, name string, recipe models.Recipe) {
	t.Helper()
	data, err := json.Marshal(recipe)
	require.NoError(t, err)

	tmp := filepath.Join(dir, name+".tmp")
	require.NoError(t, os.WriteFile(tmp, data, 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
}

func TestWatcherPicksUpExternalCreate(t *testing.T) {
	s := newTestStore(t)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	events := w.Subscribe()

	writeExternal(t, s.Dir(), "device2.json", models.Recipe{
		ID:          "device2",
		Name:        "From Another Device",
		Ingredients: []string{"2 cups flour"},
	})

	require.Eventually(t, func() bool {
		_, err := s.GetRecipe("device2")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "external file should be loaded")

	select {
	case event := <-events:
		require.Equal(t, "write", event.Op)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change event for the external create")
	}
}

func TestWatcherPicksUpExternalRemove(t *testing.T) {
	s := newTestStore(t)

	writeExternal(t, s.Dir(), "doomed.json", models.Recipe{ID: "doomed", Name: "Doomed"})
	require.NoError(t, s.Reload())

	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.Remove(filepath.Join(s.Dir(), "doomed.json")))

	require.Eventually(t, func() bool {
		_, err := s.GetRecipe("doomed")
		return err == ErrRecipeNotFound
	}, 5*time.Second, 20*time.Millisecond, "removed file should drop out of the index")
}

// The watcher must not react to this process's own atomic writes.
func TestWatcherIgnoresSelfWrites(t *testing.T) {
	s := newTestStore(t)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	events := w.Subscribe()

	_, err = s.CreateRecipe(&models.CreateRecipeRequest{Name: "Local Edit"})
	require.NoError(t, err)

	select {
	case event := <-events:
		t.Fatalf("unexpected change event for self-write: %+v", event)
	case <-time.After(1 * time.Second):
	}
}

// The debounce map must not grow with every path ever seen; entries
// older than the debounce window are evicted as new events arrive.
func TestWatcherDebouncePrunesStaleEntries(t *testing.T) {
	s := newTestStore(t)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	defer w.fsw.Close()
	w.debounceDur = 5 * time.Millisecond

	require.False(t, w.debounced("a.json"))
	require.True(t, w.debounced("a.json"), "second hit inside the window is debounced")

	time.Sleep(20 * time.Millisecond)
	require.False(t, w.debounced("b.json"))

	w.mu.Lock()
	_, stale := w.debounce["a.json"]
	size := len(w.debounce)
	w.mu.Unlock()
	require.False(t, stale, "expired entry should be pruned")
	require.Equal(t, 1, size)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	w, err := NewWatcher(s)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	w.Stop()
	w.Stop()
}
