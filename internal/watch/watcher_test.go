package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesWritesIntoOneBatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("seed"), 0o644))

	w, err := NewWatcher([]string{dir}, 50*time.Millisecond, 5, 0)
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan FileChangeEvent, 8)
	w.Start(context.Background(), func(e FileChangeEvent) { events <- e })

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case e := <-events:
		assert.Equal(t, EventBatch, e.Kind)
		assert.NotEmpty(t, e.Modified)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}
}

func TestWatcher_SkipsIgnoredDirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0o755))

	w, err := NewWatcher([]string{dir}, 20*time.Millisecond, 5, 0)
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, 1, w.watchedDirs, "node_modules must not be added to the watch set")
}
