package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/embed"
	"github.com/lien-dev/lien/internal/vectorstore"
)

func newTestContext(t *testing.T, workspaceRoot string) *IndexContext {
	t.Helper()
	cfg := config.Default()

	store := vectorstore.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), 384)
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(func() { store.Close() })

	embedder := embed.NewMockProvider()

	ic, err := New(workspaceRoot, cfg, embedder, store, chunk.TenantInfo{})
	require.NoError(t, err)
	require.NotNil(t, ic)
	t.Cleanup(func() { ic.Graph.Close() })
	return ic
}

func TestIndex_FreshTreeReplacesAllFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	result, err := ic.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Contains(t, result.Replaced, "a.py")
	assert.Empty(t, result.Skipped)
}

func TestIndex_SecondRunOnUnchangedTreeReplacesNothing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()
	_, err := ic.Index(ctx, false)
	require.NoError(t, err)

	result, err := ic.Index(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, result.Replaced)
	assert.Empty(t, result.Deleted)
}

func TestIndex_EditedFileTriggersExactlyOneReplace(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()
	_, err := ic.Index(ctx, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("def f():\n    print(1)\n"), 0o644))
	result, err := ic.Index(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, result.Replaced)
}

func TestIndex_DeletedFileIsRemovedFromManifestAndStore(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()
	_, err := ic.Index(ctx, false)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	result, err := ic.Index(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, result.Deleted)

	_, exists := ic.Manifest.Snapshot()["a.py"]
	assert.False(t, exists)
}

func TestIndexIncremental_ReconcilesOnlyGivenPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("def g():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()

	result, err := ic.IndexIncremental(ctx, []string{"a.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, result.Replaced)

	_, exists := ic.Manifest.Snapshot()["b.py"]
	assert.False(t, exists)
}

func TestIndex_UnreadableFileIsSkippedNotFatal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	result, err := ic.IndexIncremental(context.Background(), []string{"a.py", "missing.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, result.Replaced)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "missing.py", result.Skipped[0].Path)
}
