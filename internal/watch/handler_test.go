package watch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/reindex"
	"github.com/lien-dev/lien/internal/vectorstore"
)

type fakeStore struct {
	vectorstore.Store
	deleted []string
}

func (f *fakeStore) DeleteByFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

type fakeIndexer struct {
	calls [][]string
}

func (f *fakeIndexer) IndexFiles(ctx context.Context, paths []string) error {
	f.calls = append(f.calls, paths)
	return nil
}

func newTestHandler(t *testing.T, root string, store *fakeStore, indexer *fakeIndexer) (*Handler, *reindex.Coordinator, *int) {
	t.Helper()
	reconnectCalls := 0
	coord := reindex.New(func() int64 { return 0 })
	h := NewHandler(root, store, indexer, coord, func(ctx context.Context) error {
		reconnectCalls++
		return nil
	})
	return h, coord, &reconnectCalls
}

func TestHandler_DropsGitignoredPathsAndSkipsEmptyBatch(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := &fakeStore{}
	indexer := &fakeIndexer{}
	h, _, reconnectCalls := newTestHandler(t, root, store, indexer)

	err := h.Handle(context.Background(), FileChangeEvent{
		Kind: EventBatch,
		Added: []string{"node_modules/pkg/index.js"},
	})
	require.NoError(t, err)
	assert.Empty(t, indexer.calls)
	assert.Equal(t, 0, *reconnectCalls, "no reconnect when batch is fully filtered out")
}

func TestHandler_RoutesUnlinkToDeleteRegardlessOfIgnoreStatus(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := &fakeStore{}
	indexer := &fakeIndexer{}
	h, _, reconnectCalls := newTestHandler(t, root, store, indexer)

	err := h.Handle(context.Background(), FileChangeEvent{
		Kind: EventUnlink,
		Path: "node_modules/pkg/index.js",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules/pkg/index.js"}, store.deleted)
	assert.Equal(t, 1, *reconnectCalls)
}

func TestHandler_IndexesSurvivingPathsAndCompletesCoordinator(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := &fakeStore{}
	indexer := &fakeIndexer{}
	h, coord, _ := newTestHandler(t, root, store, indexer)

	err := h.Handle(context.Background(), FileChangeEvent{
		Kind: EventChange,
		Path: "internal/lang/typescript.go",
	})
	require.NoError(t, err)
	require.Len(t, indexer.calls, 1)
	assert.Equal(t, []string{"internal/lang/typescript.go"}, indexer.calls[0])

	snap := coord.Snapshot()
	assert.False(t, snap.InProgress)
}

type failingIndexer struct{}

func (failingIndexer) IndexFiles(ctx context.Context, paths []string) error {
	return assert.AnError
}

func TestHandler_FailReindexOnIndexerError(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := &fakeStore{}
	h, coord, _ := newTestHandler(t, root, store, nil)
	h.indexer = failingIndexer{}

	err := h.Handle(context.Background(), FileChangeEvent{Kind: EventAdd, Path: "a.go"})
	assert.Error(t, err)

	snap := coord.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Equal(t, 0, snap.ActiveOperations)
}
