package manifest

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash_SmallFileStable(t *testing.T) {
	t.Parallel()

	h1, algo1 := ContentHash([]byte("package main\n"))
	h2, algo2 := ContentHash([]byte("package main\n"))

	assert.Equal(t, h1, h2, "identical content must hash identically")
	assert.Equal(t, AlgorithmSmall, algo1)
	assert.Equal(t, AlgorithmSmall, algo2)
	assert.Len(t, h1, 16)
}

func TestContentHash_LargeFileUsesFingerprintPrefix(t *testing.T) {
	t.Parallel()

	big := make([]byte, 2<<20)
	for i := range big {
		big[i] = byte(i % 251)
	}

	hash, algo := ContentHash(big)
	assert.Equal(t, AlgorithmLarge, algo)
	assert.True(t, strings.HasPrefix(hash, "L"))
	assert.Len(t, hash, 16)
}

func TestContentHash_LargeFileChangesWithSize(t *testing.T) {
	t.Parallel()

	a := make([]byte, 2<<20)
	b := make([]byte, 2<<20+1)

	hashA, _ := ContentHash(a)
	hashB, _ := ContentHash(b)
	assert.NotEqual(t, hashA, hashB)
}

func TestReconcile_PartitionsFileSet(t *testing.T) {
	t.Parallel()

	snapshot := map[string]FileEntry{
		"a.go": {Path: "a.go", ContentHash: "hash-a"},
		"b.go": {Path: "b.go", ContentHash: "hash-b"},
		"c.go": {Path: "c.go", ContentHash: "hash-c"},
	}

	current := []FileInput{
		{Path: "a.go", ContentHash: "hash-a"},    // unchanged
		{Path: "b.go", ContentHash: "hash-b-new"}, // changed
		{Path: "d.go", ContentHash: "hash-d"},     // added
		// c.go absent → deleted
	}

	cs := Reconcile(snapshot, current)
	assert.Equal(t, []string{"a.go"}, cs.Unchanged)
	assert.Equal(t, []string{"b.go"}, cs.Changed)
	assert.Equal(t, []string{"d.go"}, cs.Added)
	assert.Equal(t, []string{"c.go"}, cs.Deleted)
	assert.ElementsMatch(t, []string{"b.go", "d.go"}, cs.ChangedOrAdded())
}

func TestManager_ApplyPersistsAtomicallyAndBumpsVersion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".lien", "manifest.json")

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Version())

	err = m.Apply([]FileEntry{
		{Path: "a.go", ContentHash: "hash-a", ChunkCount: 3, LastIndexed: time.Now()},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version())

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Version())
	snap := reloaded.Snapshot()
	require.Contains(t, snap, "a.go")
	assert.Equal(t, 3, snap["a.go"].ChunkCount)

	err = reloaded.Apply(nil, []string{"a.go"})
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Version())
	assert.NotContains(t, reloaded.Snapshot(), "a.go")
}
