package reindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeClock(t *int64) func() int64 {
	return func() int64 { return *t }
}

func TestStartReindex_EmptyFilesIsNoOp(t *testing.T) {
	t.Parallel()

	var clock int64 = 100
	c := New(fakeClock(&clock))

	c.StartReindex(nil)
	snap := c.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Equal(t, 0, snap.ActiveOperations)
}

func TestCoordinator_UnionsPendingFilesAcrossOverlappingOperations(t *testing.T) {
	t.Parallel()

	var clock int64 = 100
	c := New(fakeClock(&clock))

	c.StartReindex([]string{"a.go", "b.go"})
	c.StartReindex([]string{"b.go", "c.go"})

	snap := c.Snapshot()
	assert.True(t, snap.InProgress)
	assert.Equal(t, 2, snap.ActiveOperations)
	assert.ElementsMatch(t, []string{"a.go", "b.go", "c.go"}, snap.PendingFiles)

	c.CompleteReindex(50)
	snap = c.Snapshot()
	assert.True(t, snap.InProgress, "still one operation active")
	assert.Equal(t, 1, snap.ActiveOperations)

	clock = 200
	c.CompleteReindex(75)
	snap = c.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Empty(t, snap.PendingFiles)
	assert.Equal(t, int64(200), snap.LastReindexMillis)
	assert.Equal(t, int64(75), snap.LastDurationMs)
}

func TestCompleteReindex_StrayCallIsNoOp(t *testing.T) {
	t.Parallel()

	var clock int64 = 100
	c := New(fakeClock(&clock))

	c.CompleteReindex(999)

	snap := c.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Equal(t, 0, snap.ActiveOperations)
	assert.Zero(t, snap.LastReindexMillis, "a stray complete must not stamp a phantom duration")
	assert.Zero(t, snap.LastDurationMs)
}

func TestFailReindex_StrayCallIsNoOp(t *testing.T) {
	t.Parallel()

	var clock int64 = 100
	c := New(fakeClock(&clock))

	c.FailReindex()

	snap := c.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Equal(t, 0, snap.ActiveOperations)
}

func TestFailReindex_ClearsStateWithoutStampingTiming(t *testing.T) {
	t.Parallel()

	var clock int64 = 100
	c := New(fakeClock(&clock))

	c.StartReindex([]string{"a.go"})
	c.FailReindex()

	snap := c.Snapshot()
	assert.False(t, snap.InProgress)
	assert.Equal(t, 0, snap.ActiveOperations)
	assert.Zero(t, snap.LastReindexMillis)
	assert.Zero(t, snap.LastDurationMs)
}
