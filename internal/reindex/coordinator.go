// Package reindex implements the ReindexCoordinator state machine (spec
// §4.5): the single process-wide object tracking in-flight reindex
// operations so concurrent file-watch batches and git-poll catch-ups don't
// stomp on each other's bookkeeping.
package reindex

import (
	"log"
	"sync"
)

// State is an immutable snapshot of the coordinator's process-wide status
// (spec §3 "ReindexState").
type State struct {
	InProgress        bool
	PendingFiles      []string
	LastReindexMillis int64
	LastDurationMs    int64
	ActiveOperations  int
}

// Coordinator owns reindex lifecycle bookkeeping. The zero value is not
// usable; construct with New.
type Coordinator struct {
	mu sync.Mutex

	activeOperations  int
	pendingFiles      map[string]bool
	inProgress        bool
	lastReindexMillis int64
	lastDurationMs    int64

	// nowMillis is overridable in tests; defaults to a real clock via New.
	nowMillis func() int64
}

// New constructs a Coordinator using nowMillis to stamp completion times.
func New(nowMillis func() int64) *Coordinator {
	return &Coordinator{
		pendingFiles: map[string]bool{},
		nowMillis:    nowMillis,
	}
}

// StartReindex begins tracking an operation over files. Per spec §4.5, an
// empty files set is a silent no-op: no operation is tracked and the
// counters don't move.
func (c *Coordinator) StartReindex(files []string) {
	if len(files) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeOperations++
	c.inProgress = true
	for _, f := range files {
		c.pendingFiles[f] = true
	}
}

// CompleteReindex records a successful operation's completion. When the
// active-operation counter reaches zero, pendingFiles is cleared and timing
// is recorded. A call with no matching StartReindex (e.g. after an
// empty-set no-op) logs a warning and otherwise does nothing (spec §8
// property 6).
func (c *Coordinator) CompleteReindex(durationMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.decrementLocked() {
		log.Printf("reindex: CompleteReindex called with no matching StartReindex, ignoring")
		return
	}
	if c.activeOperations == 0 {
		c.pendingFiles = map[string]bool{}
		c.inProgress = false
		c.lastReindexMillis = c.nowMillis()
		c.lastDurationMs = durationMs
	}
}

// FailReindex records a failed operation's completion: same decrement as
// CompleteReindex, but never stamps timing. A stray call (no matching
// StartReindex) logs a warning and is otherwise a no-op.
func (c *Coordinator) FailReindex() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.decrementLocked() {
		log.Printf("reindex: FailReindex called with no matching StartReindex, ignoring")
		return
	}
	if c.activeOperations == 0 {
		c.pendingFiles = map[string]bool{}
		c.inProgress = false
	}
}

// decrementLocked must be called with mu held. It reports whether there was
// an active operation to decrement; a stray Complete/FailReindex call (no
// matching StartReindex) must not drive the counter negative or otherwise
// touch state.
func (c *Coordinator) decrementLocked() bool {
	if c.activeOperations == 0 {
		return false
	}
	c.activeOperations--
	return true
}

// Snapshot returns the coordinator's current state. External consumers
// must treat InProgress as "some operation is active", not "a specific
// operation is active" (spec §4.5 overlap rules).
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make([]string, 0, len(c.pendingFiles))
	for f := range c.pendingFiles {
		pending = append(pending, f)
	}

	return State{
		InProgress:        c.inProgress,
		PendingFiles:      pending,
		LastReindexMillis: c.lastReindexMillis,
		LastDurationMs:    c.lastDurationMs,
		ActiveOperations:  c.activeOperations,
	}
}
