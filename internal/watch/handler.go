package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/lien-dev/lien/internal/reindex"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// Indexer runs the incremental indexing pipeline over a set of changed
// file paths. internal/engine supplies the concrete implementation; the
// handler only needs this narrow surface.
type Indexer interface {
	IndexFiles(ctx context.Context, paths []string) error
}

// ReconnectHook is the session's checkAndReconnect callback (spec §4.6 rule
// 5): called before any non-empty batch is processed so the vector store
// can reopen on the latest snapshot.
type ReconnectHook func(ctx context.Context) error

// Handler implements the file-watch change handler (spec §4.6): it filters
// events through a gitignore-aware cache, routes deletions, and drives the
// reindex coordinator around the incremental indexer.
type Handler struct {
	filter      *CachedFilter
	store       vectorstore.Store
	indexer     Indexer
	coordinator *reindex.Coordinator
	reconnect   ReconnectHook
}

// NewHandler builds a Handler rooted at workspaceRoot for gitignore lookups.
func NewHandler(workspaceRoot string, store vectorstore.Store, indexer Indexer, coordinator *reindex.Coordinator, reconnect ReconnectHook) *Handler {
	return &Handler{
		filter:      NewCachedFilter(workspaceRoot),
		store:       store,
		indexer:     indexer,
		coordinator: coordinator,
		reconnect:   reconnect,
	}
}

// Handle processes one event per the spec §4.6 rules:
//  1. invalidate the cached filter if a .gitignore file itself changed
//  2. drop gitignored paths from non-deletion paths
//  3. always route deletions to the store regardless of ignore status
//  4. skip entirely if nothing survives
//  5. call checkAndReconnect before any real work
//  6. wrap the indexer call in start/complete/failReindex
func (h *Handler) Handle(ctx context.Context, event FileChangeEvent) error {
	if h.touchesGitignore(event) {
		h.filter.Invalidate()
	}

	filter, err := h.filter.Get()
	if err != nil {
		return fmt.Errorf("building gitignore filter: %w", err)
	}

	survivors := filterIgnored(filter, event.nonDeletedPaths())
	deletions := event.deletedPaths()

	if len(survivors) == 0 && len(deletions) == 0 {
		return nil
	}

	if h.reconnect != nil {
		if err := h.reconnect(ctx); err != nil {
			return fmt.Errorf("reconnecting vector store: %w", err)
		}
	}

	for _, path := range deletions {
		if err := h.store.DeleteByFile(ctx, path); err != nil {
			return fmt.Errorf("deleting %s from vector store: %w", path, err)
		}
	}

	if len(survivors) == 0 {
		return nil
	}

	h.coordinator.StartReindex(survivors)
	start := time.Now()
	if err := h.indexer.IndexFiles(ctx, survivors); err != nil {
		h.coordinator.FailReindex()
		return fmt.Errorf("indexing changed files: %w", err)
	}
	h.coordinator.CompleteReindex(time.Since(start).Milliseconds())
	return nil
}

func (h *Handler) touchesGitignore(event FileChangeEvent) bool {
	if event.Kind != EventBatch {
		return IsGitignoreFile(event.Path)
	}
	for _, p := range append(append(append([]string{}, event.Added...), event.Modified...), event.Deleted...) {
		if IsGitignoreFile(p) {
			return true
		}
	}
	return false
}

func filterIgnored(filter *Filter, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filter.IsIgnored(p) {
			out = append(out, p)
		}
	}
	return out
}
