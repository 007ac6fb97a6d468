package engine

import (
	"context"
	"time"

	"github.com/lien-dev/lien/internal/gitstate"
	"github.com/lien-dev/lien/internal/watch"
)

// IndexFiles adapts IndexContext to watch.Indexer: the change handler calls
// this with the surviving (non-gitignored) paths from one batch.
func (c *IndexContext) IndexFiles(ctx context.Context, paths []string) error {
	_, err := c.IndexIncremental(ctx, paths)
	return err
}

// Session owns the long-running collaborators behind `lien serve`: the
// file watcher, its change handler, and the git-branch poller. All three
// funnel into the same IndexContext so a file-watch batch and a branch
// switch never race on the manifest or coordinator.
type Session struct {
	ctx     *IndexContext
	watcher *watch.Watcher
	poller  *gitstate.Poller
}

// NewSession wires a watcher (unless watching is disabled) and, if
// gitDetection.enabled, a branch/commit poller, around ctx.
func NewSession(ctx *IndexContext) (*Session, error) {
	s := &Session{ctx: ctx}

	if ctx.Config.GitDetection.Enabled {
		initial, err := ctx.LoadGitState()
		if err != nil {
			return nil, NewDatabaseError("loading git state", err, false)
		}
		interval := time.Duration(ctx.Config.GitDetection.PollIntervalMs) * time.Millisecond
		s.poller = gitstate.NewPoller(ctx.WorkspaceRoot, interval, func(previous, current gitstate.State) {
			_ = ctx.SaveGitState(current)
		})
		s.poller.Start(initial)
	}

	return s, nil
}

// StartWatching begins fsnotify-backed file watching, routing every batch
// through a watch.Handler bound to ctx (spec §4.6). Call Stop to tear both
// down. No-op when fileWatching.enabled is false.
func (s *Session) StartWatching(ctx context.Context) error {
	if !s.ctx.Config.FileWatching.Enabled {
		return nil
	}

	handler := watch.NewHandler(s.ctx.WorkspaceRoot, s.ctx.Store, s.ctx, s.ctx.Coordinator, s.ctx.Store.Reconnect)

	debounce := time.Duration(s.ctx.Config.FileWatching.DebounceMs) * time.Millisecond
	w, err := watch.NewWatcher([]string{s.ctx.WorkspaceRoot}, debounce, 0, 0)
	if err != nil {
		return err
	}
	s.watcher = w

	w.Start(ctx, func(event watch.FileChangeEvent) {
		_ = handler.Handle(ctx, event)
	})
	return nil
}

// Stop releases the watcher and poller, if either was started.
func (s *Session) Stop() error {
	if s.poller != nil {
		s.poller.Stop()
	}
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}
