package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher recursively watches a set of directories and delivers debounced,
// batched FileChangeEvents. Debouncing and batch aggregation happen here;
// the Handler assumes pre-aggregated batches (spec §4.6).
type Watcher struct {
	fsw          *fsnotify.Watcher
	debounce     time.Duration
	maxDepth     int
	maxDirs      int
	watchedDirs  int
	dirsMu       sync.Mutex

	accumulated   map[string]fsnotify.Op
	accumulatedMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	doneCh chan struct{}
}

// NewWatcher creates a watcher rooted at the given directories, recursing
// up to maxDepth and capping the number of watched directories at maxDirs
// (0 means unlimited), mirroring the teacher's directory-count guardrails.
func NewWatcher(dirs []string, debounce time.Duration, maxDepth, maxDirs int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:         fsw,
		debounce:    debounce,
		maxDepth:    maxDepth,
		maxDirs:     maxDirs,
		accumulated: make(map[string]fsnotify.Op),
		doneCh:      make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addRecursively(dir, 0); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Start begins watching in the background, invoking fn with a batched
// FileChangeEvent each time the debounce window elapses with accumulated
// changes. Start returns immediately; call Stop to shut down.
func (w *Watcher) Start(ctx context.Context, fn func(FileChangeEvent)) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	go w.run(fn)
}

// Stop cancels the watch loop and closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
		<-w.doneCh
	} else {
		close(w.doneCh)
	}
	return w.fsw.Close()
}

func (w *Watcher) run(fn func(FileChangeEvent)) {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursively(event.Name, 0); err != nil {
						log.Printf("watch: failed to add new directory %s: %v", event.Name, err)
					}
				}
			}

			w.accumulatedMu.Lock()
			w.accumulated[event.Name] = w.accumulated[event.Name] | event.Op
			w.accumulatedMu.Unlock()

			w.resetTimer(fireCh)

		case <-fireCh:
			w.flush(fn)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: fsnotify error: %v", err)
		}
	}
}

func (w *Watcher) flush(fn func(FileChangeEvent)) {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}
	acc := w.accumulated
	w.accumulated = make(map[string]fsnotify.Op)
	w.accumulatedMu.Unlock()

	var batch FileChangeEvent
	batch.Kind = EventBatch
	for path, op := range acc {
		switch {
		case op&fsnotify.Remove != 0 || op&fsnotify.Rename != 0:
			batch.Deleted = append(batch.Deleted, path)
		case op&fsnotify.Create != 0:
			batch.Added = append(batch.Added, path)
		case op&fsnotify.Write != 0:
			batch.Modified = append(batch.Modified, path)
		}
	}
	fn(batch)
}

func (w *Watcher) resetTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		if !w.timer.Stop() {
			select {
			case <-w.timer.C:
			default:
			}
		}
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) addRecursively(root string, depth int) error {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return nil
	}

	base := filepath.Base(root)
	if base == ".git" || base == "node_modules" || base == ".lien" {
		return nil
	}

	w.dirsMu.Lock()
	if w.maxDirs > 0 && w.watchedDirs >= w.maxDirs {
		count := w.watchedDirs
		w.dirsMu.Unlock()
		return fmt.Errorf("directory limit reached: %d directories already watched (max: %d)", count, w.maxDirs)
	}
	w.dirsMu.Unlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", root, err)
	}

	if err := w.fsw.Add(root); err != nil {
		return fmt.Errorf("watching directory %s: %w", root, err)
	}
	w.dirsMu.Lock()
	w.watchedDirs++
	w.dirsMu.Unlock()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.addRecursively(filepath.Join(root, entry.Name()), depth+1); err != nil {
			log.Printf("watch: %v", err)
		}
	}
	return nil
}
