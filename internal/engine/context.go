package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/depgraph"
	"github.com/lien-dev/lien/internal/embed"
	"github.com/lien-dev/lien/internal/gitstate"
	"github.com/lien-dev/lien/internal/manifest"
	"github.com/lien-dev/lien/internal/reindex"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// lienDirName is the fixed persisted-state directory under the workspace
// root (spec §6 "Persisted state layout").
const lienDirName = ".lien"

// IndexContext bundles every stateful collaborator the indexing engine
// needs, replacing the global mutable process state spec §9 flags for
// rearchitecture ("an IndexContext bundling embedder, store, manifest, and
// coordinator, passed through calls"). Its fields are safe for concurrent
// use; each owns its own locking.
type IndexContext struct {
	WorkspaceRoot string
	Config        *config.Config
	Tenant        chunk.TenantInfo

	Embedder    embed.Embedder
	Store       vectorstore.Store
	Manifest    *manifest.Manager
	Coordinator *reindex.Coordinator
	Graph       *depgraph.GraphEngine
	Chunker     *chunk.Chunker

	// Progress, if set, is notified as Index/IndexIncremental processes
	// each file. Left nil, reconciliation runs silently.
	Progress ProgressReporter
}

// lienDir returns the workspace's persisted-state directory.
func (c *IndexContext) lienDir() string {
	return filepath.Join(c.WorkspaceRoot, lienDirName)
}

// New builds an IndexContext rooted at workspaceRoot, wiring the manifest,
// reindex coordinator, chunker, and dependency-graph engine around a
// caller-supplied embedder and vector store (spec §9: "an IndexContext
// bundling embedder, store, manifest, and coordinator").
func New(workspaceRoot string, cfg *config.Config, embedder embed.Embedder, store vectorstore.Store, tenant chunk.TenantInfo) (*IndexContext, error) {
	ctx := &IndexContext{
		WorkspaceRoot: workspaceRoot,
		Config:        cfg,
		Tenant:        tenant,
		Embedder:      embedder,
		Store:         store,
		Coordinator:   reindex.New(func() int64 { return time.Now().UnixMilli() }),
		Chunker:       chunk.New(cfg.Core, cfg.Chunking),
	}

	lienDir := ctx.lienDir()
	if err := os.MkdirAll(lienDir, 0o755); err != nil {
		return nil, NewConfigError("creating .lien directory", err)
	}

	mgr, err := manifest.NewManager(filepath.Join(lienDir, "manifest.json"))
	if err != nil {
		return nil, NewDatabaseError("loading manifest", err, false)
	}
	ctx.Manifest = mgr

	graphEngine, err := depgraph.NewGraphEngine(workspaceRoot, false)
	if err != nil {
		return nil, fmt.Errorf("building graph engine: %w", err)
	}
	ctx.Graph = graphEngine

	return ctx, nil
}

// GitStateDir exposes the .lien directory to callers needing it for
// gitstate.Load/Save without hardcoding the layout twice.
func (c *IndexContext) GitStateDir() string {
	return c.lienDir()
}

// LoadGitState returns the last-persisted git branch/commit snapshot, or
// the zero State if this workspace has never been indexed.
func (c *IndexContext) LoadGitState() (gitstate.State, error) {
	return gitstate.Load(c.lienDir())
}

// SaveGitState persists the current git branch/commit snapshot.
func (c *IndexContext) SaveGitState(s gitstate.State) error {
	return gitstate.Save(c.lienDir(), s)
}

// Close releases every owned resource: the graph engine's cache, the
// vector store's connection, and the embedder, in that order.
func (c *IndexContext) Close() error {
	c.Graph.Close()
	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("closing vector store: %w", err)
	}
	return c.Embedder.Close()
}
