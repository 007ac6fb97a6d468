package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/embed"
	"github.com/lien-dev/lien/internal/manifest"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// graphScanLimit is the ScanWithFilter limit used when rebuilding the
// in-memory dependency graph from the store's full chunk set; it must
// exceed any realistic workspace's chunk count since ScanWithFilter's own
// default (100) is sized for interactive queries, not a full rebuild.
const graphScanLimit = 10_000_000

// Result summarizes one Index/IndexIncremental run (spec §8 testable
// properties 3/4: round-trip idempotence, incremental correctness).
type Result struct {
	Replaced []string
	Deleted  []string
	Skipped  []SkippedFile
}

// SkippedFile records a per-file chunker failure (spec §7 IndexingError:
// "the file is skipped and reindex continues").
type SkippedFile struct {
	Path string
	Err  error
}

// Index runs a full reconciliation against every file the workspace's
// discovery rules surface. If force is true, every discovered file is
// re-chunked and re-embedded regardless of its manifest hash.
func (c *IndexContext) Index(ctx context.Context, force bool) (Result, error) {
	d, err := newDiscovery(c.WorkspaceRoot, c.Config.Paths.Include, c.Config.Paths.Ignore)
	if err != nil {
		return Result{}, err
	}
	files, err := d.discoverFiles()
	if err != nil {
		return Result{}, fmt.Errorf("discovering files: %w", err)
	}
	return c.reconcile(ctx, files, force)
}

// IndexIncremental reconciles only the given workspace-relative paths
// against the manifest — the shape the file-watch handler and git-poll
// catch-up both drive (spec §4.6 "Invoke the incremental indexer").
func (c *IndexContext) IndexIncremental(ctx context.Context, paths []string) (Result, error) {
	return c.reconcile(ctx, paths, false)
}

// reconcile implements spec §4.4's reconciliation protocol end to end.
func (c *IndexContext) reconcile(ctx context.Context, paths []string, force bool) (Result, error) {
	snapshot := c.Manifest.Snapshot()

	inputs := make([]manifest.FileInput, 0, len(paths))
	contents := make(map[string][]byte, len(paths))
	var skipped []SkippedFile

	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(c.WorkspaceRoot, filepath.FromSlash(p)))
		if err != nil {
			if os.IsNotExist(err) {
				skipped = append(skipped, SkippedFile{Path: p, Err: NewFileNotFound(p)})
			} else {
				skipped = append(skipped, SkippedFile{Path: p, Err: NewFileNotReadable(p, err)})
			}
			continue
		}
		contents[p] = data
		hash, _ := manifest.ContentHash(data)
		inputs = append(inputs, manifest.FileInput{Path: p, ContentHash: hash})
	}

	changeSet := manifest.Reconcile(snapshot, inputs)
	toProcess := changeSet.ChangedOrAdded()
	if force {
		toProcess = append(toProcess, changeSet.Unchanged...)
	}

	if len(toProcess) == 0 && len(changeSet.Deleted) == 0 {
		return Result{Skipped: skipped}, nil
	}

	c.Coordinator.StartReindex(append(append([]string{}, toProcess...), changeSet.Deleted...))

	start := time.Now()
	if c.Progress != nil {
		c.Progress.OnIndexingStart(len(toProcess) + len(changeSet.Deleted))
	}
	result, err := c.applyChanges(ctx, toProcess, changeSet.Deleted, contents, snapshot)
	if err != nil {
		c.Coordinator.FailReindex()
		return result, err
	}
	c.Coordinator.CompleteReindex(time.Since(start).Milliseconds())
	if c.Progress != nil {
		c.Progress.OnIndexingComplete(len(result.Replaced), len(result.Deleted), time.Since(start))
	}

	result.Skipped = append(result.Skipped, skipped...)

	if rebuildErr := c.rebuildGraph(ctx); rebuildErr != nil {
		return result, fmt.Errorf("rebuilding dependency graph: %w", rebuildErr)
	}
	return result, nil
}

// applyChanges runs the chunk→embed→store→manifest transaction for one
// reconciliation pass. On any store failure it returns before touching the
// manifest, per spec §4.4's failure semantics.
func (c *IndexContext) applyChanges(ctx context.Context, toProcess, deleted []string, contents map[string][]byte, snapshot map[string]manifest.FileEntry) (Result, error) {
	var result Result
	var upserts []manifest.FileEntry
	total := len(toProcess) + len(deleted)
	processed := 0

	for _, path := range toProcess {
		processed++
		if c.Progress != nil {
			c.Progress.OnFileProcessed(processed, total, path)
		}
		data := contents[path]
		chunks, err := c.Chunker.Chunk(ctx, path, data, false)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: NewIndexingError(path, err)})
			continue
		}
		c.stampTenant(chunks)

		embeddings, err := c.embedChunks(ctx, chunks)
		if err != nil {
			return result, NewEmbeddingError("embedding chunks for "+path, err)
		}

		if err := c.Store.ReplaceFile(ctx, path, chunks, embeddings); err != nil {
			return result, NewDatabaseError("replacing file "+path, err, false)
		}
		result.Replaced = append(result.Replaced, path)

		hash, algo := manifest.ContentHash(data)
		upserts = append(upserts, manifest.FileEntry{
			Path:        path,
			ContentHash: hash,
			Algorithm:   algo,
			ChunkCount:  len(chunks),
			LastIndexed: time.Now(),
		})
	}

	for _, path := range deleted {
		processed++
		if c.Progress != nil {
			c.Progress.OnFileProcessed(processed, total, path)
		}
		if err := c.Store.DeleteByFile(ctx, path); err != nil {
			return result, NewDatabaseError("deleting file "+path, err, false)
		}
		result.Deleted = append(result.Deleted, path)
	}

	if len(upserts) == 0 && len(deleted) == 0 {
		return result, nil
	}
	if err := c.Manifest.Apply(upserts, deleted); err != nil {
		return result, NewDatabaseError("writing manifest", err, false)
	}
	return result, nil
}

// stampTenant writes the context's tenant fields onto every chunk's
// metadata before it reaches the store, so multi-tenant deployments can
// scope search/scan queries (chunk.TenantInfo, spec §3).
func (c *IndexContext) stampTenant(chunks []chunk.CodeChunk) {
	if c.Tenant == (chunk.TenantInfo{}) {
		return
	}
	for i := range chunks {
		chunks[i].Metadata.RepoID = c.Tenant.RepoID
		chunks[i].Metadata.OrgID = c.Tenant.OrgID
		chunks[i].Metadata.Branch = c.Tenant.Branch
		chunks[i].Metadata.CommitSha = c.Tenant.CommitSha
	}
}

// embedChunks batches a file's chunk contents through the embedder at
// core.embeddingBatchSize (spec §6 core.embeddingBatchSize default 50).
func (c *IndexContext) embedChunks(ctx context.Context, chunks []chunk.CodeChunk) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}

	batchSize := c.Config.Core.EmbeddingBatchSize
	if batchSize <= 0 {
		batchSize = len(texts)
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		batch, err := c.Embedder.Embed(ctx, texts[start:end], embed.EmbedModePassage)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

// rebuildGraph reloads the dependency graph from the store's full current
// chunk set. Simpler than incrementally patching edges and cheap enough in
// practice since the graph lives entirely in memory.
func (c *IndexContext) rebuildGraph(ctx context.Context) error {
	all, err := c.Store.ScanWithFilter(ctx, vectorstore.ScanFilter{Limit: graphScanLimit})
	if err != nil {
		return err
	}
	return c.Graph.Build(ctx, all)
}
