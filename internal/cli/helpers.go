package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/embed"
	"github.com/lien-dev/lien/internal/engine"
	"github.com/lien-dev/lien/internal/gitstate"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// buildContext wires an engine.IndexContext the way every subcommand needs
// it: load the workspace's config, construct an embedder from the
// persistent --embedding-* flags, open the sqlite-vec store, and bundle
// them into one IndexContext (spec §9 Design Notes).
func buildContext(ctx context.Context) (*engine.IndexContext, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	embedder, err := embed.NewProvider(embed.Config{
		Provider:   embedProvider,
		Endpoint:   embedEndpoint,
		Dimensions: embedDimension,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedding provider: %w", err)
	}

	store := vectorstore.NewSQLiteStore(storeDBPath(root), embedder.Dimensions())
	if err := store.Initialize(ctx); err != nil {
		embedder.Close()
		return nil, engine.NewDatabaseError("initializing vector store", err, false)
	}

	tenant := chunk.TenantInfo{}
	if branch, commitErr := gitCurrentBranch(root); commitErr == nil {
		tenant.Branch = branch
	}

	ic, err := engine.New(root, cfg, embedder, store, tenant)
	if err != nil {
		store.Close()
		embedder.Close()
		return nil, err
	}
	return ic, nil
}

func storeDBPath(root string) string {
	return filepath.Join(root, ".lien", "indices", "store.db")
}

func gitCurrentBranch(root string) (string, error) {
	branch := gitstate.CurrentBranch(root)
	if branch == "" || branch == "unknown" {
		return "", fmt.Errorf("not a git repository")
	}
	return branch, nil
}
