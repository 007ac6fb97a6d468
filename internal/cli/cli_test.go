package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/complexity"
)

// resetFlags points the package-level flag state at a fresh workspace using
// the mock embedder, so commands can be exercised without a cobra.Execute
// pass or a network-backed embedding service. Not safe to run in parallel
// with another test that also mutates these globals.
func resetFlags(t *testing.T, root string) {
	t.Helper()
	rootFlag = root
	embedProvider = "mock"
	embedEndpoint = ""
	embedDimension = 384
	t.Cleanup(func() {
		rootFlag = ""
		embedProvider = "mock"
		embedEndpoint = ""
		embedDimension = 384
	})
}

func TestRunInit_WritesDefaultConfig(t *testing.T) {
	root := t.TempDir()
	resetFlags(t, root)

	require.NoError(t, runInit(initCmd, nil))

	data, err := os.ReadFile(filepath.Join(root, ".lien", "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "chunkSize")
}

func TestRunInit_LeavesExistingConfigUntouched(t *testing.T) {
	root := t.TempDir()
	resetFlags(t, root)

	lienDir := filepath.Join(root, ".lien")
	require.NoError(t, os.MkdirAll(lienDir, 0o755))
	configPath := filepath.Join(lienDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("custom: true\n"), 0o644))

	require.NoError(t, runInit(initCmd, nil))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(data))
}

func TestRunIndex_IndexesWorkspaceWithMockEmbedder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))
	resetFlags(t, root)
	forceFlag = false

	require.NoError(t, runIndex(indexCmd, nil))
}

func TestRunStatus_ReportsManifestAndCoordinatorState(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))
	resetFlags(t, root)
	forceFlag = false

	require.NoError(t, runIndex(indexCmd, nil))
	require.NoError(t, runStatus(statusCmd, nil))
}

func TestCheckFailOn_WarningThresholdTripsOnWarningOrError(t *testing.T) {
	report := complexity.Report{Summary: complexity.Summary{WarningCount: 1}}

	complexityFailOn = "warning"
	assert.Error(t, checkFailOn(report))

	complexityFailOn = "error"
	assert.NoError(t, checkFailOn(report))
}

func TestCheckFailOn_ErrorThresholdTripsOnlyOnError(t *testing.T) {
	report := complexity.Report{Summary: complexity.Summary{ErrorCount: 1}}

	complexityFailOn = "error"
	assert.Error(t, checkFailOn(report))
}

func TestParseDirection(t *testing.T) {
	_, err := parseDirection("sideways")
	assert.Error(t, err)

	d, err := parseDirection("both")
	require.NoError(t, err)
	assert.Equal(t, "both", string(d))
}

func TestBuildContext_UsesRootFlag(t *testing.T) {
	root := t.TempDir()
	resetFlags(t, root)

	ic, err := buildContext(context.Background())
	require.NoError(t, err)
	defer ic.Close()
	assert.Equal(t, root, ic.WorkspaceRoot)
}
