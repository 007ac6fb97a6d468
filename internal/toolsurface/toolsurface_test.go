package toolsurface

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/embed"
	"github.com/lien-dev/lien/internal/engine"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// newTestContext builds a fully-indexed IndexContext against a temp
// workspace with one Python file, the same construction shape
// internal/cli's buildContext uses but inlined here to avoid an
// internal/cli <-> internal/toolsurface import cycle.
func newTestContext(t *testing.T) *engine.IndexContext {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    if 1:\n        pass\n"), 0o644))

	cfg, err := config.LoadConfigFromDir(root)
	require.NoError(t, err)

	embedder := embed.NewMockProvider()
	store := vectorstore.NewSQLiteStore(filepath.Join(root, ".lien", "indices", "store.db"), embedder.Dimensions())
	require.NoError(t, store.Initialize(context.Background()))

	ic, err := engine.New(root, cfg, embedder, store, chunk.TenantInfo{})
	require.NoError(t, err)
	t.Cleanup(func() { ic.Close() })

	_, err = ic.Index(context.Background(), false)
	require.NoError(t, err)

	return ic
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestGraphHandler_IndexedFileWithNoImportsHasNoNeighbors(t *testing.T) {
	ic := newTestContext(t)

	handler := graphHandler(ic)
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{"root": "a.py"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var got []graphQueryResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &got))
	assert.Empty(t, got)
}

func TestGraphHandler_UnknownRootIsToolError(t *testing.T) {
	ic := newTestContext(t)

	handler := graphHandler(ic)
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{"root": "missing.py"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGraphHandler_MissingRootIsToolError(t *testing.T) {
	ic := newTestContext(t)

	handler := graphHandler(ic)
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGraphHandler_InvalidDirectionIsToolError(t *testing.T) {
	ic := newTestContext(t)

	handler := graphHandler(ic)
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{"root": "a.py", "direction": "sideways"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestComplexityHandler_ReportsIndexedFile(t *testing.T) {
	ic := newTestContext(t)

	handler := complexityHandler(ic)
	result, err := handler(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report struct {
		Summary struct {
			FilesAnalyzed int `json:"FilesAnalyzed"`
		} `json:"Summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &report))
	assert.Equal(t, 1, report.Summary.FilesAnalyzed)
}

func TestStatusHandler_ReportsFileCount(t *testing.T) {
	ic := newTestContext(t)

	handler := statusHandler(ic)
	result, err := handler(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var status statusResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &status))
	assert.Equal(t, 1, status.FilesTracked)
	assert.False(t, status.InProgress)
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return tc.Text
}
