package chunk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/config"
)

func newChunker() *Chunker {
	cfg := config.Default()
	return New(cfg.Core, cfg.Chunking)
}

func TestChunker_PythonProducesClassAndMethodChunks(t *testing.T) {
	t.Parallel()

	source := `
class Greeter:
    def greet(self, name):
        return "hi " + name
`
	chunks, err := newChunker().Chunk(context.Background(), "greeter.py", []byte(source), BestEffort)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	var class, method *CodeChunk
	for i := range chunks {
		switch chunks[i].Metadata.SymbolName {
		case "Greeter":
			class = &chunks[i]
		case "greet":
			method = &chunks[i]
		}
	}
	require.NotNil(t, class)
	assert.Equal(t, KindClass, class.Metadata.Kind)

	require.NotNil(t, method)
	assert.Equal(t, KindMethod, method.Metadata.Kind)
	assert.Equal(t, "Greeter", method.Metadata.ParentClass)
	assert.True(t, method.Metadata.StartLine >= class.Metadata.StartLine)
	assert.True(t, method.Metadata.EndLine <= class.Metadata.EndLine, "method chunk nests inside its class chunk")
}

func TestChunker_UnsupportedExtensionFallsBackToLineChunking(t *testing.T) {
	t.Parallel()

	content := "line one\nline two\nline three\n"
	chunks, err := newChunker().Chunk(context.Background(), "notes.txt", []byte(content), BestEffort)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, KindBlock, chunks[0].Metadata.Kind)
}

func TestLineChunks_SkipsAllWhitespaceWindows(t *testing.T) {
	t.Parallel()

	content := "\n\n\n"
	chunks := lineChunks("empty.txt", "", []byte(content), 75, 10)
	assert.Empty(t, chunks)
}

func TestLineChunks_OverlapsWindows(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, "line")
	}
	content := []byte(joinLines(lines))

	chunks := lineChunks("big.txt", "", content, 10, 3)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, 1, chunks[0].Metadata.StartLine)
	assert.Equal(t, 10, chunks[0].Metadata.EndLine)
	assert.Equal(t, chunks[0].Metadata.EndLine-3+1, chunks[1].Metadata.StartLine)
}

func TestChunker_TopLevelConstWithNoFunctionFallsBackToWholeFileBlock(t *testing.T) {
	t.Parallel()

	chunks, err := newChunker().Chunk(context.Background(), "constants.ts", []byte("export const x = 1;"), BestEffort)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	got := chunks[0]
	assert.Equal(t, KindBlock, got.Metadata.Kind)
	assert.Equal(t, 1, got.Metadata.StartLine)
	assert.Equal(t, 1, got.Metadata.EndLine)
	assert.Equal(t, 1, got.Metadata.Complexity)
	assert.Contains(t, got.Metadata.Exports, "x")
}

func TestChunker_TemplatePath(t *testing.T) {
	t.Parallel()

	chunks, err := newChunker().Chunk(context.Background(), "views/layout.liquid", []byte("{{ content }}"), BestEffort)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, KindTemplate, chunks[0].Metadata.Kind)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
