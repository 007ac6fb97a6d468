package depgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/chunk"
)

func mkChunk(file string, complexity int, imports ...string) chunk.CodeChunk {
	return chunk.CodeChunk{
		Metadata: chunk.Metadata{
			File:       file,
			Complexity: complexity,
			Imports:    imports,
		},
	}
}

func TestGraphEngine_BuildAndQueryForward(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e, err := NewGraphEngine("", false)
	require.NoError(t, err)
	defer e.Close()

	chunks := []chunk.CodeChunk{
		mkChunk("src/a.ts", 5, "./b"),
		mkChunk("src/b.ts", 3, "./c"),
		mkChunk("src/c.ts", 1),
	}
	require.NoError(t, e.Build(ctx, chunks))

	results, err := e.Query("src/a.ts", DirectionForward, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "src/b.ts", results[0].Node.ID)
	assert.Equal(t, 1, results[0].Depth)
	assert.Equal(t, "src/c.ts", results[1].Node.ID)
	assert.Equal(t, 2, results[1].Depth)
}

func TestGraphEngine_QueryReverseFindsDependents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e, err := NewGraphEngine("", false)
	require.NoError(t, err)
	defer e.Close()

	chunks := []chunk.CodeChunk{
		mkChunk("src/a.ts", 1, "./shared"),
		mkChunk("src/b.ts", 1, "./shared"),
		mkChunk("src/shared.ts", 1),
	}
	require.NoError(t, e.Build(ctx, chunks))

	deps, err := e.Dependents("src/shared.ts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, deps)
	assert.Equal(t, 2, e.DependentCount("src/shared.ts"))
}

func TestGraphEngine_DepthLimitTruncatesTraversal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e, err := NewGraphEngine("", false)
	require.NoError(t, err)
	defer e.Close()

	chunks := []chunk.CodeChunk{
		mkChunk("src/a.ts", 1, "./b"),
		mkChunk("src/b.ts", 1, "./c"),
		mkChunk("src/c.ts", 1),
	}
	require.NoError(t, e.Build(ctx, chunks))

	results, err := e.Query("src/a.ts", DirectionForward, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "src/b.ts", results[0].Node.ID)
}

func TestGraphEngine_ModuleLevelCollapsesFilesByLeadingDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e, err := NewGraphEngine("", true)
	require.NoError(t, err)
	defer e.Close()

	chunks := []chunk.CodeChunk{
		mkChunk("service/handler.ts", 8, "../util/logger"),
		mkChunk("util/logger.ts", 2),
	}
	require.NoError(t, e.Build(ctx, chunks))

	results, err := e.Query("service", DirectionForward, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "util", results[0].Node.ID)
}
