package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImportPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "./utils/logger", NormalizeImportPath(`"./utils/logger.ts"`, ""))
	assert.Equal(t, "a/b", NormalizeImportPath(`a\b`, ""))
	assert.Equal(t, "pkg/foo", NormalizeImportPath("/workspace/pkg/foo", "/workspace"))
}

func TestResolveImport_RelativeResolvesAgainstImporterDir(t *testing.T) {
	t.Parallel()

	resolved, ok := ResolveImport("./logger", "src/service/handler.ts", "")
	assert.True(t, ok)
	assert.Equal(t, "src/service/logger", resolved)
}

func TestResolveImport_ParentRelativeEscapesUpward(t *testing.T) {
	t.Parallel()

	resolved, ok := ResolveImport("../../shared/util", "src/service/sub/handler.ts", "")
	assert.True(t, ok)
	assert.Equal(t, "src/shared/util", resolved)
}

func TestResolveImport_OutsideWorkspaceIsSkipped(t *testing.T) {
	t.Parallel()

	_, ok := ResolveImport("../../../../escape", "src/handler.ts", "")
	assert.False(t, ok)
}

func TestResolveImport_NonRelativePassesThrough(t *testing.T) {
	t.Parallel()

	resolved, ok := ResolveImport("react", "src/handler.ts", "")
	assert.True(t, ok)
	assert.Equal(t, "react", resolved)
}

func TestPathsMatch_RequiresResolutionFirst(t *testing.T) {
	t.Parallel()

	// "src/utils/logger.ts" importing "../logger" resolves to "src/logger" -
	// an exact match against the target. PathsMatch on the raw, unresolved
	// strings is false (boundaryContains sees "utils/logger.ts" vs
	// "../logger", neither of which is a component-boundary match for
	// "src/logger"); ResolveImport must run first.
	const target = "src/logger"

	assert.False(t, PathsMatch("src/utils/logger.ts", target))
	assert.False(t, PathsMatch("../logger", target))

	resolved, ok := ResolveImport("../logger", "src/utils/logger.ts", "")
	assert.True(t, ok)
	assert.Equal(t, target, resolved)
	assert.True(t, PathsMatch(resolved, target))
}

func TestPathsMatch_BoundaryMatchingRejectsSubstring(t *testing.T) {
	t.Parallel()

	assert.True(t, PathsMatch("src/logger", "logger"))
	assert.True(t, PathsMatch("logger", "src/logger"))
	assert.False(t, PathsMatch("src/logger-utils", "logger"))
	assert.False(t, PathsMatch("logger", "logger-utils"))
	assert.True(t, PathsMatch("a/b/c", "a/b/c"))
}
