package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitignoreFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsGitignoreFile(".gitignore"))
	assert.True(t, IsGitignoreFile("sub/dir/.gitignore"))
	assert.True(t, IsGitignoreFile(`sub\dir\.gitignore`))
	assert.False(t, IsGitignoreFile("gitignore"))
	assert.False(t, IsGitignoreFile("sub/.gitignore-bak"))
}

func TestFilter_AlwaysIgnoredPatterns(t *testing.T) {
	t.Parallel()

	f, err := NewFilter(nil)
	require.NoError(t, err)

	assert.True(t, f.IsIgnored("node_modules/react/index.js"))
	assert.True(t, f.IsIgnored("vendor/github.com/pkg/errors/errors.go"))
	assert.True(t, f.IsIgnored(".git/HEAD"))
	assert.True(t, f.IsIgnored(".lien/manifest.json"))
	assert.False(t, f.IsIgnored("internal/lang/typescript.go"))
}

func TestFilter_DirOnlyPattern(t *testing.T) {
	t.Parallel()

	f, err := NewFilter([]string{"build/"})
	require.NoError(t, err)

	assert.True(t, f.IsIgnored("build"))
	assert.True(t, f.IsIgnored("build/output.js"))
	assert.True(t, f.IsIgnored("a/b/build/output.js"))
	assert.False(t, f.IsIgnored("rebuild/output.js"))
}

func TestFilter_NegationUndoesEarlierIgnore(t *testing.T) {
	t.Parallel()

	f, err := NewFilter([]string{"*.log", "!important.log"})
	require.NoError(t, err)

	assert.True(t, f.IsIgnored("debug.log"))
	assert.False(t, f.IsIgnored("important.log"))
}

func TestFilter_AnchoredPatternOnlyMatchesFromRoot(t *testing.T) {
	t.Parallel()

	f, err := NewFilter([]string{"/dist"})
	require.NoError(t, err)

	assert.True(t, f.IsIgnored("dist"))
	assert.False(t, f.IsIgnored("sub/dist"))
}

func TestLoadGitignore_MissingFileReturnsNil(t *testing.T) {
	t.Parallel()

	lines, err := LoadGitignore(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestLoadGitignore_ParsesLinesSkippingCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "# comment\n\n*.log\nbuild/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644))

	lines, err := LoadGitignore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.log", "build/"}, lines)
}

func TestCachedFilter_InvalidateForcesRebuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache := NewCachedFilter(dir)

	f1, err := cache.Get()
	require.NoError(t, err)
	assert.False(t, f1.IsIgnored("generated.log"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644))
	cache.Invalidate()

	f2, err := cache.Get()
	require.NoError(t, err)
	assert.True(t, f2.IsIgnored("generated.log"))
}
