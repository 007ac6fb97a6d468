package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heavyFunction has 17 decision points so its cyclomatic complexity (18)
// sits between the default method threshold (15) and the error multiplier
// (15*2=30), producing a warning (spec E2E-3).
func heavyFunctionSource() string {
	var b strings.Builder
	b.WriteString("def heavy(n):\n    x = 0\n")
	for i := 0; i < 17; i++ {
		fmt.Fprintf(&b, "    if n == %d:\n        x += 1\n", i)
	}
	b.WriteString("    return x\n")
	return b.String()
}

func TestAnalyze_CyclomaticThresholdProducesWarning(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte(heavyFunctionSource()), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()
	_, err := ic.Index(ctx, false)
	require.NoError(t, err)

	report, err := ic.Analyze(ctx, nil)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)

	var found bool
	for _, v := range report.Files[0].Violations {
		if v.Metric == "cyclomatic" {
			found = true
			assert.Equal(t, "warning", string(v.Severity))
		}
	}
	assert.True(t, found, "expected a cyclomatic violation")
}

func TestAnalyze_ScopesToRequestedPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("def f():\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("def g():\n    pass\n"), 0o644))

	ic := newTestContext(t, root)
	ctx := context.Background()
	_, err := ic.Index(ctx, false)
	require.NoError(t, err)

	report, err := ic.Analyze(ctx, []string{"a.py"})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "a.py", report.Files[0].FilePath)
}
