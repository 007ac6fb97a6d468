package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/lang"
)

func mustParse(t *testing.T, id lang.ID, source string) (lang.Node, *lang.Spec) {
	t.Helper()
	spec, ok := lang.Get(id)
	require.True(t, ok)

	parser := spec.NewParser()
	defer parser.Close()
	src := []byte(source)
	tree := parser.Parse(src, nil)
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)

	return lang.WrapNode(tree.RootNode(), src), spec
}

func TestCompute_CyclomaticCountsDecisionPoints(t *testing.T) {
	t.Parallel()

	root, spec := mustParse(t, lang.Python, `
def f(x):
    if x > 0:
        if x > 10:
            return "big"
        return "small"
    return "neg"
`)

	candidates := lang.Traverse(root, spec)
	require.Len(t, candidates, 1)

	m := Compute(candidates[0].Node, spec)
	assert.Equal(t, 3, m.Cyclomatic) // base 1 + two if_statements
	assert.Greater(t, m.Cognitive, 0)
}

func TestCompute_HalsteadZeroWhenNoOperators(t *testing.T) {
	t.Parallel()

	root, spec := mustParse(t, lang.Python, "def f():\n    pass\n")
	candidates := lang.Traverse(root, spec)
	require.Len(t, candidates, 1)

	m := Compute(candidates[0].Node, spec)
	if m.HalsteadVolume == 0 {
		assert.Zero(t, m.HalsteadDifficulty)
		assert.Zero(t, m.HalsteadEffort)
		assert.Zero(t, m.HalsteadBugs)
	}
}

func TestEvaluate_ProducesWarningThenError(t *testing.T) {
	t.Parallel()

	thresholds := config.ComplexityThresholds{Method: 15, Cognitive: 15, HalsteadEffort: 5_000_000, HalsteadDifficulty: 30, HalsteadBugs: 1.0}
	severity := config.SeverityMultipliers{Warning: 1.0, Error: 2.0}

	warn := Evaluate(ChunkMetrics{
		FilePath: "a.go", SymbolName: "f", StartLine: 1,
		Metrics: Metrics{Cyclomatic: 17},
	}, thresholds, severity)
	require.Len(t, warn, 1)
	assert.Equal(t, SeverityWarning, warn[0].Severity)

	bad := Evaluate(ChunkMetrics{
		FilePath: "a.go", SymbolName: "f", StartLine: 1,
		Metrics: Metrics{Cyclomatic: 40},
	}, thresholds, severity)
	require.Len(t, bad, 1)
	assert.Equal(t, SeverityError, bad[0].Severity)
}

func TestDeriveRisk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RiskLow, DeriveRisk(nil, 0))
	assert.Equal(t, RiskMedium, DeriveRisk([]ComplexityViolation{{Severity: SeverityWarning}}, 1))
	assert.Equal(t, RiskCritical, DeriveRisk([]ComplexityViolation{{Severity: SeverityError}}, 10))
}

func TestDeltas_ClassifiesNewImprovedDeleted(t *testing.T) {
	t.Parallel()

	base := []ComplexityViolation{
		{FilePath: "a.go", SymbolName: "f", Metric: MetricCyclomatic, Value: 20, Severity: SeverityWarning},
		{FilePath: "a.go", SymbolName: "g", Metric: MetricCyclomatic, Value: 20, Severity: SeverityWarning},
		{FilePath: "a.go", SymbolName: "k", Metric: MetricCyclomatic, Value: 35, Severity: SeverityError},
	}
	head := []ComplexityViolation{
		{FilePath: "a.go", SymbolName: "f", Metric: MetricCyclomatic, Value: 10, Severity: SeverityWarning},
		{FilePath: "a.go", SymbolName: "h", Metric: MetricCyclomatic, Value: 40, Severity: SeverityError},
		{FilePath: "a.go", SymbolName: "k", Metric: MetricCyclomatic, Value: 45, Severity: SeverityError},
	}

	deltas := Deltas(base, head, []string{"a.go"})
	byName := map[string]Delta{}
	for _, d := range deltas {
		byName[d.SymbolName] = d
	}

	assert.Equal(t, DeltaImproved, byName["f"].Severity)
	assert.Equal(t, DeltaDeleted, byName["g"].Severity)
	assert.Equal(t, DeltaNew, byName["h"].Severity)
	assert.Equal(t, DeltaError, deltas[0].Severity, "errors sort first")
}

func TestToSARIF_EmitsOneResultPerViolation(t *testing.T) {
	t.Parallel()

	report := Report{
		Files: []FileReport{{
			FilePath: "a.go",
			Violations: []ComplexityViolation{
				{FilePath: "a.go", SymbolName: "f", StartLine: 5, Metric: MetricCognitive, Value: 20, Threshold: 15, Severity: SeverityWarning},
			},
		}},
	}

	doc := ToSARIF(report)
	require.Len(t, doc.Runs, 1)
	require.Len(t, doc.Runs[0].Results, 1)
	assert.Equal(t, "lien/high-cognitive-complexity", doc.Runs[0].Results[0].RuleID)
	assert.Equal(t, "warning", doc.Runs[0].Results[0].Level)
}
