package complexity

import (
	"sort"

	"github.com/lien-dev/lien/internal/config"
)

// Severity is the violation level assigned once a metric crosses its
// configured threshold.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MetricType names which of the five tracked metrics produced a violation.
type MetricType string

const (
	MetricCyclomatic         MetricType = "cyclomatic"
	MetricCognitive          MetricType = "cognitive"
	MetricHalsteadEffort     MetricType = "halsteadEffort"
	MetricHalsteadDifficulty MetricType = "halsteadDifficulty"
	MetricHalsteadBugs       MetricType = "halsteadBugs"
)

// RiskLevel is a file's qualitative rollup of violation severity weighted
// by its reverse-dependency count (spec §4.9).
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ComplexityViolation records one metric exceeding its threshold for one
// chunk.
type ComplexityViolation struct {
	FilePath   string
	SymbolName string
	StartLine  int
	Metric     MetricType
	Value      float64
	Threshold  float64
	Severity   Severity
}

// ChunkMetrics is the input unit for Evaluate: one chunk's computed metrics
// plus the identity needed to report a violation against it.
type ChunkMetrics struct {
	FilePath   string
	SymbolName string
	StartLine  int
	Metrics    Metrics
}

// Evaluate compares a chunk's metrics against configured thresholds and
// returns one ComplexityViolation per metric that exceeds its threshold.
func Evaluate(cm ChunkMetrics, thresholds config.ComplexityThresholds, severity config.SeverityMultipliers) []ComplexityViolation {
	checks := []struct {
		metric    MetricType
		value     float64
		threshold float64
	}{
		{MetricCyclomatic, float64(cm.Metrics.Cyclomatic), float64(thresholds.Method)},
		{MetricCognitive, float64(cm.Metrics.Cognitive), float64(thresholds.Cognitive)},
		{MetricHalsteadEffort, cm.Metrics.HalsteadEffort, thresholds.HalsteadEffort},
		{MetricHalsteadDifficulty, cm.Metrics.HalsteadDifficulty, thresholds.HalsteadDifficulty},
		{MetricHalsteadBugs, cm.Metrics.HalsteadBugs, thresholds.HalsteadBugs},
	}

	var violations []ComplexityViolation
	for _, check := range checks {
		if check.value <= check.threshold {
			continue
		}
		sev := SeverityWarning
		if check.value > check.threshold*severity.Error {
			sev = SeverityError
		}
		violations = append(violations, ComplexityViolation{
			FilePath:   cm.FilePath,
			SymbolName: cm.SymbolName,
			StartLine:  cm.StartLine,
			Metric:     check.metric,
			Value:      check.value,
			Threshold:  check.threshold,
			Severity:   sev,
		})
	}
	return violations
}

// FileReport aggregates every violation found in one file plus its
// reverse-dependency count and derived risk level.
type FileReport struct {
	FilePath      string
	Violations    []ComplexityViolation
	DependentCount int
	RiskLevel     RiskLevel
	MaxComplexity int
	AvgComplexity float64
}

// DeriveRisk classifies a file's risk level from its violation severities
// and how many other files depend on it: a file with error-level violations
// that many other files import is the highest-priority target for review.
func DeriveRisk(violations []ComplexityViolation, dependentCount int) RiskLevel {
	errors, warnings := 0, 0
	for _, v := range violations {
		if v.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	switch {
	case errors > 0 && dependentCount >= 5:
		return RiskCritical
	case errors > 0:
		return RiskHigh
	case warnings > 0 && dependentCount >= 5:
		return RiskHigh
	case warnings > 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Summary is the report-level rollup (spec §4.9: "files analyzed, total
// violations, by-severity counts, average and maximum complexity").
type Summary struct {
	FilesAnalyzed  int
	TotalViolations int
	WarningCount   int
	ErrorCount     int
	AverageComplexity float64
	MaxComplexity  int
}

// Report is the top-level result of a complexity analysis run.
type Report struct {
	Files   []FileReport
	Summary Summary
}

// Summarize builds a Report from per-file aggregates.
func Summarize(files []FileReport) Report {
	summary := Summary{FilesAnalyzed: len(files)}
	var totalComplexity, count int

	for _, f := range files {
		summary.TotalViolations += len(f.Violations)
		for _, v := range f.Violations {
			if v.Severity == SeverityError {
				summary.ErrorCount++
			} else {
				summary.WarningCount++
			}
		}
		if f.MaxComplexity > summary.MaxComplexity {
			summary.MaxComplexity = f.MaxComplexity
		}
		totalComplexity += f.MaxComplexity
		count++
	}
	if count > 0 {
		summary.AverageComplexity = float64(totalComplexity) / float64(count)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].FilePath < files[j].FilePath })
	return Report{Files: files, Summary: summary}
}

// DeltaSeverity classifies how a metric moved between a base and head
// report (spec §4.9 "Deltas").
type DeltaSeverity string

const (
	DeltaImproved DeltaSeverity = "improved"
	DeltaNew      DeltaSeverity = "new"
	DeltaDeleted  DeltaSeverity = "deleted"
	DeltaError    DeltaSeverity = "error"
	DeltaWarning  DeltaSeverity = "warning"
)

// Delta is one (filepath, symbolName, metricType) comparison between two
// reports, restricted to a caller-supplied changed-files set.
type Delta struct {
	FilePath   string
	SymbolName string
	Metric     MetricType
	BaseValue  float64
	HeadValue  float64
	Change     float64
	Severity   DeltaSeverity
}

type violationKey struct {
	FilePath   string
	SymbolName string
	Metric     MetricType
}

// Deltas compares base and head violation sets restricted to changedFiles,
// emitting one Delta per distinct (filepath, symbolName, metricType) key
// that appears in either side.
func Deltas(base, head []ComplexityViolation, changedFiles []string) []Delta {
	changed := make(map[string]bool, len(changedFiles))
	for _, f := range changedFiles {
		changed[f] = true
	}

	baseIdx := indexViolations(base, changed)
	headIdx := indexViolations(head, changed)

	seen := map[violationKey]bool{}
	var deltas []Delta
	for key := range baseIdx {
		seen[key] = true
	}
	for key := range headIdx {
		seen[key] = true
	}

	for key := range seen {
		b, inBase := baseIdx[key]
		h, inHead := headIdx[key]

		d := Delta{FilePath: key.FilePath, SymbolName: key.SymbolName, Metric: key.Metric}
		switch {
		case inHead && !inBase:
			d.HeadValue = h.Value
			d.Change = h.Value
			d.Severity = DeltaNew
		case inBase && !inHead:
			d.BaseValue = b.Value
			d.Change = -b.Value
			d.Severity = DeltaDeleted
		default:
			d.BaseValue = b.Value
			d.HeadValue = h.Value
			d.Change = h.Value - b.Value
			switch {
			case d.Change < 0:
				d.Severity = DeltaImproved
			case h.Severity == SeverityError:
				d.Severity = DeltaError
			default:
				d.Severity = DeltaWarning
			}
		}
		deltas = append(deltas, d)
	}

	sort.Slice(deltas, func(i, j int) bool {
		iErr, jErr := deltas[i].Severity == DeltaError, deltas[j].Severity == DeltaError
		if iErr != jErr {
			return iErr
		}
		return deltas[i].Change > deltas[j].Change
	})

	return deltas
}

func indexViolations(vs []ComplexityViolation, changed map[string]bool) map[violationKey]ComplexityViolation {
	idx := make(map[violationKey]ComplexityViolation, len(vs))
	for _, v := range vs {
		if len(changed) > 0 && !changed[v.FilePath] {
			continue
		}
		idx[violationKey{v.FilePath, v.SymbolName, v.Metric}] = v
	}
	return idx
}
