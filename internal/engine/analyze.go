package engine

import (
	"context"
	"sort"

	"github.com/lien-dev/lien/internal/chunk"
	"github.com/lien-dev/lien/internal/complexity"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// Analyze joins the current chunk set with reverse-dependency counts to
// produce a complexity.Report (spec §4.9: "Joins chunks with their file's
// reverse-dependency count"). If paths is non-empty, only those files are
// analyzed; otherwise every indexed file is analyzed.
func (c *IndexContext) Analyze(ctx context.Context, paths []string) (complexity.Report, error) {
	chunks, err := c.chunksForPaths(ctx, paths)
	if err != nil {
		return complexity.Report{}, err
	}

	byFile := map[string][]chunk.CodeChunk{}
	for _, ch := range chunks {
		byFile[ch.Metadata.File] = append(byFile[ch.Metadata.File], ch)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	reports := make([]complexity.FileReport, 0, len(files))
	for _, file := range files {
		reports = append(reports, c.analyzeFile(file, byFile[file]))
	}
	return complexity.Summarize(reports), nil
}

func (c *IndexContext) analyzeFile(file string, chunks []chunk.CodeChunk) complexity.FileReport {
	var violations []complexity.ComplexityViolation
	maxComplexity := 0
	totalComplexity := 0

	for _, ch := range chunks {
		cm := complexity.ChunkMetrics{
			FilePath:   file,
			SymbolName: ch.Metadata.SymbolName,
			StartLine:  ch.Metadata.StartLine,
			Metrics: complexity.Metrics{
				Cyclomatic:         ch.Metadata.Complexity,
				Cognitive:          ch.Metadata.CognitiveComplexity,
				HalsteadVolume:     ch.Metadata.HalsteadVolume,
				HalsteadDifficulty: ch.Metadata.HalsteadDifficulty,
				HalsteadEffort:     ch.Metadata.HalsteadEffort,
				HalsteadBugs:       ch.Metadata.HalsteadBugs,
			},
		}
		violations = append(violations, complexity.Evaluate(cm, c.Config.Complexity.Thresholds, c.Config.Complexity.Severity)...)

		if ch.Metadata.Complexity > maxComplexity {
			maxComplexity = ch.Metadata.Complexity
		}
		totalComplexity += ch.Metadata.Complexity
	}

	dependentCount := c.Graph.DependentCount(file)
	avg := 0.0
	if len(chunks) > 0 {
		avg = float64(totalComplexity) / float64(len(chunks))
	}

	return complexity.FileReport{
		FilePath:       file,
		Violations:     violations,
		DependentCount: dependentCount,
		RiskLevel:      complexity.DeriveRisk(violations, dependentCount),
		MaxComplexity:  maxComplexity,
		AvgComplexity:  avg,
	}
}

// AnalyzeDeltas compares two reports' violations restricted to
// changedFiles, the shape a review tool drives across a base and head
// commit (spec §4.9 "Deltas").
func AnalyzeDeltas(base, head complexity.Report, changedFiles []string) []complexity.Delta {
	return complexity.Deltas(flattenViolations(base), flattenViolations(head), changedFiles)
}

func flattenViolations(report complexity.Report) []complexity.ComplexityViolation {
	var out []complexity.ComplexityViolation
	for _, f := range report.Files {
		out = append(out, f.Violations...)
	}
	return out
}

// chunksForPaths returns every chunk belonging to the given paths, or the
// whole store's chunk set when paths is empty.
func (c *IndexContext) chunksForPaths(ctx context.Context, paths []string) ([]chunk.CodeChunk, error) {
	all, err := c.Store.ScanWithFilter(ctx, vectorstore.ScanFilter{Limit: graphScanLimit})
	if err != nil {
		return nil, NewDatabaseError("scanning chunks for analysis", err, false)
	}
	if len(paths) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		wanted[p] = true
	}
	var out []chunk.CodeChunk
	for _, ch := range all {
		if wanted[ch.Metadata.File] {
			out = append(out, ch)
		}
	}
	return out, nil
}
