package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lien-dev/lien/internal/complexity"
)

var (
	complexityFiles     []string
	complexityFormat    string
	complexityThreshold int
	complexityFailOn    string
)

var complexityCmd = &cobra.Command{
	Use:   "complexity",
	Short: "Report cyclomatic/cognitive/Halstead complexity for indexed files",
	Long: `Complexity joins each indexed file's chunk metadata with its
reverse-dependency count and reports threshold violations.

--fail-on error|warning exits non-zero when the corresponding severity
count is non-zero, for use as a CI gate.`,
	RunE: runComplexity,
}

func init() {
	rootCmd.AddCommand(complexityCmd)
	complexityCmd.Flags().StringSliceVar(&complexityFiles, "files", nil, "restrict analysis to these workspace-relative paths")
	complexityCmd.Flags().StringVar(&complexityFormat, "format", "text", "output format: text, json, or sarif")
	complexityCmd.Flags().IntVar(&complexityThreshold, "threshold", 0, "override the configured cyclomatic-complexity method threshold (0 uses the config value)")
	complexityCmd.Flags().StringVar(&complexityFailOn, "fail-on", "", "exit non-zero if this severity (error or warning) has a non-zero count")
}

func runComplexity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	if complexityThreshold > 0 {
		ic.Config.Complexity.Thresholds.Method = complexityThreshold
	}

	report, err := ic.Analyze(ctx, complexityFiles)
	if err != nil {
		return err
	}

	switch strings.ToLower(complexityFormat) {
	case "json":
		if err := printComplexityJSON(report); err != nil {
			return err
		}
	case "sarif":
		if err := printComplexitySARIF(report); err != nil {
			return err
		}
	default:
		printComplexityText(report)
	}

	return checkFailOn(report)
}

func printComplexityText(report complexity.Report) {
	for _, f := range report.Files {
		if len(f.Violations) == 0 {
			continue
		}
		fmt.Printf("%s (risk: %s, dependents: %d)\n", f.FilePath, f.RiskLevel, f.DependentCount)
		for _, v := range f.Violations {
			fmt.Printf("  [%s] %s: %s=%.2f (threshold %.2f) at line %d\n",
				v.Severity, v.SymbolName, v.Metric, v.Value, v.Threshold, v.StartLine)
		}
	}
	fmt.Printf("\n%d files analyzed, %d violations (%d error, %d warning)\n",
		report.Summary.FilesAnalyzed, report.Summary.TotalViolations,
		report.Summary.ErrorCount, report.Summary.WarningCount)
}

func printComplexityJSON(report complexity.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func printComplexitySARIF(report complexity.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(complexity.ToSARIF(report))
}

func checkFailOn(report complexity.Report) error {
	switch complexityFailOn {
	case "error":
		if report.Summary.ErrorCount > 0 {
			return fmt.Errorf("%d error-level complexity violations", report.Summary.ErrorCount)
		}
	case "warning":
		if report.Summary.WarningCount > 0 || report.Summary.ErrorCount > 0 {
			return fmt.Errorf("%d warning-or-higher complexity violations", report.Summary.WarningCount+report.Summary.ErrorCount)
		}
	}
	return nil
}
