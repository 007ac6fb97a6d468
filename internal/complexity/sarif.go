package complexity

import "strconv"

// SARIF 2.1.0 document types, trimmed to the fields the CLI's
// `--format sarif` output actually populates (spec §6/§8).

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool    `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription sarifText       `json:"shortDescription"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

var ruleIDs = map[MetricType]string{
	MetricCyclomatic:         "lien/high-cyclomatic-complexity",
	MetricCognitive:          "lien/high-cognitive-complexity",
	MetricHalsteadEffort:     "lien/high-halstead-effort",
	MetricHalsteadDifficulty: "lien/high-halstead-difficulty",
	MetricHalsteadBugs:       "lien/high-halstead-bugs",
}

var ruleDescriptions = map[MetricType]string{
	MetricCyclomatic:         "Cyclomatic complexity exceeds the configured threshold.",
	MetricCognitive:          "Cognitive complexity exceeds the configured threshold.",
	MetricHalsteadEffort:     "Halstead effort exceeds the configured threshold.",
	MetricHalsteadDifficulty: "Halstead difficulty exceeds the configured threshold.",
	MetricHalsteadBugs:       "Halstead estimated bug count exceeds the configured threshold.",
}

// ToSARIF renders a Report as a SARIF 2.1.0 log, one rule per metric type
// and one result per violation.
func ToSARIF(report Report) sarifLog {
	driver := sarifDriver{
		Name:           "lien",
		InformationURI: "https://github.com/lien-dev/lien",
	}
	for _, metric := range []MetricType{MetricCyclomatic, MetricCognitive, MetricHalsteadEffort, MetricHalsteadDifficulty, MetricHalsteadBugs} {
		driver.Rules = append(driver.Rules, sarifRule{
			ID:               ruleIDs[metric],
			Name:             string(metric),
			ShortDescription: sarifText{Text: ruleDescriptions[metric]},
		})
	}

	var results []sarifResult
	for _, f := range report.Files {
		for _, v := range f.Violations {
			results = append(results, sarifResult{
				RuleID: ruleIDs[v.Metric],
				Level:  sarifLevel(v.Severity),
				Message: sarifText{
					Text: sarifMessage(v),
				},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: v.FilePath},
						Region:           sarifRegion{StartLine: v.StartLine},
					},
				}},
			})
		}
	}

	return sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: driver},
			Results: results,
		}},
	}
}

func sarifLevel(sev Severity) string {
	if sev == SeverityError {
		return "error"
	}
	return "warning"
}

func sarifMessage(v ComplexityViolation) string {
	return string(v.Metric) + " for " + v.SymbolName + " is " + formatFloat(v.Value) +
		", exceeding threshold " + formatFloat(v.Threshold)
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
