// Package config loads and validates Lien's runtime configuration.
package config

// Config represents the complete Lien configuration, loaded from
// .lien/config.yml with environment variable overrides (LIEN_*).
type Config struct {
	Core         CoreConfig         `yaml:"core" mapstructure:"core"`
	Chunking     ChunkingConfig     `yaml:"chunking" mapstructure:"chunking"`
	Paths        PathsConfig        `yaml:"paths" mapstructure:"paths"`
	GitDetection GitDetectionConfig `yaml:"gitDetection" mapstructure:"gitDetection"`
	FileWatching FileWatchingConfig `yaml:"fileWatching" mapstructure:"fileWatching"`
	Complexity   ComplexityConfig   `yaml:"complexity" mapstructure:"complexity"`
	Frameworks   []FrameworkConfig  `yaml:"frameworks" mapstructure:"frameworks"`
}

// CoreConfig holds chunking/embedding batch tuning (spec §6 core.*).
type CoreConfig struct {
	ChunkSize          int `yaml:"chunkSize" mapstructure:"chunkSize"`
	ChunkOverlap       int `yaml:"chunkOverlap" mapstructure:"chunkOverlap"`
	Concurrency        int `yaml:"concurrency" mapstructure:"concurrency"`
	EmbeddingBatchSize int `yaml:"embeddingBatchSize" mapstructure:"embeddingBatchSize"`
}

// ChunkingConfig controls whether AST chunking is attempted and how it
// degrades when parsing fails (spec §6 chunking.*).
type ChunkingConfig struct {
	UseAST      bool   `yaml:"useAST" mapstructure:"useAST"`
	ASTFallback string `yaml:"astFallback" mapstructure:"astFallback"` // "line-based" | "error"
}

// PathsConfig defines which files to scan and which to ignore, independent
// of per-language extension detection in internal/lang.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"`
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`
}

// GitDetectionConfig controls branch/commit polling (spec §6 gitDetection.*).
type GitDetectionConfig struct {
	Enabled        bool `yaml:"enabled" mapstructure:"enabled"`
	PollIntervalMs int  `yaml:"pollIntervalMs" mapstructure:"pollIntervalMs"`
}

// FileWatchingConfig controls the fsnotify-backed watcher (spec §6 fileWatching.*).
type FileWatchingConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	DebounceMs int  `yaml:"debounceMs" mapstructure:"debounceMs"`
}

// ComplexityConfig configures thresholds and severity multipliers (spec §6 complexity.*).
type ComplexityConfig struct {
	Thresholds ComplexityThresholds `yaml:"thresholds" mapstructure:"thresholds"`
	Severity   SeverityMultipliers  `yaml:"severity" mapstructure:"severity"`
}

// ComplexityThresholds sets the per-metric warning threshold.
type ComplexityThresholds struct {
	Method             int     `yaml:"method" mapstructure:"method"`
	Cognitive          int     `yaml:"cognitive" mapstructure:"cognitive"`
	HalsteadEffort     float64 `yaml:"halsteadEffort" mapstructure:"halsteadEffort"`
	HalsteadDifficulty float64 `yaml:"halsteadDifficulty" mapstructure:"halsteadDifficulty"`
	HalsteadBugs       float64 `yaml:"halsteadBugs" mapstructure:"halsteadBugs"`
	File               int     `yaml:"file" mapstructure:"file"`
	Average            float64 `yaml:"average" mapstructure:"average"`
}

// SeverityMultipliers derive "error" severity from a threshold multiple.
type SeverityMultipliers struct {
	Warning float64 `yaml:"warning" mapstructure:"warning"`
	Error   float64 `yaml:"error" mapstructure:"error"`
}

// FrameworkConfig scopes detectors to a subtree (spec §6 frameworks[]).
type FrameworkConfig struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Path    string   `yaml:"path" mapstructure:"path"`
	Include []string `yaml:"include" mapstructure:"include"`
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// Default returns a configuration with the defaults named in spec §6.
func Default() *Config {
	return &Config{
		Core: CoreConfig{
			ChunkSize:          75,
			ChunkOverlap:       10,
			Concurrency:        4,
			EmbeddingBatchSize: 50,
		},
		Chunking: ChunkingConfig{
			UseAST:      true,
			ASTFallback: "line-based",
		},
		Paths: PathsConfig{
			Include: []string{"**/*"},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				".lien/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
			},
		},
		GitDetection: GitDetectionConfig{
			Enabled:        true,
			PollIntervalMs: 10_000,
		},
		FileWatching: FileWatchingConfig{
			Enabled:    true,
			DebounceMs: 1000,
		},
		Complexity: ComplexityConfig{
			Thresholds: ComplexityThresholds{
				Method:             15,
				Cognitive:          15,
				HalsteadEffort:     5_000_000,
				HalsteadDifficulty: 30,
				HalsteadBugs:       1.0,
				File:               50,
				Average:            10,
			},
			Severity: SeverityMultipliers{
				Warning: 1.0,
				Error:   2.0,
			},
		},
		Frameworks: nil,
	}
}
