package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader loads configuration from .lien/config.yml with environment
// variable overrides.
type Loader interface {
	// Load loads configuration with priority: env > config file > defaults.
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader rooted at rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load implements Loader.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".lien")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("LIEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnv(v,
		"core.chunkSize", "core.chunkOverlap", "core.concurrency", "core.embeddingBatchSize",
		"chunking.useAST", "chunking.astFallback",
		"gitDetection.enabled", "gitDetection.pollIntervalMs",
		"fileWatching.enabled", "fileWatching.debounceMs",
		"complexity.thresholds.method", "complexity.thresholds.cognitive",
		"complexity.thresholds.halsteadEffort", "complexity.thresholds.halsteadDifficulty",
		"complexity.thresholds.halsteadBugs", "complexity.thresholds.file",
		"complexity.thresholds.average",
		"complexity.severity.warning", "complexity.severity.error",
	)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnv(v *viper.Viper, keys ...string) {
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// setDefaults pushes config.Default() into viper so unset keys resolve
// through the same priority chain as explicit settings.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("core.chunkSize", d.Core.ChunkSize)
	v.SetDefault("core.chunkOverlap", d.Core.ChunkOverlap)
	v.SetDefault("core.concurrency", d.Core.Concurrency)
	v.SetDefault("core.embeddingBatchSize", d.Core.EmbeddingBatchSize)

	v.SetDefault("chunking.useAST", d.Chunking.UseAST)
	v.SetDefault("chunking.astFallback", d.Chunking.ASTFallback)

	v.SetDefault("paths.include", d.Paths.Include)
	v.SetDefault("paths.ignore", d.Paths.Ignore)

	v.SetDefault("gitDetection.enabled", d.GitDetection.Enabled)
	v.SetDefault("gitDetection.pollIntervalMs", d.GitDetection.PollIntervalMs)

	v.SetDefault("fileWatching.enabled", d.FileWatching.Enabled)
	v.SetDefault("fileWatching.debounceMs", d.FileWatching.DebounceMs)

	v.SetDefault("complexity.thresholds.method", d.Complexity.Thresholds.Method)
	v.SetDefault("complexity.thresholds.cognitive", d.Complexity.Thresholds.Cognitive)
	v.SetDefault("complexity.thresholds.halsteadEffort", d.Complexity.Thresholds.HalsteadEffort)
	v.SetDefault("complexity.thresholds.halsteadDifficulty", d.Complexity.Thresholds.HalsteadDifficulty)
	v.SetDefault("complexity.thresholds.halsteadBugs", d.Complexity.Thresholds.HalsteadBugs)
	v.SetDefault("complexity.thresholds.file", d.Complexity.Thresholds.File)
	v.SetDefault("complexity.thresholds.average", d.Complexity.Thresholds.Average)

	v.SetDefault("complexity.severity.warning", d.Complexity.Severity.Warning)
	v.SetDefault("complexity.severity.error", d.Complexity.Severity.Error)
}

// LoadConfig loads configuration rooted at the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration rooted at rootDir.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
