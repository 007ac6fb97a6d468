package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrInvalidOverlap indicates a negative or too-large overlap.
	ErrInvalidOverlap = errors.New("invalid chunk overlap")
	// ErrInvalidConcurrency indicates a non-positive concurrency setting.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
	// ErrInvalidASTFallback indicates an unrecognized fallback mode.
	ErrInvalidASTFallback = errors.New("invalid chunking.astFallback")
	// ErrInvalidThreshold indicates a non-positive complexity threshold.
	ErrInvalidThreshold = errors.New("invalid complexity threshold")
	// ErrInvalidSeverityMultiplier indicates a non-positive warning
	// multiplier or an error multiplier not above the warning multiplier.
	ErrInvalidSeverityMultiplier = errors.New("invalid severity multiplier")
	// ErrEmptyFrameworkName indicates a framework entry with no name.
	ErrEmptyFrameworkName = errors.New("framework entry missing name")
)

// Validate checks that the configuration is complete and internally
// consistent, mirroring the teacher's grouped-validator-then-join shape.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateCore(&cfg.Core); err != nil {
		errs = append(errs, err)
	}
	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}
	if err := validateComplexity(&cfg.Complexity); err != nil {
		errs = append(errs, err)
	}
	if err := validateFrameworks(cfg.Frameworks); err != nil {
		errs = append(errs, err)
	}

	return joinErrors(errs)
}

func validateCore(cfg *CoreConfig) error {
	var errs []error

	if cfg.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: chunkSize must be positive, got %d", ErrInvalidChunkSize, cfg.ChunkSize))
	}
	if cfg.ChunkOverlap < 0 {
		errs = append(errs, fmt.Errorf("%w: chunkOverlap cannot be negative, got %d", ErrInvalidOverlap, cfg.ChunkOverlap))
	}
	if cfg.ChunkSize > 0 && cfg.ChunkOverlap >= cfg.ChunkSize {
		errs = append(errs, fmt.Errorf("%w: chunkOverlap (%d) must be less than chunkSize (%d)", ErrInvalidOverlap, cfg.ChunkOverlap, cfg.ChunkSize))
	}
	if cfg.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}
	if cfg.EmbeddingBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: embeddingBatchSize must be positive, got %d", ErrInvalidChunkSize, cfg.EmbeddingBatchSize))
	}

	return joinErrors(errs)
}

func validateChunking(cfg *ChunkingConfig) error {
	switch cfg.ASTFallback {
	case "line-based", "error":
		return nil
	default:
		return fmt.Errorf("%w: must be 'line-based' or 'error', got %q", ErrInvalidASTFallback, cfg.ASTFallback)
	}
}

func validateComplexity(cfg *ComplexityConfig) error {
	var errs []error
	t := cfg.Thresholds

	if t.Method <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.method must be positive, got %d", ErrInvalidThreshold, t.Method))
	}
	if t.Cognitive <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.cognitive must be positive, got %d", ErrInvalidThreshold, t.Cognitive))
	}
	if t.HalsteadEffort <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.halsteadEffort must be positive, got %f", ErrInvalidThreshold, t.HalsteadEffort))
	}
	if t.HalsteadDifficulty <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.halsteadDifficulty must be positive, got %f", ErrInvalidThreshold, t.HalsteadDifficulty))
	}
	if t.File <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.file must be positive, got %d", ErrInvalidThreshold, t.File))
	}
	if t.Average <= 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.average must be positive, got %f", ErrInvalidThreshold, t.Average))
	}

	if cfg.Severity.Warning <= 0 {
		errs = append(errs, fmt.Errorf("%w: severity.warning must be positive, got %f", ErrInvalidSeverityMultiplier, cfg.Severity.Warning))
	}
	if cfg.Severity.Error <= cfg.Severity.Warning {
		errs = append(errs, fmt.Errorf("%w: severity.error (%f) must exceed severity.warning (%f)", ErrInvalidSeverityMultiplier, cfg.Severity.Error, cfg.Severity.Warning))
	}

	return joinErrors(errs)
}

func validateFrameworks(frameworks []FrameworkConfig) error {
	var errs []error
	for i, f := range frameworks {
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: frameworks[%d]", ErrEmptyFrameworkName, i))
		}
	}
	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
