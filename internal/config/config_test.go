package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 75, cfg.Core.ChunkSize)
	assert.Equal(t, 10, cfg.Core.ChunkOverlap)
	assert.True(t, cfg.Chunking.UseAST)
	assert.Equal(t, "line-based", cfg.Chunking.ASTFallback)
	assert.Equal(t, 2.0, cfg.Complexity.Severity.Error)
}

func TestValidate_RejectsBadChunkOverlap(t *testing.T) {
	cfg := Default()
	cfg.Core.ChunkOverlap = cfg.Core.ChunkSize
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverlap)
}

func TestValidate_RejectsUnknownASTFallback(t *testing.T) {
	cfg := Default()
	cfg.Chunking.ASTFallback = "retry-forever"
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidASTFallback)
}

func TestValidate_RejectsSeverityErrorBelowWarning(t *testing.T) {
	cfg := Default()
	cfg.Complexity.Severity.Error = 0.5
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSeverityMultiplier)
}

func TestLoadConfigFromDir_UsesDefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Core, cfg.Core)
}

func TestLoadConfigFromDir_ReadsYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".lien"), 0o755))
	yaml := []byte("core:\n  chunkSize: 120\n  chunkOverlap: 20\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lien", "config.yml"), yaml, 0o644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Core.ChunkSize)

	t.Setenv("LIEN_CORE_CHUNKSIZE", "200")
	cfg, err = LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Core.ChunkSize)
}
