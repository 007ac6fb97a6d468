// Package vectorstore implements the VectorStore contract (spec §4.7): an
// abstract interface over the persisted vectors/metadata/content, plus a
// sqlite-vec backed concrete store.
package vectorstore

import (
	"context"

	"github.com/lien-dev/lien/internal/chunk"
)

// SearchResult is one ranked hit from Search: the chunk plus its distance
// to the query vector (lower is better for cosine distance).
type SearchResult struct {
	Chunk    chunk.CodeChunk
	Distance float64
}

// ScanFilter restricts ScanWithFilter to a language and/or a path pattern.
// Pattern is matched case-insensitively against the chunk's file path and
// is rejected at validation time if it could cause catastrophic
// backtracking (see ValidatePattern).
type ScanFilter struct {
	Language string
	Pattern  string
	Limit    int
}

// SymbolQuery finds chunks by symbol name and/or type. Per spec §4.7,
// symbolType="function" must also match "method" records (backwards
// compatibility with indexes written before method chunks existed).
type SymbolQuery struct {
	Name       string
	SymbolType string
	Limit      int
}

// Store is the abstract VectorStore contract every backend implements.
// Per-chunk identity is (repoId, file, startLine, endLine); the store owns
// its own version stamp and must treat per-file writes as atomic.
type Store interface {
	Initialize(ctx context.Context) error

	UpsertBatch(ctx context.Context, chunks []chunk.CodeChunk, embeddings [][]float32) error
	ReplaceFile(ctx context.Context, path string, chunks []chunk.CodeChunk, embeddings [][]float32) error
	DeleteByFile(ctx context.Context, path string) error

	Search(ctx context.Context, query []float32, limit int) ([]SearchResult, error)
	ScanWithFilter(ctx context.Context, filter ScanFilter) ([]chunk.CodeChunk, error)
	QuerySymbols(ctx context.Context, q SymbolQuery) ([]chunk.CodeChunk, error)

	HasData(ctx context.Context) (bool, error)
	GetCurrentVersion(ctx context.Context) (int64, error)
	GetVersionDate(ctx context.Context) (int64, error)
	Reconnect(ctx context.Context) error

	Close() error
}
