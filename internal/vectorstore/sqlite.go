package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitevec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lien-dev/lien/internal/chunk"
)

func init() {
	sqlitevec.Auto()
}

// SQLiteStore is the sqlite-vec backed concrete VectorStore implementation
// (spec §4.7), grounded on the teacher's chunks/chunks_vec split: `chunks`
// holds content and metadata, `chunks_vec` is a vec0 virtual table indexed
// separately for fast cosine-distance KNN.
type SQLiteStore struct {
	dbPath         string
	versionPath    string
	dimensions     int

	db *sql.DB
}

// NewSQLiteStore builds a store rooted at dbPath (the sqlite file) with a
// version-stamp file alongside it, per spec §4.7's "small file holding a
// millisecond timestamp".
func NewSQLiteStore(dbPath string, dimensions int) *SQLiteStore {
	return &SQLiteStore{
		dbPath:      dbPath,
		versionPath: dbPath + ".version",
		dimensions:  dimensions,
	}
}

func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return fmt.Errorf("creating vector store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	s.db = db

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS chunks (
			chunk_id TEXT PRIMARY KEY,
			repo_id TEXT NOT NULL DEFAULT '',
			file_path TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			kind TEXT NOT NULL,
			symbol_name TEXT NOT NULL DEFAULT '',
			symbol_type TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			metadata_json TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating chunks table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_chunks_file_path ON chunks(file_path)`); err != nil {
		return fmt.Errorf("creating file_path index: %w", err)
	}

	createVec := fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS chunks_vec USING vec0(
			chunk_id TEXT PRIMARY KEY,
			embedding float[%d]
		)
	`, s.dimensions)
	if _, err := db.ExecContext(ctx, createVec); err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}

	if _, err := os.Stat(s.versionPath); os.IsNotExist(err) {
		return s.writeVersion(time.Now().UnixMilli())
	}
	return nil
}

func chunkID(repoID string, c chunk.CodeChunk) string {
	return fmt.Sprintf("%s::%s::%d::%d", repoID, c.Metadata.File, c.Metadata.StartLine, c.Metadata.EndLine)
}

func (s *SQLiteStore) UpsertBatch(ctx context.Context, chunks []chunk.CodeChunk, embeddings [][]float32) error {
	if len(chunks) == 0 {
		return nil
	}
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk count %d does not match embedding count %d", len(chunks), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.upsertTx(ctx, tx, chunks, embeddings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert transaction: %w", err)
	}
	return s.bumpVersion()
}

// ReplaceFile atomically deletes existing file=path rows then inserts the
// new batch (spec §4.7): delete-then-insert in the same transaction, so a
// crash mid-transaction rolls back to the pre-replace state rather than
// leaving the file's chunks half-written.
func (s *SQLiteStore) ReplaceFile(ctx context.Context, path string, chunks []chunk.CodeChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk count %d does not match embedding count %d", len(chunks), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteFileTx(ctx, tx, path); err != nil {
		return err
	}
	if err := s.upsertTx(ctx, tx, chunks, embeddings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace transaction: %w", err)
	}
	return s.bumpVersion()
}

func (s *SQLiteStore) DeleteByFile(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.deleteFileTx(ctx, tx, path); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete transaction: %w", err)
	}
	return s.bumpVersion()
}

func (s *SQLiteStore) deleteFileTx(ctx context.Context, tx *sql.Tx, path string) error {
	rows, err := tx.QueryContext(ctx, `SELECT chunk_id FROM chunks WHERE file_path = ?`, path)
	if err != nil {
		return fmt.Errorf("selecting chunk ids for %s: %w", path, err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning chunk id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating chunk ids for %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("deleting chunks for %s: %w", path, err)
	}

	// vec0 virtual tables don't support a WHERE-based bulk delete the way a
	// normal table does, so delete each indexed vector individually, the
	// same upsert-by-delete-then-insert pattern used for writes.
	stmt, err := tx.PrepareContext(ctx, `DELETE FROM chunks_vec WHERE chunk_id = ?`)
	if err != nil {
		return fmt.Errorf("preparing vector delete: %w", err)
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("deleting vector %s: %w", id, err)
		}
	}
	return nil
}

func (s *SQLiteStore) upsertTx(ctx context.Context, tx *sql.Tx, chunks []chunk.CodeChunk, embeddings [][]float32) error {
	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (chunk_id, repo_id, file_path, start_line, end_line, kind, symbol_name, symbol_type, content, metadata_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			file_path = excluded.file_path, start_line = excluded.start_line, end_line = excluded.end_line,
			kind = excluded.kind, symbol_name = excluded.symbol_name, symbol_type = excluded.symbol_type,
			content = excluded.content, metadata_json = excluded.metadata_json
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk upsert: %w", err)
	}
	defer chunkStmt.Close()

	deleteVecStmt, err := tx.PrepareContext(ctx, `DELETE FROM chunks_vec WHERE chunk_id = ?`)
	if err != nil {
		return fmt.Errorf("preparing vector delete: %w", err)
	}
	defer deleteVecStmt.Close()

	insertVecStmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks_vec (chunk_id, embedding) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer insertVecStmt.Close()

	for i, c := range chunks {
		id := chunkID(c.Metadata.RepoID, c)
		metaJSON, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for %s: %w", id, err)
		}

		if _, err := chunkStmt.ExecContext(ctx, id, c.Metadata.RepoID, c.Metadata.File, c.Metadata.StartLine,
			c.Metadata.EndLine, string(c.Metadata.Kind), c.Metadata.SymbolName, c.Metadata.SymbolType, c.Content, string(metaJSON)); err != nil {
			return fmt.Errorf("upserting chunk %s: %w", id, err)
		}

		if _, err := deleteVecStmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("clearing existing vector %s: %w", id, err)
		}

		embBytes, err := sqlitevec.SerializeFloat32(embeddings[i])
		if err != nil {
			return fmt.Errorf("serializing embedding for %s: %w", id, err)
		}
		if _, err := insertVecStmt.ExecContext(ctx, id, embBytes); err != nil {
			return fmt.Errorf("inserting vector %s: %w", id, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Search(ctx context.Context, query []float32, limit int) ([]SearchResult, error) {
	queryBytes, err := sqlitevec.SerializeFloat32(query)
	if err != nil {
		return nil, fmt.Errorf("serializing query embedding: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.content, c.metadata_json, vec_distance_cosine(v.embedding, ?) AS distance
		FROM chunks_vec v
		JOIN chunks c ON c.chunk_id = v.chunk_id
		ORDER BY distance
		LIMIT ?
	`, queryBytes, limit)
	if err != nil {
		return nil, fmt.Errorf("querying vector index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var content, metaJSON string
		var distance float64
		if err := rows.Scan(&content, &metaJSON, &distance); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		var meta chunk.Metadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		results = append(results, SearchResult{
			Chunk:    chunk.CodeChunk{Content: content, Metadata: meta},
			Distance: distance,
		})
	}
	return results, rows.Err()
}

func (s *SQLiteStore) ScanWithFilter(ctx context.Context, filter ScanFilter) ([]chunk.CodeChunk, error) {
	if filter.Pattern != "" {
		if err := ValidatePattern(filter.Pattern); err != nil {
			return nil, fmt.Errorf("invalid scan pattern: %w", err)
		}
	}

	query := `SELECT content, metadata_json, file_path FROM chunks WHERE 1=1`
	var args []any

	if filter.Language != "" {
		query += ` AND metadata_json LIKE ?`
		args = append(args, `%"language":"`+filter.Language+`"%`)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scanning chunks: %w", err)
	}
	defer rows.Close()

	var pattern *regexpMatcher
	if filter.Pattern != "" {
		pattern, err = newRegexpMatcher(filter.Pattern)
		if err != nil {
			return nil, err
		}
	}

	var out []chunk.CodeChunk
	for rows.Next() {
		var content, metaJSON, filePath string
		if err := rows.Scan(&content, &metaJSON, &filePath); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		if pattern != nil && !pattern.MatchString(filePath) {
			continue
		}
		var meta chunk.Metadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		out = append(out, chunk.CodeChunk{Content: content, Metadata: meta})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) QuerySymbols(ctx context.Context, q SymbolQuery) ([]chunk.CodeChunk, error) {
	query := `SELECT content, metadata_json FROM chunks WHERE 1=1`
	var args []any

	if q.Name != "" {
		query += ` AND symbol_name = ?`
		args = append(args, q.Name)
	}
	if q.SymbolType != "" {
		if q.SymbolType == "function" {
			// Backwards-compat: "function" symbolType must also surface
			// chunks recorded as "method" records (spec §4.7).
			query += ` AND symbol_type IN (?, ?)`
			args = append(args, "function", "method")
		} else {
			query += ` AND symbol_type = ?`
			args = append(args, q.SymbolType)
		}
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying symbols: %w", err)
	}
	defer rows.Close()

	var out []chunk.CodeChunk
	for rows.Next() {
		var content, metaJSON string
		if err := rows.Scan(&content, &metaJSON); err != nil {
			return nil, fmt.Errorf("scanning symbol row: %w", err)
		}
		var meta chunk.Metadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		out = append(out, chunk.CodeChunk{Content: content, Metadata: meta})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) HasData(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting chunks: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) GetCurrentVersion(ctx context.Context) (int64, error) {
	return s.readVersion()
}

func (s *SQLiteStore) GetVersionDate(ctx context.Context) (int64, error) {
	return s.readVersion()
}

// Reconnect reopens the database connection. Readers that cached an older
// version must call this before returning results (spec §4.7).
func (s *SQLiteStore) Reconnect(ctx context.Context) error {
	if s.db != nil {
		s.db.Close()
	}
	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("reconnecting to vector store: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) bumpVersion() error {
	return s.writeVersion(time.Now().UnixMilli())
}

func (s *SQLiteStore) writeVersion(millis int64) error {
	return os.WriteFile(s.versionPath, []byte(fmt.Sprintf("%d", millis)), 0o644)
}

func (s *SQLiteStore) readVersion() (int64, error) {
	data, err := os.ReadFile(s.versionPath)
	if err != nil {
		return 0, fmt.Errorf("reading version stamp: %w", err)
	}
	var v int64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(data)), "%d", &v); err != nil {
		return 0, fmt.Errorf("parsing version stamp: %w", err)
	}
	return v, nil
}
