// Package engine bundles the embedder, vector store, manifest, and
// coordinator into a single IndexContext and implements the top-level
// Index/IndexIncremental orchestration (spec §4.4, §9 "Global process
// state" design note).
package engine

import "fmt"

// ErrorKind classifies a LienError per spec §7's enumerated error kinds.
type ErrorKind string

const (
	// ConfigError: malformed config, unknown keys, invalid thresholds.
	// Surfaced to the caller; not retried.
	ConfigError ErrorKind = "ConfigError"

	// IndexingError: chunker failure on a single file. The file is skipped
	// and reindex continues.
	IndexingError ErrorKind = "IndexingError"

	// EmbeddingError: model initialization or inference failure. Retryable.
	EmbeddingError ErrorKind = "EmbeddingError"

	// DatabaseError: vector-store read/write failure. Retryable for
	// transient I/O; fatal if the store reports corruption.
	DatabaseError ErrorKind = "DatabaseError"

	// FileNotFound: a referenced path does not exist.
	FileNotFound ErrorKind = "FileNotFound"

	// FileNotReadable: a referenced path exists but could not be read.
	FileNotReadable ErrorKind = "FileNotReadable"

	// InvalidPath: a path argument is malformed or escapes the workspace.
	InvalidPath ErrorKind = "InvalidPath"

	// InvalidInput: rejected user arguments (bad regex, empty required
	// fields). Non-retryable.
	InvalidInput ErrorKind = "InvalidInput"
)

// Error is Lien's machine-readable error envelope (spec §7: "Errors carry
// a machine-readable code, a human message, an optional structured
// context, and retryable/recoverable flags").
type Error struct {
	Kind        ErrorKind
	Message     string
	Context     map[string]string
	Retryable   bool
	Recoverable bool
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// newError builds an *Error with an optional single context key/value,
// the shape every constructor below needs.
func newError(kind ErrorKind, message string, retryable, recoverable bool, cause error, ctx map[string]string) *Error {
	return &Error{
		Kind:        kind,
		Message:     message,
		Context:     ctx,
		Retryable:   retryable,
		Recoverable: recoverable,
		Cause:       cause,
	}
}

// NewConfigError wraps a configuration validation/parse failure.
func NewConfigError(message string, cause error) *Error {
	return newError(ConfigError, message, false, false, cause, nil)
}

// NewIndexingError wraps a single-file chunker failure; per spec §7 this is
// recoverable (the file is skipped, reindex continues).
func NewIndexingError(path string, cause error) *Error {
	return newError(IndexingError, "chunking failed", false, true, cause, map[string]string{"path": path})
}

// NewEmbeddingError wraps an embedder initialization/inference failure.
func NewEmbeddingError(message string, cause error) *Error {
	return newError(EmbeddingError, message, true, false, cause, nil)
}

// NewDatabaseError wraps a vector-store failure. corrupt marks the fatal,
// non-retryable case that should trigger a full rebuild instead of a retry.
func NewDatabaseError(message string, cause error, corrupt bool) *Error {
	return newError(DatabaseError, message, !corrupt, false, cause, nil)
}

// NewFileNotFound wraps a missing-path error.
func NewFileNotFound(path string) *Error {
	return newError(FileNotFound, "file not found", false, true, nil, map[string]string{"path": path})
}

// NewFileNotReadable wraps an unreadable-path error.
func NewFileNotReadable(path string, cause error) *Error {
	return newError(FileNotReadable, "file not readable", false, true, cause, map[string]string{"path": path})
}

// NewInvalidPath wraps a malformed or workspace-escaping path argument.
func NewInvalidPath(path string) *Error {
	return newError(InvalidPath, "invalid path", false, true, nil, map[string]string{"path": path})
}

// NewInvalidInput wraps a rejected user argument (bad regex, empty
// required field).
func NewInvalidInput(message string) *Error {
	return newError(InvalidInput, message, false, false, nil, nil)
}
