// Package depgraph implements the reverse-dependency resolver and graph
// query engine (spec §4.8): turning each chunk's recorded imports into a
// file-level dependency graph, and answering forward/reverse/both BFS
// queries over it.
package depgraph

import (
	"path"
	"strings"
)

var stripExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// NormalizeImportPath applies spec §4.8 step 1: strip quotes, trim, convert
// backslashes to forward slashes, strip the handful of source extensions,
// and drop a leading workspace-root prefix.
func NormalizeImportPath(raw, workspaceRoot string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, `\`, "/")

	for _, ext := range stripExtensions {
		if strings.HasSuffix(s, ext) {
			s = strings.TrimSuffix(s, ext)
			break
		}
	}

	if workspaceRoot != "" {
		root := strings.TrimSuffix(strings.ReplaceAll(workspaceRoot, `\`, "/"), "/") + "/"
		s = strings.TrimPrefix(s, root)
	}

	return s
}

// ResolveImport applies spec §4.8 step 2: relative imports (./x, ../../x)
// resolve against the importer's directory; an absolute path that resolves
// outside the workspace is skipped (returns "", false).
func ResolveImport(importPath, importerFile, workspaceRoot string) (string, bool) {
	normalized := NormalizeImportPath(importPath, workspaceRoot)

	if !strings.HasPrefix(normalized, "./") && !strings.HasPrefix(normalized, "../") {
		// A path still absolute after the workspace prefix was stripped
		// lies outside the workspace.
		if strings.HasPrefix(normalized, "/") {
			return "", false
		}
		// Non-relative import: package/module reference, returned as-is.
		// Graph construction connects it only when it boundary-matches an
		// indexed file.
		return normalized, true
	}

	importerDir := path.Dir(strings.ReplaceAll(importerFile, `\`, "/"))
	resolved := path.Join(importerDir, normalized)
	resolved = path.Clean(resolved)

	if strings.HasPrefix(resolved, "../") || resolved == ".." {
		return "", false
	}

	return resolved, true
}

// PathsMatch applies spec §4.8 step 3: two normalized paths match if either
// contains the other at a path-component boundary. Bare substring
// containment is rejected so "logger" does not match "logger-utils".
func PathsMatch(a, b string) bool {
	a = strings.TrimPrefix(a, "./")
	b = strings.TrimPrefix(b, "./")
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return boundaryContains(a, b) || boundaryContains(b, a)
}

// boundaryContains reports whether short occurs in long at a path-component
// boundary on both sides (start-of-string or preceded by "/", end-of-string
// or followed by "/"). Every occurrence is checked, not just the first, so
// a short string that first appears mid-component but also appears as a
// full component elsewhere is still matched.
func boundaryContains(long, short string) bool {
	for idx := 0; ; {
		rel := strings.Index(long[idx:], short)
		if rel < 0 {
			return false
		}
		start := idx + rel
		end := start + len(short)

		startOK := start == 0 || long[start-1] == '/'
		endOK := end == len(long) || long[end] == '/'
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}
