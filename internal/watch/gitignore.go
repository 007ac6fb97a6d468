// Package watch implements the file-watch change handler (spec §4.6): a
// gitignore-aware filter feeding an incremental-reindex pipeline.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// AlwaysIgnored are patterns combined with .gitignore content on every
// filter rebuild (spec §4.6), independent of what the repo's own .gitignore
// says.
var AlwaysIgnored = []string{
	"node_modules/**",
	"vendor/**",
	".git/**",
	".lien/**",
}

var gitignoreFileRe = regexp.MustCompile(`(^|/)\.gitignore$|(^|\\)\.gitignore$`)

// IsGitignoreFile reports whether a changed path is a .gitignore file
// itself, which must invalidate any cached Filter (spec §4.6 rule 2).
func IsGitignoreFile(path string) bool {
	return gitignoreFileRe.MatchString(filepath.ToSlash(path))
}

// gitignorePattern is one parsed line of .gitignore-style pattern syntax,
// grounded on the conexus walker's patternMatcher: negation, directory-only,
// and anchored patterns are tracked separately from the compiled glob.
type gitignorePattern struct {
	negate   bool
	dirOnly  bool
	anchored bool
	raw      string
	g        glob.Glob
}

// Filter evaluates paths against a combined .gitignore + always-ignored
// pattern set. Patterns are evaluated in order and the last match wins,
// matching real gitignore semantics.
type Filter struct {
	patterns []gitignorePattern
}

// NewFilter compiles a Filter from raw pattern lines (already parsed out of
// a .gitignore file) plus AlwaysIgnored.
func NewFilter(gitignoreLines []string) (*Filter, error) {
	f := &Filter{}
	all := make([]string, 0, len(gitignoreLines)+len(AlwaysIgnored))
	all = append(all, gitignoreLines...)
	all = append(all, AlwaysIgnored...)

	for _, line := range all {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := gitignorePattern{raw: line}
		if strings.HasPrefix(line, "!") {
			p.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			p.anchored = true
			line = strings.TrimPrefix(line, "/")
		}

		g, err := glob.Compile(line, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p.raw, err)
		}
		p.g = g
		f.patterns = append(f.patterns, p)
	}
	return f, nil
}

// LoadGitignore reads basePath/.gitignore, returning its non-comment,
// non-blank lines. A missing file is not an error (returns nil).
func LoadGitignore(basePath string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(basePath, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// IsIgnored reports whether relPath (workspace-relative, forward-slashed)
// should be excluded. Directory-only patterns also match anything nested
// under that directory; non-anchored directory names match at any depth,
// mirroring the teacher pack's conexus walker semantics.
func (f *Filter) IsIgnored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	ignored := false

	for _, p := range f.patterns {
		if p.dirOnly {
			if f.matchesDirOnly(p, relPath) {
				ignored = !p.negate
			}
			continue
		}
		if f.matches(p, relPath) {
			ignored = !p.negate
		}
	}
	return ignored
}

func (f *Filter) matchesDirOnly(p gitignorePattern, relPath string) bool {
	base := strings.TrimSuffix(p.raw, "/")
	base = strings.TrimPrefix(base, "!")
	base = strings.TrimPrefix(base, "/")

	if relPath == base || strings.HasPrefix(relPath, base+"/") {
		return true
	}
	if p.anchored {
		return false
	}
	for _, part := range strings.Split(relPath, "/") {
		if part == base {
			return true
		}
	}
	return false
}

func (f *Filter) matches(p gitignorePattern, relPath string) bool {
	if p.anchored {
		return p.g.Match(relPath)
	}
	if p.g.Match(relPath) || p.g.Match(filepath.Base(relPath)) {
		return true
	}
	// Non-anchored patterns also match at any path-component suffix, e.g.
	// "foo/bar" matching ".../foo/bar/baz".
	parts := strings.Split(relPath, "/")
	for i := range parts {
		if p.g.Match(strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// CachedFilter guards a Filter behind a mutex so it can be rebuilt lazily
// on .gitignore mutation while readers race safely (spec §5: "concurrent
// rebuilds are allowed and idempotent, last-writer-wins").
type CachedFilter struct {
	mu        sync.RWMutex
	filter    *Filter
	basePath  string
}

// NewCachedFilter builds an empty cache rooted at basePath; call Get to
// lazily build (or reuse) the compiled Filter.
func NewCachedFilter(basePath string) *CachedFilter {
	return &CachedFilter{basePath: basePath}
}

// Get returns the cached Filter, building it on first use.
func (c *CachedFilter) Get() (*Filter, error) {
	c.mu.RLock()
	f := c.filter
	c.mu.RUnlock()
	if f != nil {
		return f, nil
	}
	return c.rebuild()
}

// Invalidate drops the cached Filter so the next Get rebuilds it from disk.
// Concurrent Invalidate+rebuild calls are safe and idempotent.
func (c *CachedFilter) Invalidate() {
	c.mu.Lock()
	c.filter = nil
	c.mu.Unlock()
}

func (c *CachedFilter) rebuild() (*Filter, error) {
	lines, err := LoadGitignore(c.basePath)
	if err != nil {
		return nil, err
	}
	f, err := NewFilter(lines)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
	return f, nil
}
