package engine

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/lien-dev/lien/internal/watch"
)

// discovery walks the workspace tree applying config.Paths.Include/Ignore
// glob patterns plus the gitignore-aware filter, grounded on the teacher's
// internal/indexer/discovery.go FileDiscovery.
type discovery struct {
	rootDir  string
	includes []glob.Glob
	ignores  []glob.Glob
	filter   *watch.CachedFilter
}

func newDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*discovery, error) {
	d := &discovery{rootDir: rootDir, filter: watch.NewCachedFilter(rootDir)}

	for _, p := range includePatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, NewInvalidInput("invalid include pattern " + p)
		}
		d.includes = append(d.includes, g)
	}
	for _, p := range ignorePatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, NewInvalidInput("invalid ignore pattern " + p)
		}
		d.ignores = append(d.ignores, g)
	}
	return d, nil
}

// discoverFiles walks rootDir and returns every workspace-relative,
// forward-slash path that matches an include pattern, isn't matched by an
// ignore pattern, and isn't gitignored.
func (d *discovery) discoverFiles() ([]string, error) {
	gitignoreFilter, err := d.filter.Get()
	if err != nil {
		return nil, err
	}

	var out []string
	err = filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.matchesAny(relPath, d.ignores) || gitignoreFilter.IsIgnored(relPath) {
			return nil
		}
		if len(d.includes) > 0 && !d.matchesAny(relPath, d.includes) {
			return nil
		}
		out = append(out, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *discovery) matchesAny(path string, patterns []glob.Glob) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}
