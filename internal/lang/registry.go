package lang

import (
	"path/filepath"
	"strings"
)

var (
	byID  = map[ID]*Spec{}
	byExt = map[string]*Spec{}
)

// register adds a language Spec to the compile-time registry. Called from
// each language file's init(); panics on a duplicate extension, since that
// is always a registry bug rather than user input.
func register(spec *Spec) {
	if _, exists := byID[spec.ID]; exists {
		panic("lang: duplicate registration for " + string(spec.ID))
	}
	byID[spec.ID] = spec
	for _, ext := range spec.Extensions {
		if prev, exists := byExt[ext]; exists {
			panic("lang: extension " + ext + " claimed by both " + string(prev.ID) + " and " + string(spec.ID))
		}
		byExt[ext] = spec
	}
}

// Detect returns the Spec registered for a file's extension. Detection is
// by extension only (spec §4.1); an unsupported extension returns ok=false
// and the chunker falls back to line chunking.
func Detect(path string) (*Spec, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	spec, ok := byExt[ext]
	return spec, ok
}

// Get returns the Spec for a canonical language ID.
func Get(id ID) (*Spec, bool) {
	spec, ok := byID[id]
	return spec, ok
}

// All returns every registered Spec, for callers that need to enumerate
// supported languages (e.g. CLI help text).
func All() []*Spec {
	out := make([]*Spec, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	return out
}
