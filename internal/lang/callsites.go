package lang

import "strings"

// ExtractCallSites scans a chunk's node for call expressions, per spec
// §4.2 step 3 ("callSites by scanning call-expression nodes within the
// chunk's span"). Most tree-sitter call-expression grammars expose the
// callee under a "function" field; where that's absent the raw text up to
// the first "(" is used, which still identifies simple and member calls.
func ExtractCallSites(chunkRoot Node, spec *Spec) []CallSite {
	if spec.Complexity.CallNodeKinds == nil {
		return nil
	}

	var sites []CallSite
	Walk(chunkRoot, func(n Node) bool {
		if spec.Complexity.CallNodeKinds[n.Kind()] {
			name := calleeName(n)
			if name != "" {
				sites = append(sites, CallSite{Symbol: name, Line: n.StartLine()})
			}
		}
		return true
	})
	return sites
}

func calleeName(n Node) string {
	if fn := n.ChildByField("function"); !fn.IsZero() {
		return lastSegment(fn.Text())
	}
	if fn := n.ChildByField("method"); !fn.IsZero() {
		return lastSegment(fn.Text())
	}
	text := n.Text()
	if idx := strings.IndexByte(text, '('); idx > 0 {
		return lastSegment(text[:idx])
	}
	return ""
}

// lastSegment reduces a dotted/arrow member expression ("a.b.c", "a->b")
// to its final identifier, which is what callers care about for reverse
// lookups and complexity reporting.
func lastSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "->", ".")
	s = strings.ReplaceAll(s, "::", ".")
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
