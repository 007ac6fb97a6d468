package vectorstore

import (
	"fmt"
	"regexp"
	"regexp/syntax"
)

// ValidatePattern rejects path patterns that could cause catastrophic
// backtracking, e.g. `(a+)+`, before ScanWithFilter ever compiles them
// against untrusted input (spec §4.7). Go's RE2-based regexp engine does
// not actually backtrack, but ScanWithFilter's patterns are user-supplied
// query strings that may later be reused against other regex engines, so
// the same nested-quantifier shapes are rejected here defensively rather
// than relying on the engine's own safety.
func ValidatePattern(pattern string) error {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return fmt.Errorf("parsing pattern: %w", err)
	}
	if hasNestedQuantifier(re, false) {
		return fmt.Errorf("pattern %q contains a nested quantifier that can cause catastrophic backtracking", pattern)
	}
	return nil
}

// hasNestedQuantifier walks the parsed regex tree looking for a repeat
// operator (Star, Plus, Quest, Repeat) whose body itself contains a
// repeat operator — the `(a+)+` shape.
func hasNestedQuantifier(re *syntax.Regexp, insideRepeat bool) bool {
	isRepeat := re.Op == syntax.OpStar || re.Op == syntax.OpPlus || re.Op == syntax.OpQuest || re.Op == syntax.OpRepeat

	if isRepeat && insideRepeat {
		return true
	}

	childRepeat := insideRepeat || isRepeat
	for _, sub := range re.Sub {
		if hasNestedQuantifier(sub, childRepeat) {
			return true
		}
	}
	return false
}

// regexpMatcher wraps a validated pattern for case-insensitive path
// matching in ScanWithFilter.
type regexpMatcher struct {
	re *regexp.Regexp
}

func newRegexpMatcher(pattern string) (*regexpMatcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}
	return &regexpMatcher{re: re}, nil
}

func (m *regexpMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}
