// Package policy holds the pure resolution logic: the path-exclusion
// rules and the four-way branch that turns a resolution input into an
// image reference. Nothing in this package has state or side effects.
package policy

import "strings"

// Exclusions is the ordered list of path prefixes that opt a page out of
// mode-driven background switching. Matching is case-sensitive.
type Exclusions []string

// DefaultExclusions returns the stock exclusion list.
func DefaultExclusions() Exclusions {
	return Exclusions{"/about/", "/cv/"}
}

// Matches reports whether path starts with any listed prefix. This is
// the check used by the runtime signal handlers.
func (e Exclusions) Matches(path string) bool {
	for _, prefix := range e {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// MatchesExact reports whether path equals a listed entry verbatim.
//
// Only the startup resolution uses this. The list stores prefixes, so
// for most non-root paths this never fires even when Matches does.
// The two checks deliberately disagree and are kept as distinct
// methods pending a product decision on unifying them.
func (e Exclusions) MatchesExact(path string) bool {
	for _, entry := range e {
		if path == entry {
			return true
		}
	}
	return false
}
