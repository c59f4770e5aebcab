package vanity

import (
	"strings"
	"unicode/utf8"
)

// Matches reports whether identifier starts with pattern. When caseSensitive is false both
// operands are folded to lower case before comparing.
func Matches(identifier, pattern string, caseSensitive bool) bool {
	return NewMatcher(pattern, caseSensitive).Match(identifier)
}

// Matcher is a prefix predicate with the pattern folded once up front.
type Matcher struct {
	prefix        string
	runes         int
	caseSensitive bool
}

// NewMatcher creates a Matcher for pattern.
func NewMatcher(pattern string, caseSensitive bool) Matcher {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return Matcher{
		prefix:        pattern,
		runes:         utf8.RuneCountInString(pattern),
		caseSensitive: caseSensitive,
	}
}

// Match reports whether identifier satisfies the pattern.
func (m Matcher) Match(identifier string) bool {
	if m.caseSensitive {
		return strings.HasPrefix(identifier, m.prefix)
	}
	// Lower-casing maps rune to rune, so only the head of the identifier needs folding.
	return strings.HasPrefix(strings.ToLower(headRunes(identifier, m.runes)), m.prefix)
}

// headRunes returns the longest prefix of s holding at most n runes.
func headRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
