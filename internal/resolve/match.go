package resolve

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinContainLen is the shortest key allowed to match by containment.
const DefaultMinContainLen = 4

// Matcher decides whether two canonical keys name the same company.
// Keys match when equal, or when one contains the other and the shorter
// key has at least MinContainLen runes. MinContainLen 0 means pure
// bidirectional containment. Empty keys never match.
//
// The threshold bounds false-positive exclusions from short keys: under
// pure containment a two- or three-rune key such as テスト would exclude
// every name containing it, テスト商事 included. Keep it unless stakeholders
// accept that risk.
type Matcher struct {
	MinContainLen int
}

// NewMatcher returns a Matcher with the given containment threshold.
func NewMatcher(minContainLen int) Matcher {
	if minContainLen < 0 {
		minContainLen = 0
	}
	return Matcher{MinContainLen: minContainLen}
}

// Match reports whether keys a and b refer to the same company.
func (m Matcher) Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < m.MinContainLen {
		return false
	}
	return strings.Contains(longer, shorter)
}

// MatchAny returns the first key in keys that matches key.
func (m Matcher) MatchAny(key string, keys []string) (string, bool) {
	for _, k := range keys {
		if m.Match(key, k) {
			return k, true
		}
	}
	return "", false
}
