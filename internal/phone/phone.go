// Package phone finds Japanese phone numbers in free text and builds
// digits-only keys for matching.
package phone

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	minDigits = 9
	maxDigits = 11
	// minInner is the minimum length of the run between the first and last digit.
	minInner = 6
)

// dashRunes lists every dash variant accepted inside a phone token.
const dashRunes = "-\u2010\u2011\u2012\u2013\u2014\u2015\u2212\ufe63\uff0d\u30fc\uff70"

// ExtractToken returns the best phone-number substring of line, verbatim,
// or "" when no candidate survives. Scanning is done on the original text
// so the returned token keeps its original dashes and widths.
func ExtractToken(line string) string {
	runes := []rune(line)
	best := ""
	bestDigits, bestDashes := -1, -1

	consider := func(start, end int) {
		if !acceptable(runes, start, end) {
			return
		}
		token := string(runes[start:end])
		d := len(Digits(token))
		h := countDashes(runes[start:end])
		if d > bestDigits || (d == bestDigits && h > bestDashes) {
			best, bestDigits, bestDashes = token, d, h
		}
	}

	for _, span := range candidateSpans(runes) {
		if acceptable(runes, span[0], span[1]) {
			consider(span[0], span[1])
			continue
		}
		// Two numbers separated by spaces form one long run; retry the pieces.
		for _, piece := range splitOnSpace(runes, span[0], span[1]) {
			consider(piece[0], piece[1])
		}
	}
	return best
}

// Contains reports whether line holds a phone token.
func Contains(line string) bool {
	return ExtractToken(line) != ""
}

// Digits strips every non-digit from the NFKC form of s. It is used for
// matching and deduplication only, never for display.
func Digits(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// candidateSpans returns [start,end) spans of the form
// digit (digit|dash|space){6,} digit, leftmost-longest, non-overlapping.
func candidateSpans(runes []rune) [][2]int {
	var spans [][2]int
	i := 0
	for i < len(runes) {
		if !isDigit(runes[i]) {
			i++
			continue
		}
		j := i
		lastDigit := i
		for j < len(runes) && isBody(runes[j]) {
			if isDigit(runes[j]) {
				lastDigit = j
			}
			j++
		}
		if lastDigit-i-1 >= minInner {
			spans = append(spans, [2]int{i, lastDigit + 1})
		}
		i = j
	}
	return spans
}

// splitOnSpace cuts a span at whitespace and keeps pieces that still have
// the candidate shape.
func splitOnSpace(runes []rune, start, end int) [][2]int {
	var pieces [][2]int
	pieceStart := -1
	flush := func(stop int) {
		if pieceStart < 0 {
			return
		}
		s, e := trimToDigits(runes, pieceStart, stop)
		if s >= 0 && e-s-2 >= minInner {
			pieces = append(pieces, [2]int{s, e})
		}
		pieceStart = -1
	}
	for k := start; k < end; k++ {
		if unicode.IsSpace(runes[k]) {
			flush(k)
			continue
		}
		if pieceStart < 0 {
			pieceStart = k
		}
	}
	flush(end)
	return pieces
}

func trimToDigits(runes []rune, start, end int) (int, int) {
	for start < end && !isDigit(runes[start]) {
		start++
	}
	for end > start && !isDigit(runes[end-1]) {
		end--
	}
	if start >= end {
		return -1, -1
	}
	return start, end
}

func acceptable(runes []rune, start, end int) bool {
	if adjoinsTimeColon(runes, start, end) {
		return false
	}
	digits := Digits(string(runes[start:end]))
	if len(digits) < minDigits || len(digits) > maxDigits {
		return false
	}
	return strings.HasPrefix(digits, "0") || strings.HasPrefix(digits, "81")
}

// adjoinsTimeColon rejects spans glued to a time of day such as "12:30".
func adjoinsTimeColon(runes []rune, start, end int) bool {
	if start >= 2 && isColon(runes[start-1]) && isDigit(runes[start-2]) {
		return true
	}
	if end+1 < len(runes) && isColon(runes[end]) && isDigit(runes[end+1]) {
		return true
	}
	return false
}

func countDashes(runes []rune) int {
	n := 0
	for _, r := range runes {
		if isDash(r) {
			n++
		}
	}
	return n
}

func isDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '０' && r <= '９')
}

func isDash(r rune) bool {
	return strings.ContainsRune(dashRunes, r)
}

func isColon(r rune) bool {
	return r == ':' || r == '：'
}

func isBody(r rune) bool {
	return isDigit(r) || isDash(r) || r == ' ' || r == '\t' || r == '\u3000' || r == '\u00a0'
}
