// Package textnorm canonicalizes raw spreadsheet cell text into a comparable form.
package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// dashReplacer folds dash-like code points to an ASCII hyphen. U+30FC is
// handled separately because it is only a dash when it sits next to a digit.
var dashReplacer = strings.NewReplacer(
	"\u2010", "-", // hyphen
	"\u2011", "-", // non-breaking hyphen
	"\u2012", "-", // figure dash
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2015", "-", // horizontal bar
	"\u2212", "-", // minus sign
	"\ufe63", "-", // small hyphen-minus
	"\uff0d", "-", // full-width hyphen-minus
)

var spaceReplacer = strings.NewReplacer(
	"\u3000", " ",
	"\u00a0", " ",
)

// Normalize returns the NFKC form of the trimmed text with ideographic and
// no-break spaces folded to ASCII space and dash variants folded to '-'.
// It must not be applied to phone display text.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToValidUTF8(text, "")
	text = spaceReplacer.Replace(text)
	text = norm.NFKC.String(text)
	text = dashReplacer.Replace(text)
	text = foldProlongedMark(text)
	return strings.TrimSpace(text)
}

// NormalizeAll normalizes every value and returns a new slice.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}

// foldProlongedMark turns "ー" into '-' when a neighbouring rune is a digit,
// e.g. "1ー2ー3" but not "メーカー".
func foldProlongedMark(s string) string {
	if !strings.ContainsRune(s, 'ー') {
		return s
	}
	runes := []rune(s)
	for i, r := range runes {
		if r != 'ー' {
			continue
		}
		prevDigit := i > 0 && isASCIIDigit(runes[i-1])
		nextDigit := i+1 < len(runes) && isASCIIDigit(runes[i+1])
		if prevDigit || nextDigit {
			runes[i] = '-'
		}
	}
	return string(runes)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// midDots are the middle-dot family used as field separators in map exports.
const midDots = "·・⋅•･"

// IsMidDot reports whether r is a middle-dot separator.
func IsMidDot(r rune) bool {
	return strings.ContainsRune(midDots, r)
}

// SplitLastMidDot splits s around its last middle dot. ok is false when s
// has none. Both halves are trimmed.
func SplitLastMidDot(s string) (left, right string, ok bool) {
	idx := strings.LastIndexAny(s, midDots)
	if idx < 0 {
		return s, "", false
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+size:]), true
}

// SplitMidDots splits s on every middle dot and trims each part.
func SplitMidDots(s string) []string {
	parts := strings.FieldsFunc(s, IsMidDot)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
