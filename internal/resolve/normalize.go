// Package resolve builds comparison keys for company names and decides
// whether two names refer to the same company.
package resolve

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/gchange/internal/textnorm"
)

// entityMarkers lists Japanese legal-entity markers. They are removed
// wherever they occur.
var entityMarkers = []string{
	"株式会社", "有限会社", "合同会社", "合資会社", "合名会社",
	"一般社団法人", "一般財団法人", "公益社団法人", "公益財団法人",
	"社会福祉法人", "医療法人社団", "医療法人財団", "医療法人",
	"特定非営利活動法人", "npo法人", "協同組合",
	"(株)", "(有)", "(同)", "(資)", "(名)", "(社)", "(財)", "(医)",
	"株式會社",
}

// latinMarkers lists Latin legal-entity suffixes. They are removed only as
// whole tokens so "Principal" keeps its "inc".
var latinMarkers = []string{
	"co., ltd.", "co.,ltd.", "co., ltd", "co.,ltd", "co. ltd.", "co.ltd.", "co ltd",
	"incorporated", "corporation", "company", "limited",
	"inc.", "inc", "corp.", "corp", "ltd.", "ltd", "llc", "l.l.c.",
	"k.k.", "kk", "co.",
}

// stripChars are comparison-only punctuation, spaces and brackets.
const stripChars = " \t,.，．、。・·⋅•-_/\\'\"`&＆!?！？()[]{}<>「」『』【】〔〕〈〉《》（）［］＜＞"

func init() {
	sortLongestFirst(entityMarkers)
	sortLongestFirst(latinMarkers)
}

func sortLongestFirst(list []string) {
	sort.SliceStable(list, func(i, j int) bool {
		return utf8.RuneCountInString(list[i]) > utf8.RuneCountInString(list[j])
	})
}

// CanonicalKey turns a company display name into an equivalence key:
//  1. textnorm.Normalize (NFKC, spaces, dashes)
//  2. Hiragana folded to Katakana
//  3. ASCII letters lowercased
//  4. legal-entity markers removed, longest first
//  5. comparison-only punctuation removed
//
// The key is never shown to users.
func CanonicalKey(name string) string {
	name = textnorm.Normalize(name)
	if name == "" {
		return ""
	}
	name = HiraganaToKatakana(name)
	name = lowerASCII(name)

	for _, m := range entityMarkers {
		name = strings.ReplaceAll(name, m, "")
	}
	name = stripLatinMarkers(name)

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripChars, r) {
			return -1
		}
		return r
	}, name)
}

// HiraganaToKatakana shifts U+3041..U+3096 by 0x60. Comparison only.
func HiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x3041 && r <= 0x3096 {
			return r + 0x60
		}
		return r
	}, s)
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func stripLatinMarkers(s string) string {
	for _, m := range latinMarkers {
		start := 0
		for {
			idx := strings.Index(s[start:], m)
			if idx < 0 {
				break
			}
			abs := start + idx
			end := abs + len(m)
			if tokenBoundary(s, abs, end) {
				s = s[:abs] + s[end:]
				start = abs
				continue
			}
			start = abs + 1
		}
	}
	return s
}

// tokenBoundary reports whether s[start:end] is not glued to other Latin
// letters or digits on either side.
func tokenBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isLatinAlnum(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isLatinAlnum(r) {
			return false
		}
	}
	return true
}

func isLatinAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
