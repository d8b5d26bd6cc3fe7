// Package industry cleans the industry field of map-search exports and
// matches industries against keyword lists.
package industry

import (
	"regexp"
	"strings"

	"github.com/sells-group/gchange/internal/textnorm"
)

// scorePrefixRe matches a leading "4.3(42)·" rating prefix. The separator
// is optional so a bare "4.3(42)" line is also consumed.
var scorePrefixRe = regexp.MustCompile(`^\s*[★☆]?\s*\d(?:\.\d+)?\s*[★☆]*\s*\(\s*[\d,]+\s*\)\s*[·・⋅•･]?\s*`)

// reviewPhraseRes are review phrases removed wherever they occur.
var reviewPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`Google\s*(?:の)?\s*(?:クチコミ|口コミ|レビュー)(?:\s*[(]?\s*[\d,]+\s*[)]?\s*件?)?`),
	regexp.MustCompile(`[\d,]+\s*件の(?:クチコミ|口コミ|レビュー)`),
	regexp.MustCompile(`(?i)[(]?[\d,]+[)]?\s*(?:google\s+)?reviews?\b`),
	regexp.MustCompile(`(?i)no\s+reviews?`),
	regexp.MustCompile(`(?:レビュー|クチコミ|口コミ)なし`),
}

// reviewMarkers start a segment list that is mostly noise.
var reviewMarkers = []string{"レビュー", "クチコミ", "口コミ"}

// noiseTokens are whole segments that carry no industry information.
var noiseTokens = map[string]struct{}{
	"レビュー": {}, "レビューなし": {}, "クチコミ": {}, "クチコミなし": {}, "口コミ": {}, "口コミなし": {},
	"なし": {}, "none": {}, "None": {}, "-": {},
}

var reviewCountRe = regexp.MustCompile(`^[\d,]+\s*件(?:の(?:クチコミ|口コミ|レビュー))?$`)

// StripReviewNoise removes rating and review boilerplate from an industry
// value and rejoins the surviving segments with a single middle dot. It
// returns "" when nothing but noise remains. The result is a fixpoint, so
// StripReviewNoise(StripReviewNoise(x)) == StripReviewNoise(x).
func StripReviewNoise(text string) string {
	cur := textnorm.Normalize(text)
	// After the first pass cur is a "·"-join of trimmed segments, so a
	// pass either removes something or returns cur unchanged.
	for {
		next := stripOnce(cur)
		if next == cur {
			return next
		}
		cur = next
	}
}

func stripOnce(s string) string {
	s = strings.TrimSpace(s)
	for {
		stripped := scorePrefixRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	if !startsWithMarker(s) {
		for _, re := range reviewPhraseRes {
			s = re.ReplaceAllString(s, "")
		}
	}

	var kept []string
	for _, seg := range textnorm.SplitMidDots(s) {
		if seg == "" || isNoise(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "·")
}

// startsWithMarker reports whether s begins with a review marker. Such
// values are cleaned segment-wise only, so a phrase inside a real segment
// is left alone.
func startsWithMarker(s string) bool {
	for _, m := range reviewMarkers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

func isNoise(seg string) bool {
	if _, ok := noiseTokens[seg]; ok {
		return true
	}
	if reviewCountRe.MatchString(seg) {
		return true
	}
	for _, re := range reviewPhraseRes {
		if re.FindString(seg) == seg {
			return true
		}
	}
	return false
}

// IsNoReviewsMarker reports whether a whole line is a "no reviews" marker.
func IsNoReviewsMarker(line string) bool {
	n := textnorm.Normalize(line)
	switch n {
	case "レビューなし", "クチコミなし", "口コミなし", "No reviews", "no reviews":
		return true
	}
	return false
}
