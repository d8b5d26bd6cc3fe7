package industry

import (
	"strings"

	"github.com/sells-group/gchange/internal/textnorm"
)

// DefaultBlocklist is the industry keyword list removed in exclude mode.
var DefaultBlocklist = []string{
	"物流", "運送", "運輸", "倉庫", "配送", "宅配", "引越", "梱包", "陸運", "海運", "貨物",
}

// DefaultHighlight is the industry keyword list highlighted in highlight mode.
var DefaultHighlight = []string{
	"物流", "運送", "倉庫", "配送",
}

// Keywords matches industries by exact or partial keyword hits.
type Keywords struct {
	words []string
}

// NewKeywords normalizes and de-duplicates the keyword list. Empty entries
// are dropped so they never match everything.
func NewKeywords(words []string) Keywords {
	seen := make(map[string]struct{}, len(words))
	kw := Keywords{}
	for _, w := range words {
		n := textnorm.Normalize(w)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		kw.words = append(kw.words, n)
	}
	return kw
}

// Match returns the first keyword equal to or contained in industry.
func (k Keywords) Match(industry string) (string, bool) {
	n := textnorm.Normalize(industry)
	if n == "" {
		return "", false
	}
	for _, w := range k.words {
		if n == w || strings.Contains(n, w) {
			return w, true
		}
	}
	return "", false
}

// Len returns the number of usable keywords.
func (k Keywords) Len() int {
	return len(k.words)
}
