package segment

import (
	"strings"

	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/phone"
	"github.com/sells-group/gchange/internal/textnorm"
)

// Association segments four-column association directories laid out as
// name | address | TEL | industry. Branch and facility rows are folded into
// the company above them.
type Association struct{}

// Segment implements Segmenter. Rows above the first company are ignored.
func (Association) Segment(grid [][]string) ([]model.Record, error) {
	grid = trimLeadingColumns(grid)

	var (
		out []model.Record
		cur *assocRecord
	)
	for r, row := range grid {
		name := textnorm.Normalize(cell(grid, r, 0))
		if name != "" && hasLegalMarker(name) && !hasFacilityWord(name) {
			if cur != nil {
				out = append(out, cur.flush())
			}
			cur = &assocRecord{company: name}
		}
		if cur == nil {
			continue
		}
		cur.addAddress(cell(grid, r, 1))
		cur.addPhone(cell(grid, r, 2), row)
		cur.addIndustry(cell(grid, r, 3))
	}
	if cur != nil {
		out = append(out, cur.flush())
	}
	return out, nil
}

type assocRecord struct {
	company    string
	fragments  []string
	phone      string
	industries []string
}

// addAddress records a fragment that names a place or carries a postal mark.
func (a *assocRecord) addAddress(s string) {
	n := textnorm.Normalize(s)
	if n == "" || !(strings.Contains(n, "〒") || hasLocationWord(n)) {
		return
	}
	a.fragments = append(a.fragments, n)
}

// addPhone keeps the first TEL cell. When the TEL column is empty any cell
// in the row starting with "TEL" is accepted.
func (a *assocRecord) addPhone(s string, row []string) {
	if a.phone != "" {
		return
	}
	if token := phone.ExtractToken(s); token != "" {
		a.phone = token
		return
	}
	for _, c := range row {
		if !isTelCell(c) {
			continue
		}
		if token := phone.ExtractToken(c); token != "" {
			a.phone = token
			return
		}
	}
}

func (a *assocRecord) addIndustry(s string) {
	n := textnorm.Normalize(s)
	if n == "" {
		return
	}
	for _, part := range textnorm.SplitMidDots(n) {
		if part == "" || containsString(a.industries, part) {
			continue
		}
		a.industries = append(a.industries, part)
	}
}

func (a *assocRecord) flush() model.Record {
	return finish(a.company, strings.Join(a.industries, "·"), mergeAddress(a.fragments), a.phone)
}

// mergeAddress joins address fragments. The first fragment holding a
// postal mark anchors the result; the rest are appended with a space
// unless already contained.
func mergeAddress(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	anchor := 0
	for i, f := range fragments {
		if strings.Contains(f, "〒") {
			anchor = i
			break
		}
	}
	merged := fragments[anchor]
	for i, f := range fragments {
		if i == anchor || strings.Contains(merged, f) {
			continue
		}
		merged += " " + f
	}
	return merged
}

func isTelCell(s string) bool {
	n := strings.ToUpper(textnorm.Normalize(s))
	return strings.HasPrefix(n, "TEL")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
