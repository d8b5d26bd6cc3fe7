package segment

import (
	"github.com/sells-group/gchange/internal/industry"
	"github.com/sells-group/gchange/internal/textnorm"
)

// block is the slice of lines a phone line may draw its fields from: the
// lines after the previous phone line and before this one.
type block struct {
	raw     []string
	norm    []string
	lo      int
	phoneAt int
}

func (b block) inWindow(i int) bool {
	return i >= b.lo && i < b.phoneAt
}

// placement records where address and industry were found. Indexes are
// -1 when unset.
type placement struct {
	address    string
	addressAt  int
	industry   string
	industryAt int
}

func noPlacement() placement {
	return placement{addressAt: -1, industryAt: -1}
}

// AddressRule locates the address (and possibly the industry) of a block.
type AddressRule struct {
	Name  string
	Apply func(b block) (placement, bool)
}

// CompanyRule proposes company-line candidates in priority order. Each
// candidate is accepted only if it passes LooksLikeCompany and is not
// already used for the address or industry.
type CompanyRule struct {
	Name       string
	Candidates func(b block, p placement) []int
}

// DefaultAddressRules is the address precedence: the line just above the
// phone as a combined "industry · address" cell, then that line as a plain
// address, then the nearest address-like line further up.
var DefaultAddressRules = []AddressRule{
	{Name: "combined-prev", Apply: combinedPrev},
	{Name: "direct-prev", Apply: directPrev},
	{Name: "scan-up", Apply: scanUpAddress},
}

// DefaultCompanyRules is the company precedence: four lines above the
// phone (three when the line two above is a no-reviews marker), three
// lines above, the top of the block, then the nearest plausible line.
var DefaultCompanyRules = []CompanyRule{
	{Name: "offset", Candidates: offsetCompany},
	{Name: "offset-3", Candidates: func(b block, _ placement) []int { return []int{b.phoneAt - 3} }},
	{Name: "block-top", Candidates: blockTop},
	{Name: "scan-up", Candidates: scanUpCompany},
}

func combinedPrev(b block) (placement, bool) {
	k := b.phoneAt - 1
	if !b.inWindow(k) {
		return placement{}, false
	}
	return splitCombined(b.norm[k], k)
}

func directPrev(b block) (placement, bool) {
	k := b.phoneAt - 1
	if !b.inWindow(k) || !LooksLikeAddress(b.norm[k]) {
		return placement{}, false
	}
	p := noPlacement()
	p.address, p.addressAt = b.norm[k], k
	return p, true
}

func scanUpAddress(b block) (placement, bool) {
	for k := b.phoneAt - 1; k >= b.lo; k-- {
		n := b.norm[k]
		if isChrome(n) || isBusinessHours(n) || !LooksLikeAddress(n) {
			continue
		}
		if p, ok := splitCombined(n, k); ok {
			return p, true
		}
		p := noPlacement()
		p.address, p.addressAt = n, k
		return p, true
	}
	return placement{}, false
}

// splitCombined reads "industry · address" lines: the text right of the
// last middle dot must look like an address.
func splitCombined(n string, at int) (placement, bool) {
	left, right, ok := textnorm.SplitLastMidDot(n)
	if !ok || !LooksLikeAddress(right) {
		return placement{}, false
	}
	p := noPlacement()
	p.address, p.addressAt = right, at
	if ind := lastSegment(industry.StripReviewNoise(left)); ind != "" {
		p.industry, p.industryAt = ind, at
	}
	return p, true
}

func offsetCompany(b block, _ placement) []int {
	k := b.phoneAt - 4
	if two := b.phoneAt - 2; b.inWindow(two) && industry.IsNoReviewsMarker(b.norm[two]) {
		k = b.phoneAt - 3
	}
	return []int{k}
}

func blockTop(b block, _ placement) []int {
	for k := b.lo; k < b.phoneAt; k++ {
		if !isBoilerplate(b.norm[k]) {
			return []int{k}
		}
	}
	return nil
}

func scanUpCompany(b block, p placement) []int {
	var out []int
	for k := b.phoneAt - 1; k >= b.lo; k-- {
		if k == p.addressAt || k == p.industryAt || LooksLikeAddress(b.norm[k]) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// lastSegment returns the text right of the last middle dot, or s itself.
func lastSegment(s string) string {
	if _, right, ok := textnorm.SplitLastMidDot(s); ok {
		return right
	}
	return s
}
