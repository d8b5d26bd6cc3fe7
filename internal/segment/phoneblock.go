package segment

import (
	"strings"

	"github.com/sells-group/gchange/internal/industry"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/phone"
	"github.com/sells-group/gchange/internal/textnorm"
)

// PhoneBlock segments vertical map-search exports. Every line holding a
// phone number closes one record; the lines above it, back to the previous
// phone line, supply the company, industry and address.
type PhoneBlock struct {
	AddressRules []AddressRule
	CompanyRules []CompanyRule
}

// NewPhoneBlock returns a PhoneBlock using the default rule order.
func NewPhoneBlock() PhoneBlock {
	return PhoneBlock{
		AddressRules: DefaultAddressRules,
		CompanyRules: DefaultCompanyRules,
	}
}

// Segment implements Segmenter. Records with neither company nor address
// are skipped.
func (s PhoneBlock) Segment(grid [][]string) ([]model.Record, error) {
	raw := flattenLines(grid)
	norm := textnorm.NormalizeAll(raw)

	var records []model.Record
	lo := 0
	for i, line := range raw {
		token := phone.ExtractToken(line)
		if token == "" || isFaxOnly(norm[i]) {
			continue
		}
		b := block{raw: raw, norm: norm, lo: lo, phoneAt: i}
		lo = i + 1

		rec := s.extract(b, token)
		if rec.Company == "" && rec.Address == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s PhoneBlock) extract(b block, token string) model.Record {
	p := noPlacement()
	for _, rule := range s.AddressRules {
		if got, ok := rule.Apply(b); ok {
			p = got
			break
		}
	}

	companyAt := s.locateCompany(b, p)
	company := ""
	if companyAt >= 0 {
		company = b.norm[companyAt]
	}

	ind := p.industry
	if ind == "" {
		ind = industryBetween(b, companyAt, p)
	}
	return finish(company, ind, p.address, token)
}

// locateCompany walks the company rules in order and returns the first
// accepted candidate, or -1.
func (s PhoneBlock) locateCompany(b block, p placement) int {
	for _, rule := range s.CompanyRules {
		for _, k := range rule.Candidates(b, p) {
			if !b.inWindow(k) || k == p.addressAt || k == p.industryAt {
				continue
			}
			if LooksLikeCompany(b.raw[k]) {
				return k
			}
		}
	}
	return -1
}

// industryBetween returns the first usable line between the company line
// and the address line (or the phone line when no address was found).
func industryBetween(b block, companyAt int, p placement) string {
	start := b.lo
	if companyAt >= 0 {
		start = companyAt + 1
	}
	end := b.phoneAt
	if p.addressAt >= 0 {
		end = p.addressAt
	}
	for k := start; k < end; k++ {
		n := b.norm[k]
		if k == companyAt || isChrome(n) || isBusinessHours(n) || isReviewSnippet(n) {
			continue
		}
		cleaned := industry.StripReviewNoise(n)
		if cleaned == "" || LooksLikeAddress(cleaned) {
			continue
		}
		return lastSegment(cleaned)
	}
	return ""
}

// isFaxOnly reports a FAX line, which must not anchor a record.
func isFaxOnly(n string) bool {
	u := strings.ToUpper(n)
	return strings.Contains(u, "FAX") && !strings.Contains(u, "TEL")
}
