// Package filter applies industry exclusion, NG-list matching, phone
// deduplication and the final ordering to segmented records.
package filter

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gchange/internal/industry"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/resolve"
)

// IndustryMode selects how the industry keyword lists are applied.
type IndustryMode string

const (
	// IndustryModeNone performs no industry filtering.
	IndustryModeNone IndustryMode = "none"
	// IndustryModeExclude drops records whose industry hits the blocklist.
	IndustryModeExclude IndustryMode = "exclude"
	// IndustryModeHighlight marks records whose industry hits the highlight
	// list and removes nothing.
	IndustryModeHighlight IndustryMode = "highlight"
)

// ParseIndustryMode maps a flag or config value to an IndustryMode.
func ParseIndustryMode(s string) (IndustryMode, error) {
	switch m := IndustryMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return IndustryModeNone, nil
	case IndustryModeNone, IndustryModeExclude, IndustryModeHighlight:
		return m, nil
	default:
		return IndustryModeNone, eris.Errorf("filter: unknown industry mode %q (want none, exclude or highlight)", s)
	}
}

// Options configures one filtering pass. The zero value filters nothing
// but still deduplicates, drops empty records and sorts.
type Options struct {
	IndustryMode IndustryMode
	Blocklist    industry.Keywords
	Highlight    industry.Keywords
	Exclusions   []model.Exclusion
	Matcher      resolve.Matcher
}

// DefaultOptions returns options using the built-in keyword lists and
// the default company matcher.
func DefaultOptions() Options {
	return Options{
		IndustryMode: IndustryModeNone,
		Blocklist:    industry.NewKeywords(industry.DefaultBlocklist),
		Highlight:    industry.NewKeywords(industry.DefaultHighlight),
		Matcher:      resolve.NewMatcher(resolve.DefaultMinContainLen),
	}
}

// Result is the output of Apply.
type Result struct {
	Records         []model.Record  `json:"records"`
	Removals        []model.Removal `json:"removals"`
	IndustryRemoved int             `json:"industry_removed"`
}

// Apply filters records. The steps run in a fixed order: industry
// keywords, NG company then NG phone, phone duplicates, empty records,
// then the sort. Every dropped record gets one removal entry. The input
// slice is not modified.
func Apply(records []model.Record, opts Options) Result {
	res := Result{}
	kept := make([]model.Record, 0, len(records))

	for _, r := range records {
		switch opts.IndustryMode {
		case IndustryModeExclude:
			if kw, ok := opts.Blocklist.Match(r.Industry); ok {
				res.Removals = append(res.Removals, model.NewRemoval(model.ReasonNGIndustry, r, r.Industry, kw))
				res.IndustryRemoved++
				continue
			}
		case IndustryModeHighlight:
			if _, ok := opts.Highlight.Match(r.Industry); ok {
				r.Highlight = true
			}
		}
		kept = append(kept, r)
	}

	if len(opts.Exclusions) > 0 {
		kept = res.dropExcluded(kept, opts)
	}
	kept = res.dropDuplicates(kept)
	kept = res.dropEmpty(kept)

	sortRecords(kept)
	res.Records = kept
	return res
}

// dropExcluded removes NG-company matches first, then NG-phone matches
// among the survivors.
func (res *Result) dropExcluded(records []model.Record, opts Options) []model.Record {
	var companyKeys []string
	phoneKeys := make(map[string]struct{})
	for _, e := range opts.Exclusions {
		if e.CompanyKey != "" {
			companyKeys = append(companyKeys, e.CompanyKey)
		}
		if e.PhoneDigits != "" {
			phoneKeys[e.PhoneDigits] = struct{}{}
		}
	}

	afterCompany := records[:0:0]
	for _, r := range records {
		if hit, ok := opts.Matcher.MatchAny(r.CompanyKey, companyKeys); ok {
			res.Removals = append(res.Removals, model.NewRemoval(model.ReasonNGCompany, r, r.CompanyKey, hit))
			continue
		}
		afterCompany = append(afterCompany, r)
	}

	out := afterCompany[:0:0]
	for _, r := range afterCompany {
		if _, ok := phoneKeys[r.PhoneDigits]; ok && r.PhoneDigits != "" {
			res.Removals = append(res.Removals, model.NewRemoval(model.ReasonNGPhone, r, r.PhoneDigits, r.PhoneDigits))
			continue
		}
		out = append(out, r)
	}
	return out
}

// dropDuplicates keeps the first record per non-empty phone key.
func (res *Result) dropDuplicates(records []model.Record) []model.Record {
	first := make(map[string]model.Record)
	out := records[:0:0]
	for _, r := range records {
		if r.PhoneDigits == "" {
			out = append(out, r)
			continue
		}
		if kept, ok := first[r.PhoneDigits]; ok {
			res.Removals = append(res.Removals, model.NewRemoval(model.ReasonPhoneDuplicate, r, r.PhoneDigits, kept.Company))
			continue
		}
		first[r.PhoneDigits] = r
		out = append(out, r)
	}
	return out
}

func (res *Result) dropEmpty(records []model.Record) []model.Record {
	out := records[:0:0]
	for _, r := range records {
		if r.IsEmpty() {
			res.Removals = append(res.Removals, model.NewRemoval(model.ReasonEmptyRecord, r, "", ""))
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortRecords orders records with a phone key first, by phone key then
// company.
func sortRecords(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if (a.PhoneDigits == "") != (b.PhoneDigits == "") {
			return a.PhoneDigits != ""
		}
		if a.PhoneDigits != b.PhoneDigits {
			return a.PhoneDigits < b.PhoneDigits
		}
		return a.Company < b.Company
	})
}
