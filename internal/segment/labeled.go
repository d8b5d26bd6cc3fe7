package segment

import (
	"strings"

	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/phone"
	"github.com/sells-group/gchange/internal/textnorm"
)

type field int

const (
	fieldNone field = iota
	fieldCompany
	fieldIndustry
	fieldAddress
	fieldPhone
	fieldIgnored
)

// labelVocabulary maps normalized, lowercased labels to output fields.
var labelVocabulary = map[string]field{
	"住所": fieldAddress, "所在地": fieldAddress, "本社所在地": fieldAddress, "本社住所": fieldAddress, "本店所在地": fieldAddress,
	"電話": fieldPhone, "電話番号": fieldPhone, "tel": fieldPhone, "代表電話": fieldPhone, "代表電話番号": fieldPhone,
	"業種": fieldIndustry, "事業内容": fieldIndustry, "産業分類": fieldIndustry, "製造業種": fieldIndustry, "業態": fieldIndustry,
	"会社名": fieldCompany, "企業名": fieldCompany, "社名": fieldCompany, "商号": fieldCompany, "法人名": fieldCompany,

	"fax": fieldIgnored, "ファックス": fieldIgnored, "資本金": fieldIgnored, "従業員数": fieldIgnored, "従業員": fieldIgnored,
	"設立": fieldIgnored, "設立年月": fieldIgnored, "設立年月日": fieldIgnored, "創業": fieldIgnored,
	"代表者": fieldIgnored, "代表者名": fieldIgnored, "代表": fieldIgnored, "url": fieldIgnored, "hp": fieldIgnored,
	"ホームページ": fieldIgnored, "e-mail": fieldIgnored, "email": fieldIgnored, "メール": fieldIgnored,
	"売上高": fieldIgnored, "年商": fieldIgnored, "営業時間": fieldIgnored, "定休日": fieldIgnored,
	"取引銀行": fieldIgnored, "主要取引先": fieldIgnored, "事業所": fieldIgnored, "許可番号": fieldIgnored,
}

// lookupLabel returns the field a left-hand cell names.
func lookupLabel(s string) field {
	return labelVocabulary[lowerKey(s)]
}

// lowerKey normalizes a header or label cell for vocabulary lookup.
func lowerKey(s string) string {
	key := strings.ToLower(textnorm.Normalize(s))
	return strings.TrimSpace(strings.TrimRight(key, ": "))
}

// splitLabelCell splits a single "住所：東京都…" cell into label and value
// when the part before the first colon is a known label.
func splitLabelCell(s string) (string, string, bool) {
	n := textnorm.Normalize(s)
	idx := strings.IndexByte(n, ':')
	if idx <= 0 {
		return "", "", false
	}
	label := n[:idx]
	if lookupLabel(label) == fieldNone {
		return "", "", false
	}
	return label, strings.TrimSpace(n[idx+1:]), true
}

// Labeled segments two-column "label | value" stacks. A left cell with an
// empty right cell that is not a label starts a new company.
type Labeled struct{}

// Segment implements Segmenter.
func (Labeled) Segment(grid [][]string) ([]model.Record, error) {
	grid = trimLeadingColumns(grid)
	state := labeledState{}
	for r := range grid {
		state = state.step(cell(grid, r, 0), cell(grid, r, 1))
	}
	return state.flush().out, nil
}

// labeledState is the accumulator folded over rows. out collects completed
// records.
type labeledState struct {
	open bool

	company, industry, address, phone string

	out []model.Record
}

func (s labeledState) step(left, right string) labeledState {
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" {
		return s
	}
	if right == "" {
		if label, value, ok := splitLabelCell(left); ok {
			left, right = label, value
		}
	}

	f := lookupLabel(left)
	switch {
	case f == fieldCompany:
		if right == "" {
			return s
		}
		return s.flush().start(right)
	case f == fieldIgnored:
		return s
	case f != fieldNone:
		return s.set(f, right)
	case right == "":
		return s.flush().start(left)
	default:
		// Unknown label with a value.
		return s
	}
}

func (s labeledState) start(company string) labeledState {
	return labeledState{open: true, company: company, out: s.out}
}

// set fills a field of the open record; the first value wins.
func (s labeledState) set(f field, value string) labeledState {
	if !s.open || value == "" {
		return s
	}
	switch f {
	case fieldAddress:
		if s.address == "" {
			s.address = value
		}
	case fieldIndustry:
		if s.industry == "" {
			s.industry = value
		}
	case fieldPhone:
		if s.phone == "" {
			if token := phone.ExtractToken(value); token != "" {
				value = token
			}
			s.phone = value
		}
	}
	return s
}

// flush emits the open record when it has a company and closes it.
func (s labeledState) flush() labeledState {
	if s.open && textnorm.Normalize(s.company) != "" {
		s.out = append(s.out, finish(s.company, s.industry, s.address, s.phone))
	}
	return labeledState{out: s.out}
}
