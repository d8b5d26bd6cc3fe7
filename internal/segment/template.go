package segment

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/textnorm"
)

// TemplateSheet is the sheet name of the fixed input template.
const TemplateSheet = "入力マスター"

// ErrMissingColumns is returned when a template grid lacks a required column.
var ErrMissingColumns = eris.New("segment: template header is missing required columns")

// headerScanRows bounds how far down the header row may sit.
const headerScanRows = 5

var templateAliases = map[string]field{
	"企業様名称": fieldCompany, "企業名": fieldCompany, "会社名": fieldCompany,
	"業種": fieldIndustry,
	"住所": fieldAddress, "所在地": fieldAddress,
	"電話番号": fieldPhone, "電話": fieldPhone, "tel": fieldPhone,
}

// Template reads the fixed-header input sheet by direct column selection.
type Template struct{}

// Segment implements Segmenter. Company, industry and address are
// normalized, the address keeps only the text after its last middle dot
// and the phone is left untouched.
func (Template) Segment(grid [][]string) ([]model.Record, error) {
	at, cols, ok := findTemplateHeader(grid)
	if !ok {
		return nil, eris.Wrap(ErrMissingColumns, "segment: no 企業様名称 header")
	}
	for _, f := range []field{fieldCompany, fieldIndustry, fieldAddress, fieldPhone} {
		if _, ok := cols[f]; !ok {
			return nil, eris.Wrapf(ErrMissingColumns, "segment: header row %d", at+1)
		}
	}

	var out []model.Record
	for r := at + 1; r < len(grid); r++ {
		address := textnorm.Normalize(cell(grid, r, cols[fieldAddress]))
		if _, right, ok := textnorm.SplitLastMidDot(address); ok {
			address = right
		}
		rec := finish(
			cell(grid, r, cols[fieldCompany]),
			cell(grid, r, cols[fieldIndustry]),
			address,
			cell(grid, r, cols[fieldPhone]),
		)
		if rec.IsEmpty() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// findTemplateHeader locates the header row among the first rows and maps
// each recognized column to its field.
func findTemplateHeader(grid [][]string) (int, map[field]int, bool) {
	for r := 0; r < len(grid) && r < headerScanRows; r++ {
		cols := map[field]int{}
		found := false
		for c, v := range grid[r] {
			f, ok := templateAliases[lowerKey(v)]
			if !ok {
				continue
			}
			if _, dup := cols[f]; !dup {
				cols[f] = c
			}
			if textnorm.Normalize(v) == "企業様名称" {
				found = true
			}
		}
		if found {
			return r, cols, true
		}
	}
	return -1, nil, false
}

func hasTemplateHeader(grid [][]string) bool {
	_, _, ok := findTemplateHeader(grid)
	return ok
}
