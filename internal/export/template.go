// Package export writes formatted records into the output workbook and
// the removal log into CSV.
package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/gchange/internal/model"
)

// ErrTemplateNotFound is returned when the configured template is missing.
var ErrTemplateNotFound = eris.New("export: template not found")

const (
	// DefaultSheet is the sheet records are written to.
	DefaultSheet = "入力マスター"
	// DefaultStartRow is the first data row.
	DefaultStartRow = 2
	// DefaultOutputName is the output file name for a single upload.
	DefaultOutputName = "整形済み_企業リスト.xlsx"

	highlightColor = "FFFF00"
)

// Output columns, 1-based: company B, industry C, address D, phone E.
const (
	colCompany  = 2
	colIndustry = 3
	colAddress  = 4
	colPhone    = 5
)

var headerRow = []string{"企業様名称", "業種", "住所", "電話番号"}

// TemplateOptions locates the output template. An empty Path builds a
// fresh workbook with a header row.
type TemplateOptions struct {
	Path     string
	Sheet    string
	StartRow int
}

func (o TemplateOptions) withDefaults() TemplateOptions {
	if o.Sheet == "" {
		o.Sheet = DefaultSheet
	}
	if o.StartRow < 1 {
		o.StartRow = DefaultStartRow
	}
	return o
}

// BuildWorkbook writes records into the template sheet and returns the
// workbook. Highlighted records get a yellow fill on the industry cell.
// The caller closes the returned file.
func BuildWorkbook(records []model.Record, opts TemplateOptions) (*excelize.File, error) {
	opts = opts.withDefaults()

	f, err := openTemplate(opts)
	if err != nil {
		return nil, err
	}

	if err := clearDataRows(f, opts); err != nil {
		f.Close() //nolint:errcheck
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{highlightColor}},
	})
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "export: create highlight style")
	}

	for i, r := range records {
		row := opts.StartRow + i
		values := []string{r.Company, r.Industry, r.Address, r.Phone}
		for j, v := range values {
			if err := setString(f, opts.Sheet, colCompany+j, row, v); err != nil {
				f.Close() //nolint:errcheck
				return nil, err
			}
		}
		if !r.Highlight {
			continue
		}
		cellName, _ := excelize.CoordinatesToCellName(colIndustry, row)
		if err := f.SetCellStyle(opts.Sheet, cellName, cellName, style); err != nil {
			f.Close() //nolint:errcheck
			return nil, eris.Wrap(err, "export: highlight industry")
		}
	}
	return f, nil
}

// WriteTemplate builds the workbook and writes it to w.
func WriteTemplate(w io.Writer, records []model.Record, opts TemplateOptions) error {
	f, err := BuildWorkbook(records, opts)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.WriteTo(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

// SaveTemplate builds the workbook and saves it to outputPath.
func SaveTemplate(records []model.Record, opts TemplateOptions, outputPath string) error {
	f, err := BuildWorkbook(records, opts)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if err := f.SaveAs(outputPath); err != nil {
		return eris.Wrapf(err, "export: save %s", outputPath)
	}
	return nil
}

// OutputName derives the output file name for an input file. An empty
// input yields DefaultOutputName.
func OutputName(inputPath string) string {
	if inputPath == "" {
		return DefaultOutputName
	}
	base := filepath.Base(inputPath)
	return "整形済み_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
}

func openTemplate(opts TemplateOptions) (*excelize.File, error) {
	if opts.Path == "" {
		return freshWorkbook(opts)
	}

	if _, err := os.Stat(opts.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrTemplateNotFound, "export: %s", opts.Path)
		}
		return nil, eris.Wrap(err, "export: stat template")
	}

	f, err := excelize.OpenFile(opts.Path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open template")
	}
	if idx, err := f.GetSheetIndex(opts.Sheet); err != nil || idx < 0 {
		f.Close() //nolint:errcheck
		return nil, eris.Errorf("export: template has no sheet %q", opts.Sheet)
	}
	return f, nil
}

func freshWorkbook(opts TemplateOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), opts.Sheet); err != nil {
		f.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "export: name sheet")
	}
	if opts.StartRow > 1 {
		for j, v := range headerRow {
			if err := setString(f, opts.Sheet, colCompany+j, opts.StartRow-1, v); err != nil {
				f.Close() //nolint:errcheck
				return nil, err
			}
		}
	}
	return f, nil
}

// clearDataRows blanks the output columns of any rows a template already
// carries below the header.
func clearDataRows(f *excelize.File, opts TemplateOptions) error {
	rows, err := f.GetRows(opts.Sheet)
	if err != nil {
		return eris.Wrap(err, "export: read template rows")
	}
	for row := opts.StartRow; row <= len(rows); row++ {
		for col := colCompany; col <= colPhone; col++ {
			cellName, _ := excelize.CoordinatesToCellName(col, row)
			if err := f.SetCellValue(opts.Sheet, cellName, nil); err != nil {
				return eris.Wrap(err, "export: clear template row")
			}
		}
	}
	return nil
}

func setString(f *excelize.File, sheet string, col, row int, v string) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return eris.Wrap(err, "export: cell name")
	}
	// Always a string cell so phone text is never read as a number.
	if err := f.SetCellStr(sheet, cellName, v); err != nil {
		return eris.Wrapf(err, "export: write %s", cellName)
	}
	return nil
}
