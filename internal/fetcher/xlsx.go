package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ErrSheetNotFound is returned when a requested sheet does not exist.
var ErrSheetNotFound = eris.New("xlsx: sheet not found")

// Sheet is one worksheet read as a row-major grid of cell text.
type Sheet struct {
	Name string
	Rows [][]string
}

// Empty reports whether every cell of the sheet is blank.
func (s Sheet) Empty() bool {
	for _, row := range s.Rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				return false
			}
		}
	}
	return true
}

// Workbook is every sheet of an input file, in workbook order.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// Sheet returns the named sheet.
func (w Workbook) Sheet(name string) (Sheet, error) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return Sheet{}, eris.Wrapf(ErrSheetNotFound, "xlsx: %q in %s", name, w.Path)
}

// SheetNames lists the sheet names in workbook order.
func (w Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// ReadWorkbook reads every sheet of an XLSX file.
func ReadWorkbook(path string) (Workbook, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Workbook{}, eris.Wrap(err, "xlsx: open file")
	}
	return toWorkbook(path, f), nil
}

// ParseWorkbook reads an XLSX file held in memory, such as an upload.
func ParseWorkbook(name string, data []byte) (Workbook, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return Workbook{}, eris.Wrap(err, "xlsx: open upload")
	}
	return toWorkbook(name, f), nil
}

func toWorkbook(path string, f *xlsx.File) Workbook {
	wb := Workbook{Path: path, Sheets: make([]Sheet, 0, len(f.Sheets))}
	for _, sheet := range f.Sheets {
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet.Name, Rows: sheetRows(sheet)})
	}
	return wb
}

// XLSXOptions configures ReadXLSX.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // number of header rows to skip
}

// ReadXLSX reads one sheet of an XLSX file and returns its rows as string
// slices.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := sheetRows(sheet)
	if opts.SkipRows >= len(rows) {
		return nil, nil
	}
	return rows[opts.SkipRows:], nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Wrapf(ErrSheetNotFound, "xlsx: sheet %q", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Wrapf(ErrSheetNotFound, "xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func sheetRows(sheet *xlsx.Sheet) [][]string {
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}
	return rows
}

func rowToStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		cells[j] = cell.String()
	}
	return cells
}
