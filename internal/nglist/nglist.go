// Package nglist discovers and loads NG (do-not-contact) lists: workbooks
// or CSV files whose first column is a company name and whose second
// column is a phone number.
package nglist

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/fetcher"
	"github.com/sells-group/gchange/internal/model"
)

var (
	// ErrNotFound is returned when a named list does not exist.
	ErrNotFound = eris.New("nglist: list not found")
	// ErrTooFewColumns is returned when a list has no phone column.
	ErrTooFewColumns = eris.New("nglist: list needs a company and a phone column")
)

// minColumns is company plus phone.
const minColumns = 2

// List is one NG list file. Name is the file name without its extension.
type List struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Discover returns the NG lists in dir whose file name contains pattern,
// sorted by name. Spreadsheet lock files are ignored.
func Discover(dir, pattern string) ([]List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "nglist: read dir %s", dir)
	}

	var lists []List
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".xlsx" && ext != ".csv" {
			continue
		}
		if strings.HasPrefix(name, "~$") || !strings.Contains(name, pattern) {
			continue
		}
		lists = append(lists, List{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].Name < lists[j].Name })
	return lists, nil
}

// Find returns the list with the given name.
func Find(lists []List, name string) (List, error) {
	for _, l := range lists {
		if l.Name == name {
			return l, nil
		}
	}
	return List{}, eris.Wrapf(ErrNotFound, "nglist: %q", name)
}

// Load reads the exclusion entries of a list. The first row is a header
// and counts toward the column check. Rows with neither company nor phone
// are skipped.
func Load(ctx context.Context, l List) ([]model.Exclusion, error) {
	rows, err := readRows(ctx, l.Path)
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if len(rows) > 0 && width < minColumns {
		return nil, eris.Wrapf(ErrTooFewColumns, "nglist: %s has %d column(s)", l.Name, width)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	entries := make([]model.Exclusion, 0, len(rows)-1)
	for _, row := range rows[1:] {
		company, phoneText := cellAt(row, 0), cellAt(row, 1)
		if company == "" && phoneText == "" {
			continue
		}
		entries = append(entries, model.NewExclusion(company, phoneText))
	}

	zap.L().Debug("nglist: loaded",
		zap.String("list", l.Name),
		zap.Int("rows", len(rows)),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

func readRows(ctx context.Context, path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
		if err != nil {
			return nil, eris.Wrapf(err, "nglist: read %s", filepath.Base(path))
		}
		return rows, nil
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "nglist: open %s", filepath.Base(path))
		}
		defer f.Close() //nolint:errcheck

		rows, err := fetcher.ReadCSV(ctx, f, fetcher.CSVOptions{TrimSpace: true, LazyQuotes: true})
		if err != nil {
			return nil, eris.Wrapf(err, "nglist: read %s", filepath.Base(path))
		}
		return rows, nil
	default:
		return nil, eris.Errorf("nglist: unsupported file type %s", filepath.Ext(path))
	}
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
