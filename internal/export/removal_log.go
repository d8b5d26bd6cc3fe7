package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gchange/internal/model"
)

// removalColumns defines the ordered removal-log CSV columns.
var removalColumns = []string{
	"reason",
	"source_company",
	"source_phone",
	"match_key",
	"ng_hit",
}

// utf8BOM prefixes every removal log.
const utf8BOM = "\ufeff"

// WriteRemovalLog writes removals as CSV, prefixed with a UTF-8 BOM.
func WriteRemovalLog(w io.Writer, removals []model.Removal) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return eris.Wrap(err, "removal log: write bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(removalColumns); err != nil {
		return eris.Wrap(err, "removal log: write header")
	}
	for _, r := range removals {
		row := []string{string(r.Reason), r.SourceCompany, r.SourcePhone, r.MatchKey, r.MatchedAgainst}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "removal log: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "removal log: flush")
}

// ExportRemovalLog writes removals to a CSV file.
func ExportRemovalLog(removals []model.Removal, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "removal log: create file")
	}
	defer f.Close() //nolint:errcheck

	return WriteRemovalLog(f, removals)
}
