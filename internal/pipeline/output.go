package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/export"
)

// Outputs are the files written for one input.
type Outputs struct {
	Workbook   string `json:"workbook"`
	RemovalLog string `json:"removal_log,omitempty"`
}

// Save writes the formatted workbook and, when anything was removed, the
// removal log next to it in outDir.
func (p *Pipeline) Save(res FileResult, outDir string) (Outputs, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Outputs{}, eris.Wrap(err, "pipeline: create output dir")
	}

	name := res.OutputName
	if name == "" {
		name = export.OutputName(res.Path)
	}
	out := Outputs{Workbook: filepath.Join(outDir, name)}
	if err := export.SaveTemplate(res.Records, p.template, out.Workbook); err != nil {
		return Outputs{}, err
	}

	if len(res.Removals) > 0 {
		out.RemovalLog = filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+"_除外ログ.csv")
		if err := export.ExportRemovalLog(res.Removals, out.RemovalLog); err != nil {
			return Outputs{}, err
		}
	}

	zap.L().Info("pipeline: outputs written",
		zap.String("workbook", out.Workbook),
		zap.String("removal_log", out.RemovalLog),
	)
	return out, nil
}
