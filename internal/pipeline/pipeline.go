// Package pipeline runs input workbooks through segmentation, filtering
// and export.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/config"
	"github.com/sells-group/gchange/internal/export"
	"github.com/sells-group/gchange/internal/fetcher"
	"github.com/sells-group/gchange/internal/filter"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/resolve"
	"github.com/sells-group/gchange/internal/segment"
)

// Pipeline holds the per-run settings shared by every file. It is safe for
// concurrent use; nothing in it is mutated after New.
type Pipeline struct {
	layout   segment.Layout
	filter   filter.Options
	template export.TemplateOptions
}

// New builds a Pipeline from configuration, keyword rules and the loaded
// NG list entries (nil when no list is selected).
func New(cfg *config.Config, rules *config.Rules, exclusions []model.Exclusion) (*Pipeline, error) {
	layout, err := segment.ParseLayout(cfg.Input.Layout)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: input.layout")
	}
	mode, err := filter.ParseIndustryMode(cfg.Filter.IndustryMode)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: filter.industry_mode")
	}
	if rules == nil {
		rules = config.DefaultRules()
	}

	blocklist, highlight := rules.BlocklistKeywords(), rules.HighlightKeywords()
	zap.L().Debug("pipeline: configured",
		zap.String("layout", layout.String()),
		zap.String("industry_mode", string(mode)),
		zap.Int("blocklist_keywords", blocklist.Len()),
		zap.Int("highlight_keywords", highlight.Len()),
		zap.Int("exclusions", len(exclusions)),
	)

	return &Pipeline{
		layout: layout,
		filter: filter.Options{
			IndustryMode: mode,
			Blocklist:    blocklist,
			Highlight:    highlight,
			Exclusions:   exclusions,
			Matcher:      resolve.NewMatcher(cfg.Filter.MinContainLen),
		},
		template: export.TemplateOptions{
			Path:     cfg.Output.TemplatePath,
			Sheet:    cfg.Output.TemplateSheet,
			StartRow: cfg.Output.StartRow,
		},
	}, nil
}

// Template returns the output template settings.
func (p *Pipeline) Template() export.TemplateOptions {
	return p.template
}

// SheetResult describes how one sheet was segmented.
type SheetResult struct {
	Name    string         `json:"name"`
	Layout  segment.Layout `json:"-"`
	Records int            `json:"records"`
}

// FileResult is the outcome of one input file. Err is set for malformed
// input; it never aborts other files of a batch.
type FileResult struct {
	Path            string          `json:"path"`
	Sheets          []SheetResult   `json:"sheets"`
	Records         []model.Record  `json:"records"`
	Removals        []model.Removal `json:"removals"`
	IndustryRemoved int             `json:"industry_removed"`

	// OutputName is the workbook file name Save writes. RunBatch keeps it
	// unique within a batch; when empty it is derived from Path.
	OutputName string `json:"output_name,omitempty"`
	Err        error  `json:"-"`
}

// ProcessFile reads and processes one XLSX file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) FileResult {
	wb, err := fetcher.ReadWorkbook(path)
	if err != nil {
		return FileResult{Path: path, Err: eris.Wrapf(err, "pipeline: read %s", path)}
	}
	return p.ProcessWorkbook(ctx, wb)
}

// ProcessWorkbook segments a workbook and filters its records once. A
// template sheet, when present, is the only sheet read; otherwise every
// non-empty sheet is segmented with the configured layout and the records
// are concatenated in sheet order.
func (p *Pipeline) ProcessWorkbook(ctx context.Context, wb fetcher.Workbook) FileResult {
	res := FileResult{Path: wb.Path}
	log := zap.L().With(zap.String("file", wb.Path))
	log.Debug("pipeline: workbook opened", zap.Strings("sheets", wb.SheetNames()))

	sheets := wb.Sheets
	layout := p.layout
	if master, err := wb.Sheet(segment.TemplateSheet); err == nil {
		sheets = []fetcher.Sheet{master}
		layout = segment.LayoutTemplate
	}

	var records []model.Record
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			res.Err = eris.Wrap(err, "pipeline: cancelled")
			return res
		}
		if sheet.Empty() {
			continue
		}

		got, used, err := segment.Run(sheet.Rows, layout)
		if err != nil {
			res.Err = eris.Wrapf(err, "pipeline: sheet %q", sheet.Name)
			return res
		}
		log.Debug("pipeline: sheet segmented",
			zap.String("sheet", sheet.Name),
			zap.String("layout", used.String()),
			zap.Int("records", len(got)),
		)
		res.Sheets = append(res.Sheets, SheetResult{Name: sheet.Name, Layout: used, Records: len(got)})
		records = append(records, got...)
	}

	p.applyFilter(&res, records, log)
	return res
}

// Refilter re-runs the filter over records edited by a user. Display
// fields are taken verbatim and the derived keys recomputed.
func (p *Pipeline) Refilter(records []model.Record) FileResult {
	edited := make([]model.Record, len(records))
	for i, r := range records {
		edited[i] = r.Edit(r.Company, r.Industry, r.Address, r.Phone)
	}
	res := FileResult{}
	p.applyFilter(&res, edited, zap.L())
	return res
}

func (p *Pipeline) applyFilter(res *FileResult, records []model.Record, log *zap.Logger) {
	out := filter.Apply(records, p.filter)
	res.Records = out.Records
	res.Removals = out.Removals
	res.IndustryRemoved = out.IndustryRemoved

	for _, r := range out.Removals {
		log.Debug("pipeline: record removed",
			zap.String("reason", string(r.Reason)),
			zap.String("company", r.SourceCompany),
			zap.String("phone", r.SourcePhone),
			zap.String("match_key", r.MatchKey),
			zap.String("ng_hit", r.MatchedAgainst),
		)
	}
	log.Info("pipeline: file processed",
		zap.Int("segmented", len(records)),
		zap.Int("kept", len(out.Records)),
		zap.Int("removed", len(out.Removals)),
		zap.Int("industry_removed", out.IndustryRemoved),
	)
}
