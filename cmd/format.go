package main

import (
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/config"
	"github.com/sells-group/gchange/internal/pipeline"
)

var (
	formatLayout       string
	formatNG           string
	formatIndustryMode string
	formatTemplate     string
	formatOutDir       string
	formatRules        string
	formatDryRun       bool
)

var formatCmd = &cobra.Command{
	Use:   "format FILE...",
	Short: "Reformat XLSX exports (or ZIP archives of them) into the master template",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c := applyFormatFlags(cmd, *cfg)
		if err := c.Validate("format"); err != nil {
			return err
		}

		p, err := initPipeline(ctx, &c, formatNG)
		if err != nil {
			return err
		}

		res, err := p.RunBatch(ctx, args, c.Batch.MaxConcurrentFiles)
		if err != nil {
			return err
		}

		if !formatDryRun {
			saveOutputs(p, res, c.Output.Dir)
		}

		printBatchSummary(cmd.OutOrStdout(), res)
		if res.Failed > 0 {
			return eris.Errorf("format: %d of %d file(s) failed", res.Failed, len(res.Files))
		}
		return nil
	},
}

func init() {
	f := formatCmd.Flags()
	f.StringVar(&formatLayout, "layout", "", "input layout: auto, template, phone-block, labeled, association")
	f.StringVar(&formatNG, "ng", "", "NG list name to exclude against")
	f.StringVar(&formatIndustryMode, "industry-mode", "", "industry filter: none, exclude, highlight")
	f.StringVar(&formatTemplate, "template", "", "template workbook to fill")
	f.StringVar(&formatOutDir, "out-dir", "", "output directory (default from config)")
	f.StringVar(&formatRules, "rules", "", "industry keyword rules YAML")
	f.BoolVar(&formatDryRun, "dry-run", false, "process and report without writing files")
	rootCmd.AddCommand(formatCmd)
}

// applyFormatFlags returns a copy of c with the explicitly set flags applied.
func applyFormatFlags(cmd *cobra.Command, c config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("layout") {
		c.Input.Layout = formatLayout
	}
	if flags.Changed("industry-mode") {
		c.Filter.IndustryMode = formatIndustryMode
	}
	if flags.Changed("template") {
		c.Output.TemplatePath = formatTemplate
	}
	if flags.Changed("out-dir") {
		c.Output.Dir = formatOutDir
	}
	if flags.Changed("rules") {
		c.Rules.Path = formatRules
	}
	return c
}

// saveOutputs writes the outputs of every successful file. A file whose
// outputs cannot be written is marked failed.
func saveOutputs(p *pipeline.Pipeline, res *pipeline.BatchResult, outDir string) {
	for i := range res.Files {
		f := &res.Files[i]
		if f.Err != nil {
			continue
		}
		if _, err := p.Save(*f, outDir); err != nil {
			zap.L().Error("save failed", zap.String("file", f.Path), zap.Error(err))
			f.Err = err
			res.Succeeded--
			res.Failed++
		}
	}
}

func printBatchSummary(w io.Writer, res *pipeline.BatchResult) {
	for _, f := range res.Files {
		name := filepath.Base(f.Path)
		if f.Err != nil {
			fmt.Fprintf(w, "NG  %s: %v\n", name, f.Err)
			continue
		}
		fmt.Fprintf(w, "OK  %s: %d kept, %d removed (industry %d)\n",
			name, len(f.Records), len(f.Removals), f.IndustryRemoved)
	}
	fmt.Fprintf(w, "run %s: %d succeeded, %d failed\n", res.RunID, res.Succeeded, res.Failed)
}
