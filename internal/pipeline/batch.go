package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/gchange/internal/export"
	"github.com/sells-group/gchange/internal/fetcher"
)

// BatchResult holds one FileResult per input file, in input order.
type BatchResult struct {
	RunID     string       `json:"run_id"`
	Files     []FileResult `json:"files"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// RunBatch processes files concurrently, at most concurrency at a time.
// ZIP archives are expanded into their XLSX members first. A failing file
// is recorded in its FileResult and does not stop the others; only
// context cancellation aborts the batch.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, concurrency int) (*BatchResult, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	tmpDir, err := os.MkdirTemp("", "gchange-")
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create temp dir")
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck

	inputs, expandErrs := expandInputs(paths, tmpDir)
	if len(inputs) == 0 && len(expandErrs) == 0 {
		log.Info("pipeline: no input files")
		return &BatchResult{RunID: runID}, nil
	}

	if concurrency < 1 {
		concurrency = 1
	}
	log.Info("pipeline: processing batch",
		zap.Int("files", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]FileResult, len(inputs))
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "pipeline: batch cancelled")
			}
			res := p.ProcessFile(gctx, path)
			results[i] = res
			if res.Err != nil {
				failed.Add(1)
				log.Error("pipeline: file failed", zap.String("file", path), zap.Error(res.Err))
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: batch processing")
	}

	results = append(results, expandErrs...)
	assignOutputNames(results)
	out := &BatchResult{
		RunID:     runID,
		Files:     results,
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()) + len(expandErrs),
	}
	log.Info("pipeline: batch complete",
		zap.Int("succeeded", out.Succeeded),
		zap.Int("failed", out.Failed),
	)
	return out, nil
}

// expandInputs replaces ZIP archives with their XLSX members. Archives that
// cannot be read become failed FileResults.
func expandInputs(paths []string, tmpDir string) ([]string, []FileResult) {
	var (
		inputs []string
		failed []FileResult
	)
	for _, path := range paths {
		if !fetcher.IsZIP(path) {
			inputs = append(inputs, path)
			continue
		}
		dest, err := os.MkdirTemp(tmpDir, "zip-")
		if err != nil {
			failed = append(failed, FileResult{Path: path, Err: eris.Wrap(err, "pipeline: create zip dir")})
			continue
		}
		members, err := fetcher.ExtractZIP(path, dest, ".xlsx")
		if err != nil {
			failed = append(failed, FileResult{Path: path, Err: eris.Wrapf(err, "pipeline: expand %s", path)})
			continue
		}
		inputs = append(inputs, members...)
	}
	return inputs, failed
}

// assignOutputNames gives every successful file a distinct output name.
// Inputs sharing a base name, such as list.xlsx from two directories or
// two archives, get a numeric suffix in input order.
func assignOutputNames(results []FileResult) {
	used := make(map[string]struct{})
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		base := export.OutputName(results[i].Path)
		name := base
		for n := 2; ; n++ {
			if _, taken := used[strings.ToLower(name)]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, filepath.Ext(base)), n, filepath.Ext(base))
		}
		used[strings.ToLower(name)] = struct{}{}
		results[i].OutputName = name
	}
}
