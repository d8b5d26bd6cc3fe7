package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/config"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/nglist"
	"github.com/sells-group/gchange/internal/pipeline"
)

// initPipeline loads the keyword rules and the named NG list (none when
// ngName is empty) and builds the Pipeline for c.
func initPipeline(ctx context.Context, c *config.Config, ngName string) (*pipeline.Pipeline, error) {
	rules, err := config.LoadRules(c.Rules.Path)
	if err != nil {
		return nil, err
	}

	exclusions, err := loadExclusions(ctx, c, ngName)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(c, rules, exclusions)
	if err != nil {
		return nil, eris.Wrap(err, "init pipeline")
	}
	return p, nil
}

func loadExclusions(ctx context.Context, c *config.Config, ngName string) ([]model.Exclusion, error) {
	if ngName == "" {
		return nil, nil
	}

	lists, err := nglist.Discover(c.NG.Dir, c.NG.Pattern)
	if err != nil {
		return nil, err
	}
	l, err := nglist.Find(lists, ngName)
	if err != nil {
		return nil, err
	}
	exclusions, err := nglist.Load(ctx, l)
	if err != nil {
		return nil, err
	}

	zap.L().Info("ng list loaded",
		zap.String("list", l.Name),
		zap.Int("entries", len(exclusions)),
	)
	return exclusions, nil
}
