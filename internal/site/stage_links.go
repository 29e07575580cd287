package site

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/linkcheck"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// stageVerifyLinks checks internal links in the files written this run. Broken
// links are warnings; the build still succeeds.
func stageVerifyLinks(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	if !g.config.Build.VerifyLinks {
		return nil
	}
	out, ok := g.output.(FSOutput)
	if !ok {
		bs.stageLogger().Debug("Output cannot be read back; link verification skipped")
		return nil
	}

	checker := linkcheck.NewChecker(out.FS(), g.config.Site.URL, bs.stageLogger())
	broken, err := checker.Check(ctx, bs.Written)
	if err != nil {
		return newWarnStageError(StageVerifyLinks, err)
	}

	bs.Report.BrokenLinks = broken
	for _, b := range broken {
		bs.stageLogger().Warn("Broken internal link", logfields.File(b.Page), logfields.URL(b.URL))
	}
	if len(broken) > 0 {
		bs.warn(fmt.Errorf("%d broken internal links", len(broken)))
	}
	bs.stageLogger().Info("Verified links", logfields.Count(len(bs.Written)), slog.Int("broken", len(broken)))
	return nil
}
