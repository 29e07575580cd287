package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides paths.output)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path (overrides metrics.textfile)"`
	VerifyLinks bool   `name:"verify-links" help:"Check internal links in the generated pages"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Paths.Output = b.Output
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Textfile = b.MetricsFile
	}
	if b.VerifyLinks {
		cfg.Build.VerifyLinks = true
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunBuild(ctx, g, cfg)
}

// RunBuild generates the site described by cfg and prints a summary to stdout.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	out := g.stdout()
	logger := g.logger()
	// Provide friendly user-facing messages on stdout.
	_, _ = fmt.Fprintln(out, "Starting build")

	opts := []site.Option{site.WithLogger(logger)}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, site.WithRecorder(prom))
	}

	report, err := site.NewGenerator(cfg, opts...).Generate(ctx)

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		_, _ = fmt.Fprintln(out, "Build failed")
		return err
	}

	for _, b := range report.BrokenLinks {
		_, _ = fmt.Fprintf(out, "Broken link: %s\n", b)
	}
	if report.Outcome == site.OutcomeWarning {
		_, _ = fmt.Fprintf(out, "Build completed with %d warnings\n", len(report.Warnings))
	} else {
		_, _ = fmt.Fprintln(out, "Build completed successfully")
	}
	_, _ = fmt.Fprintln(out, report.Summary())
	return nil
}
