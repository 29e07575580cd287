// Package site orchestrates a build: it loads content, renders every page
// through the template engine and writes the results to an Output.
package site

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// Generator builds a static site from a configuration.
type Generator struct {
	config   *config.Config
	output   Output
	recorder metrics.Recorder
	logger   *slog.Logger
	newID    func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutput replaces the default directory output (cfg.Paths.Output).
func WithOutput(out Output) Option {
	return func(g *Generator) {
		if out != nil {
			g.output = out
		}
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		config:   cfg,
		output:   NewDirOutput(cfg.Paths.Output),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}


// Pipeline returns the stages of a build in execution order.
func (g *Generator) Pipeline() []StageDef {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadContent, stageLoadContent).
		Add(StageNavigation, stageNavigation).
		Add(StageRenderPages, stageRenderPages).
		Add(StageRenderPosts, stageRenderPosts).
		Add(StageRenderHome, stageRenderHome).
		Add(StageRenderArchive, stageRenderArchive).
		Add(StageRenderTaxonomies, stageRenderTaxonomies).
		Add(StageVerifyLinks, stageVerifyLinks).
		Build()
}

// Generate runs one build. The report is returned even when the build fails.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := newReport(g.newID())
	logger := g.logger.With(logfields.BuildID(report.BuildID))
	logger.Info("Starting site generation",
		slog.String("content", g.config.Paths.Content),
		slog.String("output", g.config.Paths.Output))

	bs := newBuildState(g, report)
	err := runStages(ctx, bs, g.Pipeline())

	report.deriveOutcome()
	report.finish()
	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	if err != nil {
		logger.Error("Site generation failed", slog.String("outcome", string(report.Outcome)), logfields.Error(err))
		return report, err
	}
	logger.Info("Site generation completed",
		logfields.Count(report.TotalFiles()),
		slog.String("outcome", string(report.Outcome)),
		slog.Int("warnings", len(report.Warnings)))
	return report, nil
}
