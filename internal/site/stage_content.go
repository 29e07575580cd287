package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/navigation"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	return bs.Generator.output.Prepare()
}

// siteLanguage parses the configured collation language, falling back to English.
func siteLanguage(tag string) language.Tag {
	lang, err := language.Parse(tag)
	if err != nil {
		return language.English
	}
	return lang
}

func stageLoadContent(_ context.Context, bs *BuildState) error {
	cfg := bs.Generator.config
	rec := bs.Generator.recorder

	lang := siteLanguage(cfg.Site.Language)

	md := markdown.New(markdown.Options{
		Style:       cfg.Build.CodeStyle,
		LineNumbers: cfg.Build.LineNumbers,
	})
	loader := content.NewLoader(
		os.DirFS(cfg.Paths.Content),
		filepath.ToSlash(cfg.Paths.Posts),
		filepath.ToSlash(cfg.Paths.Pages),
		md,
		content.WithLanguage(lang),
		content.WithLogger(bs.stageLogger()),
		content.WithSkipHook(func(_, reason string, _ error) {
			bs.Report.Skipped[reason]++
			rec.IncContentSkipped(reason)
		}),
	)

	posts, err := loader.LoadPosts()
	if err != nil {
		return ferrors.FileSystemError("failed to read posts directory").
			WithCause(err).WithContext("path", cfg.Paths.PostsDir()).Build()
	}
	pages, err := loader.LoadPages()
	if err != nil {
		return ferrors.FileSystemError("failed to read pages directory").
			WithCause(err).WithContext("path", cfg.Paths.PagesDir()).Build()
	}

	bs.Posts, bs.Pages = posts, pages
	bs.Report.Posts, bs.Report.Pages = len(posts), len(pages)
	rec.SetContentItems("posts", len(posts))
	rec.SetContentItems("pages", len(pages))
	bs.stageLogger().Info("Loaded content",
		logfields.Count(len(posts)+len(pages)),
		slog.Int("posts", len(posts)),
		slog.Int("pages", len(pages)))
	return nil
}

// ErrTemplateWarning marks report warnings raised while expanding includes.
var ErrTemplateWarning = errors.New("template warning")

// templateWarning records an include expansion problem against the stage that
// is rendering, so it shows up in the report as well as in metrics.
func (bs *BuildState) templateWarning(kind, template string) {
	bs.Generator.recorder.IncTemplateWarning(kind)
	switch kind {
	case templates.WarnMissingInclude:
		bs.warn(fmt.Errorf("%w: include %q", ErrTemplateWarning, template))
	default:
		bs.warn(fmt.Errorf("%w: %s", ErrTemplateWarning, kind))
	}
}

// stageNavigation builds the menu and the renderer that carries it into every page.
func stageNavigation(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	cfg := g.config

	bs.Nav = navigation.Build(bs.Pages, siteLanguage(cfg.Site.Language))

	engine := templates.New(os.DirFS(cfg.Paths.Templates),
		templates.WithMaxDepth(cfg.Build.IncludeDepth),
		templates.WithBrand(cfg.Site.Brand),
		templates.WithLogger(g.logger),
		templates.WithWarningHook(bs.templateWarning),
	)
	bs.Renderer = render.New(engine, bs.Nav, cfg.Site, cfg.Build)
	return nil
}
