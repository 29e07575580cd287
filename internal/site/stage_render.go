package site

import (
	"context"
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// Output kinds used for metrics and the report.
const (
	KindPage       = "page"
	KindPost       = "post"
	KindHome       = "home"
	KindArchive    = "archive"
	KindTagsIndex  = "tags_index"
	KindCategories = "categories_index"
	KindTag        = "tag"
	KindCategory   = "category"
)

// emit writes one rendered page. A missing template or an unsafe output path
// skips that page with a warning; anything else aborts the build.
func (bs *BuildState) emit(kind, url, html string, renderErr error) error {
	g := bs.Generator
	logger := bs.stageLogger()
	rel := outputPath(url)

	if renderErr != nil {
		if errors.Is(renderErr, templates.ErrTemplateNotFound) {
			logger.Error("Template not found; page skipped", logfields.URL(url), logfields.Error(renderErr))
			g.recorder.IncTemplateWarning("missing_template")
			bs.warn(fmt.Errorf("%s: %w", url, renderErr))
			return nil
		}
		return ferrors.TemplateError("failed to render page").
			WithCause(renderErr).WithContext("url", url).Build()
	}

	if err := g.output.WriteFile(rel, []byte(html)); err != nil {
		if errors.Is(err, ErrUnsafePath) {
			logger.Warn("Unsafe output path; page skipped", logfields.URL(url), logfields.Error(err))
			bs.warn(err)
			return nil
		}
		return err
	}

	bs.Written = append(bs.Written, rel)
	bs.Report.FilesWritten[kind]++
	g.recorder.IncFilesWritten(kind)
	logger.Debug("Generated", logfields.Kind(kind), logfields.URL(url))
	return nil
}

func stageRenderPages(ctx context.Context, bs *BuildState) error {
	for _, p := range bs.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, renderErr := bs.Renderer.Page(p)
		if err := bs.emit(KindPage, p.URL, html, renderErr); err != nil {
			return err
		}
	}
	return nil
}

func stageRenderPosts(ctx context.Context, bs *BuildState) error {
	for _, p := range bs.Posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, renderErr := bs.Renderer.Post(p)
		if err := bs.emit(KindPost, p.URL, html, renderErr); err != nil {
			return err
		}
	}
	return nil
}

func stageRenderHome(_ context.Context, bs *BuildState) error {
	html, err := bs.Renderer.Home(bs.Posts)
	return bs.emit(KindHome, "/", html, err)
}

func stageRenderArchive(_ context.Context, bs *BuildState) error {
	html, err := bs.Renderer.Archive(bs.Posts)
	return bs.emit(KindArchive, "/posts/", html, err)
}
