package site

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/taxonomy"
)

func stageRenderTaxonomies(ctx context.Context, bs *BuildState) error {
	tags, categories := taxonomy.IndexPosts(bs.Posts)
	bs.Report.Tags, bs.Report.Categories = tags.Len(), categories.Len()
	bs.stageLogger().Info("Indexed taxonomies", slog.Int("tags", tags.Len()), slog.Int("categories", categories.Len()))

	html, renderErr := bs.Renderer.TagsIndex(tags)
	if err := bs.emit(KindTagsIndex, "/tags/", html, renderErr); err != nil {
		return err
	}
	html, renderErr = bs.Renderer.CategoriesIndex(categories)
	if err := bs.emit(KindCategories, "/categories/", html, renderErr); err != nil {
		return err
	}

	if err := bs.renderTerms(ctx, KindTag, tags, taxonomy.TagURL, bs.Renderer.TagPage); err != nil {
		return err
	}
	return bs.renderTerms(ctx, KindCategory, categories, taxonomy.CategoryURL, bs.Renderer.CategoryPage)
}

// renderTerms writes one detail page per term in first-seen order. When two
// terms share a slug the later one overwrites the earlier and a warning is recorded.
func (bs *BuildState) renderTerms(
	ctx context.Context,
	kind string,
	idx *taxonomy.Index,
	url func(string) string,
	page func(string, []*content.Post) (string, error),
) error {
	owner := make(map[string]string, idx.Len())
	for _, term := range idx.Terms() {
		if err := ctx.Err(); err != nil {
			return err
		}
		u := url(term)
		if prev, ok := owner[u]; ok && prev != term {
			bs.stageLogger().Warn("Terms share an output path; later term wins",
				logfields.Kind(kind), logfields.Term(term), slog.String("previous", prev), logfields.URL(u))
			bs.warn(fmt.Errorf("%s %q and %q both map to %s", kind, prev, term, u))
		}
		owner[u] = term

		html, renderErr := page(term, idx.Posts(term))
		if err := bs.emit(kind, u, html, renderErr); err != nil {
			return err
		}
	}
	return nil
}
