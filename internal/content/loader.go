package content

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// BodyRenderer turns a Markdown body into HTML.
type BodyRenderer interface {
	Render(body []byte) (string, error)
}

// SkipFunc is notified for every content file left out of the build. err is a
// content ClassifiedError for files that could not be loaded and nil for
// unpublished ones.
type SkipFunc func(file, reason string, err error)

// Skip reasons reported to SkipFunc.
const (
	SkipReadError   = "read_error"
	SkipFrontmatter = "frontmatter"
	SkipMarkdown    = "markdown"
	SkipUnpublished = "unpublished"
)

// Loader reads posts and pages from a content tree.
type Loader struct {
	fsys     fs.FS
	postsDir string
	pagesDir string
	md       BodyRenderer
	lang     language.Tag
	logger   *slog.Logger
	onSkip   SkipFunc
}

// Option configures a Loader.
type Option func(*Loader)

// WithLanguage sets the collation language for page title ordering.
func WithLanguage(tag language.Tag) Option {
	return func(l *Loader) { l.lang = tag }
}

// WithLogger sets the logger used for skipped files.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSkipHook registers a callback for skipped files.
func WithSkipHook(fn SkipFunc) Option {
	return func(l *Loader) { l.onSkip = fn }
}

// NewLoader creates a Loader over fsys. postsDir and pagesDir are slash-separated
// paths relative to the root of fsys.
func NewLoader(fsys fs.FS, postsDir, pagesDir string, md BodyRenderer, opts ...Option) *Loader {
	l := &Loader{
		fsys:     fsys,
		postsDir: cleanDir(postsDir),
		pagesDir: cleanDir(pagesDir),
		md:       md,
		lang:     language.English,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func cleanDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(dir, "\\", "/"))
	if dir == "" || dir == "/" {
		return "."
	}
	return strings.TrimPrefix(dir, "./")
}

// document is a parsed content file before it becomes a Post or Page.
type document struct {
	name   string
	fields frontmatter.Fields
	html   string
}

// LoadPosts returns published posts, newest first. Undated posts sort last and
// posts with equal dates keep filename order.
func (l *Loader) LoadPosts() ([]*Post, error) {
	docs, err := l.readDir(l.postsDir)
	if err != nil {
		return nil, err
	}

	posts := make([]*Post, 0, len(docs))
	for _, doc := range docs {
		slug := SlugFromFilename(doc.name)
		t, raw, ok := doc.fields.Time("date")
		if raw != "" && !ok {
			l.logger.Warn("Unrecognised post date; post will sort last",
				logfields.File(doc.name), slog.String("date", raw))
		}
		posts = append(posts, &Post{
			Filename:    doc.name,
			Slug:        slug,
			URL:         PostURL(slug),
			Title:       doc.fields.String("title", DefaultTitle),
			Date:        raw,
			Time:        t,
			Tags:        doc.fields.StringList("tags"),
			Categories:  doc.fields.StringList("categories"),
			Description: doc.fields.String("description", ""),
			HTML:        doc.html,
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Time.After(b.Time)
	})
	return posts, nil
}

// LoadPages returns published pages ordered by title using locale-aware collation.
func (l *Loader) LoadPages() ([]*Page, error) {
	docs, err := l.readDir(l.pagesDir)
	if err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(docs))
	for _, doc := range docs {
		slug := doc.fields.String("slug", SlugFromFilename(doc.name))
		pages = append(pages, &Page{
			Filename: doc.name,
			Slug:     slug,
			URL:      PageURL(slug),
			Title:    doc.fields.String("title", DefaultTitle),
			HTML:     doc.html,
		})
	}

	SortPagesByTitle(pages, l.lang)
	return pages, nil
}

// SortPagesByTitle orders pages by title with collation rules for lang. The sort is stable.
func SortPagesByTitle(pages []*Page, lang language.Tag) {
	col := collate.New(lang)
	sort.SliceStable(pages, func(i, j int) bool {
		return col.CompareString(pages[i].Title, pages[j].Title) < 0
	})
}

// readDir parses every published *.md file directly inside dir, in filename order.
// A missing directory yields no documents.
func (l *Loader) readDir(dir string) ([]document, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("Content directory not found", logfields.Path(dir))
			return nil, nil
		}
		return nil, err
	}

	docs := make([]document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		doc, ok := l.readFile(dir, entry.Name())
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) readFile(dir, name string) (document, bool) {
	p := path.Join(dir, name)

	raw, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		l.skip(p, SkipReadError, err)
		return document{}, false
	}

	fields, body, err := frontmatter.Parse(raw)
	if err != nil {
		l.skip(p, SkipFrontmatter, err)
		return document{}, false
	}

	if fields.IsFalse("published") {
		l.logger.Debug("Skipping unpublished file", logfields.File(p))
		if l.onSkip != nil {
			l.onSkip(p, SkipUnpublished, nil)
		}
		return document{}, false
	}

	html, err := l.md.Render(body)
	if err != nil {
		l.skip(p, SkipMarkdown, err)
		return document{}, false
	}

	return document{name: name, fields: fields, html: html}, true
}

func (l *Loader) skip(file, reason string, cause error) {
	err := ferrors.ContentError("content file skipped").
		WithCause(cause).
		WithContext("file", file).
		WithContext("reason", reason).
		Build()
	l.logger.Warn("Skipping content file",
		logfields.File(file),
		slog.String("reason", reason),
		logfields.Error(err))
	if l.onSkip != nil {
		l.onSkip(file, reason, err)
	}
}
