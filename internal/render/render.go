// Package render assembles the HTML for every output page and hands it to the
// template engine's main template.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/navigation"
	"git.home.luguber.info/inful/sitegen/internal/taxonomy"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// MainTemplate is the outer template every page is rendered through.
const MainTemplate = "main"

// DateLayout is the display format for post dates.
const DateLayout = "Jan 2, 2006"

//go:embed fragments/*.html
var fragmentFS embed.FS

var fragments = template.Must(template.ParseFS(fragmentFS, "fragments/*.html"))

// Renderer produces complete HTML documents. Methods do no I/O beyond reading
// templates through the engine.
type Renderer struct {
	engine *templates.Engine
	nav    *navigation.Menu
	site   config.SiteConfig
	limits config.BuildConfig
}

// New creates a Renderer. nav may be nil, in which case pages carry no navigation bar.
func New(engine *templates.Engine, nav *navigation.Menu, site config.SiteConfig, limits config.BuildConfig) *Renderer {
	return &Renderer{engine: engine, nav: nav, site: site, limits: limits}
}

func (r *Renderer) main(title, mainContent string, extra templates.Data) (string, error) {
	data := templates.Data{
		"title":        title,
		"main_content": mainContent,
		"site_title":   r.site.Title,
		"site_url":     r.site.URL,
	}
	for k, v := range extra {
		data[k] = v
	}
	return r.engine.Render(MainTemplate, data, r.nav)
}

func (r *Renderer) titled(prefix string) string {
	return prefix + " - " + r.site.Title
}

// Page renders a standalone page.
func (r *Renderer) Page(p *content.Page) (string, error) {
	return r.main(p.Title, p.HTML, templates.Data{
		"date":        "",
		"tags":        []string{},
		"categories":  []string{},
		"description": "",
		"url":         p.URL,
	})
}

// Post renders a single post.
func (r *Renderer) Post(p *content.Post) (string, error) {
	return r.main(p.Title, p.HTML, templates.Data{
		"date":        p.Date,
		"tags":        p.Tags,
		"categories":  p.Categories,
		"description": p.Description,
		"url":         p.URL,
	})
}

// Home renders the homepage with the most recent posts as cards.
func (r *Renderer) Home(posts []*content.Post) (string, error) {
	recent := posts
	if n := r.limits.RecentPosts; n > 0 && len(recent) > n {
		recent = recent[:n]
	}

	cards := make([]template.HTML, 0, len(recent))
	for _, p := range recent {
		card, err := r.PostCard(p)
		if err != nil {
			return "", err
		}
		cards = append(cards, template.HTML(card)) // #nosec G203 -- produced by html/template
	}

	body, err := execute("home", struct {
		Hero  config.HeroConfig
		CTA   config.CTAConfig
		Cards []template.HTML
	}{Hero: r.site.Hero, CTA: r.site.CTA, Cards: cards})
	if err != nil {
		return "", err
	}
	return r.main(r.site.Title, body, nil)
}

// PostCard renders the card fragment shown on the homepage.
func (r *Renderer) PostCard(p *content.Post) (string, error) {
	return execute("card", r.summary(p, r.limits.CardTags, r.limits.DescriptionLength))
}

// PostList renders a headed list of posts.
func (r *Renderer) PostList(posts []*content.Post, heading string) (string, error) {
	items := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		items = append(items, r.summary(p, r.limits.ListTags, -1))
	}
	return execute("list", struct {
		Heading string
		Posts   []postSummary
	}{Heading: heading, Posts: items})
}

// Archive renders the full post listing.
func (r *Renderer) Archive(posts []*content.Post) (string, error) {
	body, err := r.PostList(posts, "Blog Posts")
	if err != nil {
		return "", err
	}
	return r.main(r.titled("Blog"), body, nil)
}

// TagsIndex renders the alphabetical list of tags.
func (r *Renderer) TagsIndex(idx *taxonomy.Index) (string, error) {
	body, err := termList("Tags", idx, taxonomy.TagURL)
	if err != nil {
		return "", err
	}
	return r.main(r.titled("Tags"), body, nil)
}

// CategoriesIndex renders the alphabetical list of categories.
func (r *Renderer) CategoriesIndex(idx *taxonomy.Index) (string, error) {
	body, err := termList("Categories", idx, taxonomy.CategoryURL)
	if err != nil {
		return "", err
	}
	return r.main(r.titled("Categories"), body, nil)
}

// TagPage lists the posts carrying one tag.
func (r *Renderer) TagPage(tag string, posts []*content.Post) (string, error) {
	body, err := r.PostList(posts, `Posts tagged with "`+tag+`"`)
	if err != nil {
		return "", err
	}
	return r.main(r.titled(tag), body, nil)
}

// CategoryPage lists the posts in one category.
func (r *Renderer) CategoryPage(category string, posts []*content.Post) (string, error) {
	body, err := r.PostList(posts, `Posts in category "`+category+`"`)
	if err != nil {
		return "", err
	}
	return r.main(r.titled(category), body, nil)
}

type tagLink struct {
	Name string
	URL  string
}

type postSummary struct {
	Title       string
	URL         string
	Date        string
	ISODate     string
	Categories  []string
	Description string
	Tags        []tagLink
	MoreTags    int
}

func (r *Renderer) summary(p *content.Post, maxTags, descLimit int) postSummary {
	shown := p.Tags
	more := 0
	if maxTags >= 0 && len(shown) > maxTags {
		more = len(shown) - maxTags
		shown = shown[:maxTags]
	}
	links := make([]tagLink, 0, len(shown))
	for _, t := range shown {
		links = append(links, tagLink{Name: t, URL: taxonomy.TagURL(t)})
	}

	s := postSummary{
		Title:       p.Title,
		URL:         p.URL,
		Categories:  p.Categories,
		Description: Truncate(p.Description, descLimit),
		Tags:        links,
		MoreTags:    more,
	}
	if p.HasDate() {
		s.Date = p.Time.Format(DateLayout)
		s.ISODate = p.Time.Format("2006-01-02")
	}
	return s
}

type termEntry struct {
	Name  string
	URL   string
	Count int
}

func termList(heading string, idx *taxonomy.Index, url func(string) string) (string, error) {
	terms := idx.Sorted()
	entries := make([]termEntry, 0, len(terms))
	for _, t := range terms {
		entries = append(entries, termEntry{Name: t, URL: url(t), Count: idx.Count(t)})
	}
	return execute("terms", struct {
		Heading string
		Terms   []termEntry
	}{Heading: heading, Terms: entries})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s fragment: %w", name, err)
	}
	return buf.String(), nil
}

// Truncate shortens s to at most limit runes, cutting at the last word
// boundary and appending an ellipsis. A negative limit disables truncation.
func Truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(cut, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}
