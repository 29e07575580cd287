// Package navigation derives the site menu from loaded pages.
package navigation

import (
	"bytes"
	_ "embed"
	"html/template"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Item is a single menu link.
type Item struct {
	Title string
	URL   string
}

// Menu is the navigation structure shared by every rendered page.
type Menu struct {
	Home  Item
	Pages []Item
	Blog  Item
	// BlogMenu is the fixed submenu under Blog.
	BlogMenu []Item
}

// Build derives the menu. Pages are listed by title, collated for lang;
// the caller's slice is left untouched.
func Build(pages []*content.Page, lang language.Tag) *Menu {
	sorted := append([]*content.Page(nil), pages...)
	content.SortPagesByTitle(sorted, lang)

	items := make([]Item, 0, len(sorted))
	for _, p := range sorted {
		items = append(items, Item{Title: p.Title, URL: p.URL})
	}
	return &Menu{
		Home:  Item{Title: "Home", URL: "/"},
		Pages: items,
		Blog:  Item{Title: "Blog", URL: "/posts/"},
		BlogMenu: []Item{
			{Title: "All Posts", URL: "/posts/"},
			{Title: "Categories", URL: "/categories/"},
			{Title: "Tags", URL: "/tags/"},
		},
	}
}

//go:embed nav.html
var navSource string

var navTemplate = template.Must(template.New("nav").Parse(navSource))

// HTML renders the navigation bar. Titles and URLs are HTML escaped.
func (m *Menu) HTML(brand string) string {
	var buf bytes.Buffer
	err := navTemplate.Execute(&buf, struct {
		Brand string
		*Menu
	}{Brand: brand, Menu: m})
	if err != nil {
		// Execution only fails on template bugs; the template is fixed at compile time.
		panic(err)
	}
	return buf.String()
}
