// Package content loads posts and pages from Markdown files with YAML frontmatter.
package content

import (
	"regexp"
	"strings"
	"time"
)

// DefaultTitle is used when frontmatter has no title.
const DefaultTitle = "Untitled"

// Post is a dated article under the posts directory. Posts are immutable once loaded.
type Post struct {
	Filename    string
	Slug        string
	URL         string
	Title       string
	Date        string    // as written in frontmatter
	Time        time.Time // zero when Date is absent or unparseable
	Tags        []string
	Categories  []string
	Description string
	HTML        string
}

// HasDate reports whether the post carries a parseable date.
func (p *Post) HasDate() bool { return !p.Time.IsZero() }

// Page is a standalone page under the pages directory.
type Page struct {
	Filename string
	Slug     string
	URL      string
	Title    string
	HTML     string
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// SlugFromFilename strips the .md extension and a leading YYYY-MM-DD- prefix.
func SlugFromFilename(filename string) string {
	slug := strings.TrimSuffix(filename, ".md")
	return datePrefix.ReplaceAllString(slug, "")
}

// PostURL is the site path of a post.
func PostURL(slug string) string { return "/posts/" + slug + "/" }

// PageURL is the site path of a page.
func PageURL(slug string) string { return "/" + slug + "/" }
