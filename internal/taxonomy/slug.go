package taxonomy

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^\w-]`)
)

// Slugify turns a tag or category name into a URL path segment.
// Accents are folded ("Café" -> "cafe"), "+" is spelled "p" ("C++ Tips" -> "cpp-tips"),
// whitespace runs become a single hyphen and anything else outside [A-Za-z0-9_-] is dropped.
// The result may be empty when the term has no usable characters.
func Slugify(term string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		term,
	)
	if err != nil {
		folded = term
	}

	s := strings.ToLower(folded)
	s = strings.ReplaceAll(s, "+", "p")
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

// FallbackSlug names the directory of a term whose slug would be empty.
const FallbackSlug = "untitled"

// TermSlug is Slugify with FallbackSlug substituted for an empty result.
func TermSlug(term string) string {
	if s := Slugify(term); s != "" {
		return s
	}
	return FallbackSlug
}

// TagURL is the site path of a tag's detail page.
func TagURL(tag string) string { return "/tags/" + TermSlug(tag) + "/" }

// CategoryURL is the site path of a category's detail page.
func CategoryURL(category string) string { return "/categories/" + TermSlug(category) + "/" }
