package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

func TestBuild(t *testing.T) {
	pages := []*content.Page{
		{Title: "About", URL: "/about/"},
		{Title: "Contact", URL: "/contact-us/"},
	}

	menu := Build(pages, language.English)
	require.Equal(t, Item{Title: "Home", URL: "/"}, menu.Home)
	require.Equal(t, []Item{{"About", "/about/"}, {"Contact", "/contact-us/"}}, menu.Pages)
	require.Equal(t, Item{Title: "Blog", URL: "/posts/"}, menu.Blog)
	require.Equal(t, []Item{
		{"All Posts", "/posts/"},
		{"Categories", "/categories/"},
		{"Tags", "/tags/"},
	}, menu.BlogMenu)
}

func TestBuild_SortsPagesByTitle(t *testing.T) {
	pages := []*content.Page{
		{Title: "Zebra", URL: "/zebra/"},
		{Title: "about", URL: "/about/"},
		{Title: "Mid", URL: "/mid/"},
	}

	menu := Build(pages, language.English)
	require.Equal(t, []Item{{"about", "/about/"}, {"Mid", "/mid/"}, {"Zebra", "/zebra/"}}, menu.Pages)
	if pages[0].Title != "Zebra" {
		t.Fatalf("Build reordered the caller's slice: first page is %q", pages[0].Title)
	}
}

func TestBuild_NoPages(t *testing.T) {
	menu := Build(nil, language.English)
	require.NotNil(t, menu.Pages)
	require.Empty(t, menu.Pages)
}

func TestHTML(t *testing.T) {
	menu := Build([]*content.Page{{Title: "About", URL: "/about/"}}, language.English)

	out := menu.HTML("My Site")
	require.True(t, strings.HasPrefix(out, "<nav"))
	require.Contains(t, out, ">My Site</a>")
	require.Contains(t, out, `<a href="/about/"`)
	require.Contains(t, out, ">About</a>")
	require.Contains(t, out, `<a href="/categories/"`)
	require.Contains(t, out, ">All Posts</a>")
	require.Contains(t, out, `aria-label="Open menu"`)

	// Page links come after Home and before the Blog dropdown.
	home := strings.Index(out, ">Home</a>")
	about := strings.Index(out, ">About</a>")
	blog := strings.Index(out, `href="/posts/"`)
	require.Less(t, home, about)
	require.Less(t, about, blog)
}

func TestHTML_EscapesTitles(t *testing.T) {
	menu := Build([]*content.Page{{Title: "Q&A <beta>", URL: "/qa/"}}, language.English)

	out := menu.HTML("Tom & Jerry")
	require.Contains(t, out, "Q&amp;A &lt;beta&gt;")
	require.Contains(t, out, "Tom &amp; Jerry")
}

func TestHTML_Deterministic(t *testing.T) {
	menu := Build([]*content.Page{{Title: "About", URL: "/about/"}}, language.English)
	require.Equal(t, menu.HTML("x"), menu.HTML("x"))
}
