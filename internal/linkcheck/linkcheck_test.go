package linkcheck

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func page(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestExtractLinks(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="/style.css"><script src="/app.js"></script></head>
<body><a href="/about/">About</a><img src="logo.png" alt="logo"><a>no href</a><a href="  ">blank</a></body></html>`

	links, err := ExtractLinks(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []Link{
		{URL: "/style.css", Tag: "link", Attribute: "href"},
		{URL: "/app.js", Tag: "script", Attribute: "src"},
		{URL: "/about/", Tag: "a", Attribute: "href"},
		{URL: "logo.png", Tag: "img", Attribute: "src"},
	}, links)
}

func TestCheck(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html": page(`<a href="/about/">a</a>
<a href="/missing/">m</a>
<a href="/missing/">dup</a>
<a href="https://example.com/posts/">own host</a>
<a href="https://example.com/gone/">own host missing</a>
<a href="https://other.org/x">external</a>
<a href="#top">anchor</a>
<a href="mailto:me@example.com">mail</a>
<a href="/">home</a>`),
		"about/index.html":       page(`<a href="../posts/hello/">rel</a><img src="pic.png">`),
		"posts/index.html":       page(`<a href="/posts/hello/#intro">frag</a>`),
		"posts/hello/index.html": page(`ok`),
	}

	checker := NewChecker(fsys, "https://example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))
	broken, err := checker.Check(context.Background(), []string{"index.html", "about/index.html", "posts/index.html"})
	require.NoError(t, err)

	got := make([]string, 0, len(broken))
	for _, b := range broken {
		got = append(got, b.Page+" -> "+b.Target)
	}
	require.Equal(t, []string{
		"index.html -> missing",
		"index.html -> gone",
		"about/index.html -> about/pic.png",
	}, got)
}

func TestCheck_MissingPage(t *testing.T) {
	checker := NewChecker(fstest.MapFS{}, "", nil)
	_, err := checker.Check(context.Background(), []string{"nope.html"})
	require.Error(t, err)
}

func TestCheck_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewChecker(fstest.MapFS{"index.html": page("x")}, "", nil)
	_, err := checker.Check(ctx, []string{"index.html"})
	require.ErrorIs(t, err, context.Canceled)
}
