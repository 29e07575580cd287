package templates

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/navigation"
)

func tpl(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func newEngine(fsys fstest.MapFS, opts ...Option) *Engine {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(fsys, opts...)
}

func TestSubstitute(t *testing.T) {
	cases := []struct {
		name string
		text string
		data Data
		want string
	}{
		{"simple", "Hello {{ name }}", Data{"name": "World"}, "Hello World"},
		{"absent", "Hello {{ name }}", Data{}, "Hello "},
		{"no spaces", "Hello {{name}}!", Data{"name": "you"}, "Hello you!"},
		{"string list", "{{ tags }}", Data{"tags": []string{"a", "b"}}, "a, b"},
		{"any list", "{{ tags }}", Data{"tags": []any{"a", 2}}, "a, 2"},
		{"empty list", "[{{ tags }}]", Data{"tags": []string{}}, "[]"},
		{"nil", "[{{ v }}]", Data{"v": nil}, "[]"},
		{"false", "[{{ v }}]", Data{"v": false}, "[]"},
		{"zero", "[{{ v }}]", Data{"v": 0}, "[]"},
		{"number", "[{{ v }}]", Data{"v": 42}, "[42]"},
		{"true", "[{{ v }}]", Data{"v": true}, "[true]"},
		{"non-word left alone", "{{ a-b }}", Data{"a-b": "x"}, "{{ a-b }}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Substitute(tc.text, tc.data))
		})
	}
}

func TestSubstitute_SinglePass(t *testing.T) {
	out := Substitute("{{ a }}", Data{"a": "{{ b }}", "b": "nested"})
	require.Equal(t, "{{ b }}", out)
}

func TestLoad_MissingTemplate(t *testing.T) {
	_, err := newEngine(fstest.MapFS{}).Load("main")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTemplateNotFound))
	require.Contains(t, err.Error(), "main")
}

func TestExpandIncludes_Nested(t *testing.T) {
	fsys := fstest.MapFS{
		"header.html": tpl("<header>{{include: logo}}</header>"),
		"logo.html":   tpl("LOGO"),
	}
	out := newEngine(fsys).ExpandIncludes("{{ include: header }}<main>{{include:missing}}</main>")
	require.Equal(t, "<header>LOGO</header><main></main>", out)
}

func TestExpandIncludes_MissingTargetWarns(t *testing.T) {
	var kinds, names []string
	e := newEngine(fstest.MapFS{}, WithWarningHook(func(kind, template string) {
		kinds = append(kinds, kind)
		names = append(names, template)
	}))

	require.Equal(t, "ab", e.ExpandIncludes("a{{include: nope}}b"))
	require.Equal(t, []string{WarnMissingInclude}, kinds)
	require.Equal(t, []string{"nope"}, names)
}

func TestExpandIncludes_SelfIncludeStops(t *testing.T) {
	var kinds []string
	fsys := fstest.MapFS{"self.html": tpl("x{{include: self}}")}
	e := newEngine(fsys, WithWarningHook(func(kind, _ string) { kinds = append(kinds, kind) }))

	out := e.ExpandIncludes("{{include: self}}")
	require.Equal(t, strings.Repeat("x", DefaultMaxDepth)+"{{include: self}}", out)
	require.Equal(t, []string{WarnDepthExceeded}, kinds)
}

func TestExpandIncludes_MutualIncludeStops(t *testing.T) {
	fsys := fstest.MapFS{
		"a.html": tpl("A{{include: b}}"),
		"b.html": tpl("B{{include: a}}"),
	}
	out := newEngine(fsys, WithMaxDepth(4)).ExpandIncludes("{{include: a}}")
	require.Equal(t, "ABAB{{include: a}}", out)
}

func TestRender_InjectsNavigationWithoutMutatingData(t *testing.T) {
	fsys := fstest.MapFS{
		"main.html":   tpl("<title>{{ title }}</title>{{include: header}}{{ main_content }}"),
		"header.html": tpl("<div>{{ navigation }}</div>"),
	}
	data := Data{"title": "Hi", "main_content": "<p>body</p>"}

	out, err := newEngine(fsys, WithBrand("Brand")).Render("main", data, navigation.Build(nil, language.English))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<title>Hi</title><div>"))
	require.Contains(t, out, "Brand")
	require.Contains(t, out, `href="/posts/"`)
	require.True(t, strings.HasSuffix(out, "</div><p>body</p>"))

	_, mutated := data["navigation"]
	require.False(t, mutated)
}

func TestRender_WithoutNavigation(t *testing.T) {
	fsys := fstest.MapFS{"main.html": tpl("[{{ navigation }}]{{ title }}")}

	out, err := newEngine(fsys).Render("main", Data{"title": "T"}, nil)
	require.NoError(t, err)
	require.Equal(t, "[]T", out)
}

func TestRender_MissingTemplate(t *testing.T) {
	_, err := newEngine(fstest.MapFS{}).Render("main", Data{}, nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestStarter_RendersThroughEngine(t *testing.T) {
	e := New(Starter(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	html, err := e.Render("main", Data{"title": "Starter", "main_content": "<p>x</p>"}, navigation.Build(nil, language.English))
	require.NoError(t, err)
	require.Contains(t, html, "<title>Starter</title>")
	require.Contains(t, html, "<nav")
	require.NotContains(t, html, "{{")
}

func TestWriteStarter(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteStarter(dir, false)
	require.NoError(t, err)
	require.Len(t, written, 2)

	written, err = WriteStarter(dir, false)
	require.NoError(t, err)
	require.Empty(t, written, "existing templates are kept")

	written, err = WriteStarter(dir, true)
	require.NoError(t, err)
	require.Len(t, written, 2)
}
