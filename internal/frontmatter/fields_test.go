package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, yamlText string) Fields {
	t.Helper()
	fields, err := ParseYAML([]byte(yamlText))
	require.NoError(t, err)
	return fields
}

func TestFields_String(t *testing.T) {
	f := mustParse(t, "title: Hello\nempty: \"\"\nyear: 2024\n")

	require.Equal(t, "Hello", f.String("title", "Untitled"))
	require.Equal(t, "Untitled", f.String("missing", "Untitled"))
	require.Equal(t, "Untitled", f.String("empty", "Untitled"))
	require.Equal(t, "2024", f.String("year", ""))
}

func TestFields_StringList(t *testing.T) {
	f := mustParse(t, "tags: [go, \"  web \", \"\"]\ncategories: Notes\nnums: [1, 2]\n")

	require.Equal(t, []string{"go", "web"}, f.StringList("tags"))
	require.Equal(t, []string{"Notes"}, f.StringList("categories"))
	require.Equal(t, []string{"1", "2"}, f.StringList("nums"))

	missing := f.StringList("missing")
	require.NotNil(t, missing)
	require.Empty(t, missing)
}

func TestFields_IsFalse_IsStrict(t *testing.T) {
	f := mustParse(t, "a: false\nb: true\nc: \"false\"\nd: no\n")

	require.True(t, f.IsFalse("a"))
	require.False(t, f.IsFalse("b"))
	require.False(t, f.IsFalse("c"), "the string \"false\" is not boolean false")
	require.False(t, f.IsFalse("missing"))
	// yaml.v3 follows YAML 1.2: "no" is a string, not a boolean.
	require.False(t, f.IsFalse("d"))
}

func TestFields_Time(t *testing.T) {
	f := mustParse(t, "date: 2024-01-05\nstamp: 2024-01-05T10:30:00Z\nbad: someday\n")

	got, raw, ok := f.Time("date")
	require.True(t, ok)
	require.Equal(t, "2024-01-05", raw)
	require.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), got)

	got, _, ok = f.Time("stamp")
	require.True(t, ok)
	require.Equal(t, 10, got.Hour())

	_, raw, ok = f.Time("bad")
	require.False(t, ok)
	require.Equal(t, "someday", raw)

	_, _, ok = f.Time("missing")
	require.False(t, ok)
}
