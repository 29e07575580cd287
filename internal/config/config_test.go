package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  title: Field Notes\n"))
	require.NoError(t, err)

	require.Equal(t, "Field Notes", cfg.Site.Title)
	require.Equal(t, "Field Notes", cfg.Site.Brand)
	require.Equal(t, "en", cfg.Site.Language)
	require.Equal(t, "./content", cfg.Paths.Content)
	require.Equal(t, filepath.Join("content", "posts"), cfg.Paths.PostsDir())
	require.Equal(t, filepath.Join("content", "pages"), cfg.Paths.PagesDir())
	require.Equal(t, "./public", cfg.Paths.Output)
	require.Equal(t, DefaultIncludeDepth, cfg.Build.IncludeDepth)
	require.Equal(t, DefaultRecentPosts, cfg.Build.RecentPosts)
	require.Equal(t, DefaultCardTags, cfg.Build.CardTags)
	require.Equal(t, DefaultListTags, cfg.Build.ListTags)
	require.Equal(t, DefaultDescriptionLength, cfg.Build.DescriptionLength)
	require.Equal(t, DefaultCodeStyle, cfg.Build.CodeStyle)
	require.Equal(t, "/contact/", cfg.Site.Hero.PrimaryCTA.URL)
}

func TestParse_ExplicitValuesPreserved(t *testing.T) {
	raw := `
site:
  title: Notes
  brand: N.
paths:
  output: ./dist
build:
  recent_posts: 3
  description_length: -1
  verify_links: true
  line_numbers: true
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, "N.", cfg.Site.Brand)
	require.Equal(t, "./dist", cfg.Paths.Output)
	require.Equal(t, 3, cfg.Build.RecentPosts)
	require.Equal(t, -1, cfg.Build.DescriptionLength)
	require.True(t, cfg.Build.VerifyLinks)
	require.True(t, cfg.Build.LineNumbers)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEGEN_TEST_OUT", "/tmp/site-out")
	cfg, err := Parse([]byte("paths:\n  output: ${SITEGEN_TEST_OUT}\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/site-out", cfg.Paths.Output)
}

func TestParse_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"negative limit":      "build:\n  card_tags: -2\n",
		"output over content": "paths:\n  content: ./site\n  output: ./site\n",
		"absolute posts dir":  "paths:\n  posts: /abs/posts\n",
		"bad language":        "site:\n  language: \"not a tag!\"\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation), "got %v", err)
		})
	}
}

func TestParse_ValidationMessagesNameTheField(t *testing.T) {
	_, err := Parse([]byte("build:\n  card_tags: -2\n"))
	require.ErrorContains(t, err, "build.card_tags must not be negative")

	_, err = Parse([]byte("paths:\n  templates: ./out\n  output: ./out\n"))
	require.ErrorContains(t, err, "paths.output must differ from paths.templates")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("site: [unclosed"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadOptional_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), DefaultConfigFile))
	require.NoError(t, err)
	require.Equal(t, "My Portfolio", cfg.Site.Title)
	require.Equal(t, "./templates", cfg.Paths.Templates)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Portfolio", cfg.Site.Title)
	require.Equal(t, DefaultRecentPosts, cfg.Build.RecentPosts)

	err = Init(path, false)
	require.Error(t, err, "existing config must not be overwritten without force")
	require.NoError(t, Init(path, true))
}

func TestLoadEnvFile_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("SITEGEN_ENV_A=from-file\nSITEGEN_ENV_B=from-file\n"), 0o600))
	t.Setenv("SITEGEN_ENV_A", "from-process")
	t.Setenv("SITEGEN_ENV_B", "")
	require.NoError(t, os.Unsetenv("SITEGEN_ENV_B"))

	require.NoError(t, loadEnvFile())
	require.Equal(t, "from-process", os.Getenv("SITEGEN_ENV_A"))
	require.Equal(t, "from-file", os.Getenv("SITEGEN_ENV_B"))
}
