package config

import (
	"path/filepath"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// ValidateConfig validates a configuration whose defaults have already been applied.
func ValidateConfig(cfg *Config) error {
	if err := validateBuild(&cfg.Build); err != nil {
		return err
	}
	if err := validatePaths(&cfg.Paths); err != nil {
		return err
	}
	if _, err := language.Parse(cfg.Site.Language); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "site.language is not a valid BCP 47 tag").
			Fatal().WithContext("value", cfg.Site.Language).Build()
	}
	return nil
}

func validateBuild(b *BuildConfig) error {
	limits := []struct {
		field string
		value int
	}{
		{"build.include_depth", b.IncludeDepth},
		{"build.recent_posts", b.RecentPosts},
		{"build.card_tags", b.CardTags},
		{"build.list_tags", b.ListTags},
	}
	for _, l := range limits {
		if l.value < 0 {
			return ferrors.ValidationError(l.field+" must not be negative").WithContext("value", l.value).Build()
		}
	}
	return nil
}

func validatePaths(p *PathsConfig) error {
	output := filepath.Clean(p.Output)
	for field, dir := range map[string]string{
		"paths.content":   p.Content,
		"paths.templates": p.Templates,
	} {
		if filepath.Clean(dir) == output {
			return ferrors.ValidationError("paths.output must differ from "+field).WithContext("path", dir).Build()
		}
	}
	if filepath.IsAbs(p.Posts) || filepath.IsAbs(p.Pages) {
		return ferrors.ValidationError("paths.posts and paths.pages must be relative to paths.content").Build()
	}
	return nil
}
