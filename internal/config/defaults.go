package config

import "fmt"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// Default limits; zero values in the file fall back to these.
const (
	DefaultIncludeDepth      = 10
	DefaultRecentPosts       = 6
	DefaultCardTags          = 3
	DefaultListTags          = 5
	DefaultDescriptionLength = 160
	DefaultCodeStyle         = "github"
)

// SiteDefaultApplier handles site identity and homepage copy defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	site := &cfg.Site
	if site.Title == "" {
		site.Title = "My Portfolio"
	}
	if site.URL == "" {
		site.URL = "https://example.com"
	}
	if site.Brand == "" {
		site.Brand = site.Title
	}
	if site.Language == "" {
		site.Language = "en"
	}

	hero := &site.Hero
	if hero.Heading == "" {
		hero.Heading = fmt.Sprintf("Welcome to %s", site.Title)
	}
	if hero.Text == "" {
		hero.Text = "Explore my work and latest articles below."
	}
	defaultLink(&hero.PrimaryCTA, "Get in Touch", "/contact/")
	defaultLink(&hero.SecondaryCTA, "View My Work", "/portfolio/")

	cta := &site.CTA
	if cta.Heading == "" {
		cta.Heading = "Ready to Start a Project?"
	}
	if cta.Text == "" {
		cta.Text = "Let's work together to bring your ideas to life"
	}
	defaultLink(&cta.Button, "Contact Me Today", "/contact/")
	return nil
}

func defaultLink(l *Link, label, url string) {
	if l.Label == "" {
		l.Label = label
	}
	if l.URL == "" {
		l.URL = url
	}
}

// PathsDefaultApplier handles directory layout defaults.
type PathsDefaultApplier struct{}

func (p *PathsDefaultApplier) Domain() string { return "paths" }

func (p *PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	paths := &cfg.Paths
	if paths.Content == "" {
		paths.Content = "./content"
	}
	if paths.Posts == "" {
		paths.Posts = "posts"
	}
	if paths.Pages == "" {
		paths.Pages = "pages"
	}
	if paths.Templates == "" {
		paths.Templates = "./templates"
	}
	if paths.Output == "" {
		paths.Output = "./public"
	}
	return nil
}

// BuildDefaultApplier handles rendering limit defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	build := &cfg.Build
	if build.IncludeDepth == 0 {
		build.IncludeDepth = DefaultIncludeDepth
	}
	if build.RecentPosts == 0 {
		build.RecentPosts = DefaultRecentPosts
	}
	if build.CardTags == 0 {
		build.CardTags = DefaultCardTags
	}
	if build.ListTags == 0 {
		build.ListTags = DefaultListTags
	}
	if build.DescriptionLength == 0 {
		build.DescriptionLength = DefaultDescriptionLength
	}
	if build.CodeStyle == "" {
		build.CodeStyle = DefaultCodeStyle
	}
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&SiteDefaultApplier{},
		&PathsDefaultApplier{},
		&BuildDefaultApplier{},
	}
}

// applyDefaults runs every domain applier in order.
func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", applier.Domain(), err)
		}
	}
	return nil
}
