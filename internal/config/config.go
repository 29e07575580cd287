package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// DefaultConfigFile is the configuration file looked up when no -c flag is given.
const DefaultConfigFile = "sitegen.yaml"

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	Build   BuildConfig   `yaml:"build"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig holds the copy and identity rendered into pages.
type SiteConfig struct {
	Title    string     `yaml:"title"`
	URL      string     `yaml:"url,omitempty"`
	Brand    string     `yaml:"brand,omitempty"`    // nav bar logo text, defaults to Title
	Language string     `yaml:"language,omitempty"` // BCP 47 tag used for title collation
	Hero     HeroConfig `yaml:"hero"`
	CTA      CTAConfig  `yaml:"cta"`
}

// Link is a labelled URL used by call-to-action buttons.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// HeroConfig is the homepage hero section.
type HeroConfig struct {
	Heading      string `yaml:"heading"`
	Text         string `yaml:"text"`
	PrimaryCTA   Link   `yaml:"primary_cta"`
	SecondaryCTA Link   `yaml:"secondary_cta"`
}

// CTAConfig is the call-to-action band at the bottom of the homepage.
type CTAConfig struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
	Button  Link   `yaml:"button"`
}

// PathsConfig locates content, templates and output on disk.
type PathsConfig struct {
	Content   string `yaml:"content"`
	Posts     string `yaml:"posts"` // relative to Content
	Pages     string `yaml:"pages"` // relative to Content
	Templates string `yaml:"templates"`
	Output    string `yaml:"output"`
}

// PostsDir returns the posts directory path.
func (p PathsConfig) PostsDir() string { return filepath.Join(p.Content, p.Posts) }

// PagesDir returns the pages directory path.
func (p PathsConfig) PagesDir() string { return filepath.Join(p.Content, p.Pages) }

// BuildConfig tunes rendering limits.
type BuildConfig struct {
	IncludeDepth int `yaml:"include_depth"`
	RecentPosts  int `yaml:"recent_posts"`
	CardTags     int `yaml:"card_tags"`
	ListTags     int `yaml:"list_tags"`
	// DescriptionLength truncates card descriptions (runes). Negative disables truncation.
	DescriptionLength int    `yaml:"description_length"`
	VerifyLinks       bool   `yaml:"verify_links"`
	CodeStyle         string `yaml:"code_style,omitempty"` // chroma style name
	LineNumbers       bool   `yaml:"line_numbers"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load loads configuration from the specified file. The file must exist.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, ferrors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").Fatal().WithContext("path", configPath).Build()
	}
	return Parse(data)
}

// LoadOptional behaves like Load but falls back to defaults when configPath does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default()
	}
	return Load(configPath)
}

// Parse decodes YAML configuration text, expanding ${VAR} references from the
// environment, then applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").WithContext("path", configPath).Build()
	}

	example, err := Default()
	if err != nil {
		return err
	}
	example.Site.Title = "My Portfolio"
	example.Site.URL = "https://example.com"
	example.Metrics.Textfile = ""

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.FileSystemError("failed to create config directory").WithCause(err).WithContext("path", dir).Build()
		}
	}
	// #nosec G306 -- config file holds no secrets
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write config file").WithCause(err).WithContext("path", configPath).Build()
	}
	return nil
}
