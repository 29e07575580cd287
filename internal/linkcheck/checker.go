// Package linkcheck verifies that internal links in generated HTML resolve to
// files in the output tree.
package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

// Broken is an internal link whose target is missing from the output.
type Broken struct {
	Page   string // output file containing the link, slash separated
	URL    string // link as written
	Target string // output path that was looked up
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: %s (missing %s)", b.Page, b.URL, b.Target)
}

// Checker resolves links against an output filesystem.
type Checker struct {
	fsys   fs.FS
	host   string
	logger *slog.Logger
}

// NewChecker creates a Checker. Absolute links whose host matches siteURL are
// treated as internal; other absolute links are ignored.
func NewChecker(fsys fs.FS, siteURL string, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	host := ""
	if u, err := url.Parse(siteURL); err == nil {
		host = u.Host
	}
	return &Checker{fsys: fsys, host: host, logger: logger}
}

// Check scans the given HTML files (slash-separated, relative to the root of the
// filesystem) and returns broken internal links. Each page/link pair is reported once.
func (c *Checker) Check(ctx context.Context, pages []string) ([]Broken, error) {
	var broken []Broken
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return broken, err
		}
		found, err := c.checkPage(page)
		if err != nil {
			return broken, err
		}
		broken = append(broken, found...)
	}
	return broken, nil
}

func (c *Checker) checkPage(page string) ([]Broken, error) {
	f, err := c.fsys.Open(page)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", page, err)
	}
	defer func() { _ = f.Close() }()

	links, err := ExtractLinks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", page, err)
	}

	seen := sets.New[string]()
	var broken []Broken
	for _, link := range links {
		if !seen.AddNew(link.URL) {
			continue
		}
		target, ok := c.resolve(page, link.URL)
		if !ok {
			continue
		}
		if c.exists(target) {
			continue
		}
		c.logger.Debug("Broken internal link", logfields.File(page), logfields.URL(link.URL))
		broken = append(broken, Broken{Page: page, URL: link.URL, Target: target})
	}
	return broken, nil
}

// resolve maps a link to a slash-separated output path. ok is false for links
// that are not checked (external, fragments, special schemes).
func (c *Checker) resolve(page, raw string) (string, bool) {
	if shouldSkip(raw) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" {
		if c.host == "" || u.Host != c.host {
			return "", false
		}
	}

	p := u.Path
	if p == "" {
		return "", false
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join("/", path.Dir(page), p)
	}
	target := strings.TrimPrefix(path.Clean(p), "/")
	if target == "" || target == "." {
		target = "index.html"
	}
	return target, true
}

func (c *Checker) exists(target string) bool {
	info, err := fs.Stat(c.fsys, target)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = fs.Stat(c.fsys, path.Join(target, "index.html"))
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
