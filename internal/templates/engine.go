// Package templates implements the site's token template engine.
//
// Templates are plain HTML files named <name>.html. Two directives are recognised:
//
//	{{include: name}}   replaced by the expanded text of another template
//	{{ variable }}      replaced by a value from the render data
//
// Include expansion runs first and is bounded by a maximum depth. Variable
// substitution is a single pass; substituted values are never rescanned.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/navigation"
)

// DefaultMaxDepth bounds include recursion.
const DefaultMaxDepth = 10

// Warning kinds passed to the warning hook.
const (
	WarnMissingInclude = "missing_include"
	WarnDepthExceeded  = "include_depth"
)

// ErrTemplateNotFound is returned when the requested template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

var (
	includePattern  = regexp.MustCompile(`\{\{\s*include:\s*(\w+)\s*\}\}`)
	variablePattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)
)

// Data is the flat variable set a template is rendered with.
type Data map[string]any

// Engine loads and renders templates from a filesystem.
type Engine struct {
	fsys     fs.FS
	maxDepth int
	brand    string
	logger   *slog.Logger
	onWarn   func(kind, template string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth overrides the include depth limit. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithBrand sets the brand text shown in the navigation bar.
func WithBrand(brand string) Option {
	return func(e *Engine) { e.brand = brand }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWarningHook registers a callback invoked for every expansion warning.
// template names the missing include; it is empty for depth warnings.
func WithWarningHook(fn func(kind, template string)) Option {
	return func(e *Engine) { e.onWarn = fn }
}

// New creates an Engine reading <name>.html files from the root of fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fsys:     fsys,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load returns the raw text of the named template.
func (e *Engine) Load(name string) (string, error) {
	data, err := fs.ReadFile(e.fsys, name+".html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(data), nil
}

// ExpandIncludes replaces every include directive with the expanded text of the
// named template. Missing targets expand to nothing. Once the depth limit is
// reached the remaining text is returned as is, so templates that include each
// other terminate after a bounded number of expansions.
func (e *Engine) ExpandIncludes(text string) string {
	return e.expand(text, 0)
}

func (e *Engine) expand(text string, depth int) string {
	if depth >= e.maxDepth {
		if includePattern.MatchString(text) {
			e.logger.Error("Template include depth exceeded (possible circular reference)",
				slog.Int("max_depth", e.maxDepth))
			e.warn(WarnDepthExceeded, "")
		}
		return text
	}

	return includePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := includePattern.FindStringSubmatch(match)[1]
		included, err := e.Load(name)
		if err != nil {
			e.logger.Warn("Included template not found", logfields.Template(name), logfields.Error(err))
			e.warn(WarnMissingInclude, name)
			return ""
		}
		return e.expand(included, depth+1)
	})
}

func (e *Engine) warn(kind, template string) {
	if e.onWarn != nil {
		e.onWarn(kind, template)
	}
}

// Render loads a template, injects the navigation bar when nav is non-nil,
// expands includes and substitutes variables. data is not modified.
func (e *Engine) Render(name string, data Data, nav *navigation.Menu) (string, error) {
	text, err := e.Load(name)
	if err != nil {
		return "", err
	}

	if nav != nil {
		withNav := make(Data, len(data)+1)
		for k, v := range data {
			withNav[k] = v
		}
		withNav["navigation"] = nav.HTML(e.brand)
		data = withNav
	}

	return Substitute(e.ExpandIncludes(text), data), nil
}

// Substitute replaces {{ variable }} tokens with values from data. Lists are
// joined with ", "; unknown names and falsy values (nil, "", false, 0) render as
// the empty string.
func Substitute(text string, data Data) string {
	return variablePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		value, ok := data[name]
		if !ok {
			return ""
		}
		return formatValue(value)
	})
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			if item != nil {
				parts[i] = fmt.Sprint(item)
			}
		}
		return strings.Join(parts, ", ")
	case bool:
		if !v {
			return ""
		}
		return "true"
	case int:
		if v == 0 {
			return ""
		}
	case int64:
		if v == 0 {
			return ""
		}
	case float64:
		if v == 0 || math.IsNaN(v) {
			return ""
		}
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
