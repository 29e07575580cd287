package markdown

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when Options.Style is empty.
const DefaultStyle = "github"

// Options controls how Markdown bodies are turned into HTML.
type Options struct {
	// Style names the chroma style for fenced code blocks.
	Style string
	// LineNumbers adds line numbers to highlighted code blocks.
	LineNumbers bool
}

// Renderer converts Markdown to HTML. It is safe for concurrent use once built.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer with GitHub flavoured Markdown, hard line breaks, raw
// HTML passthrough and chroma highlighting for fenced code.
//
// A fence without a recognised language is highlighted by content detection.
func New(opts Options) *Renderer {
	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(4),
					chromahtml.WithLineNumbers(opts.LineNumbers),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
