package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts markdown text to an HTML fragment.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a GitHub-flavoured markdown converter. Raw HTML in the
// source is omitted unless unsafe is true.
func NewMarkdown(unsafe bool) *Markdown {
	var rendererOpts []goldmark.Option
	if unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	return &Markdown{
		md: goldmark.New(append([]goldmark.Option{goldmark.WithExtensions(extension.GFM)}, rendererOpts...)...),
	}
}

// Convert renders src to an HTML fragment.
func (m *Markdown) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var safeMarkdown = NewMarkdown(false)

// MarkdownToHTML renders src with the default (safe) converter.
func MarkdownToHTML(src string) (string, error) {
	return safeMarkdown.Convert(src)
}
