package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/slidedeck/pkg/deck"
	"github.com/matzehuels/slidedeck/pkg/errors"
)

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Slides"

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	title    string
	style    string
	script   string
	markdown *Markdown
}

// WithTitle sets the document <title>.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithStyle replaces the inlined stylesheet.
func WithStyle(css string) Option { return func(r *renderer) { r.style = css } }

// WithScript replaces the trailing script.
func WithScript(js string) Option { return func(r *renderer) { r.script = js } }

// WithUnsafeHTML lets raw HTML in markdown through to the document.
func WithUnsafeHTML() Option { return func(r *renderer) { r.markdown = NewMarkdown(true) } }

// WithMarkdown sets the markdown converter.
func WithMarkdown(m *Markdown) Option { return func(r *renderer) { r.markdown = m } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		title:    DefaultTitle,
		style:    DefaultStyle,
		script:   DefaultScript,
		markdown: safeMarkdown,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render produces a complete HTML document for d. Each slide becomes one
// container, in deck order, whose content is title, media then body.
// Markdown output is embedded verbatim; attribute values are escaped.
func Render(d *deck.Deck, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">` + "\n")
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, "<style>\n%s\n</style>\n", r.style)
	buf.WriteString("</head>\n<body>\n")

	for i, s := range d.Slides {
		if err := r.renderSlide(&buf, i, s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "slide %d", i)
		}
	}

	fmt.Fprintf(&buf, "<script type=\"text/javascript\">\n%s\n</script>\n", r.script)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func (r *renderer) renderSlide(buf *bytes.Buffer, index int, s deck.Slide) error {
	fmt.Fprintf(buf, `<div class="slide %s" id="%d" data-notes="%s">`,
		s.Class(), index, html.EscapeString(s.NotesText()))
	buf.WriteString("<div>")

	frag, err := r.fragment(s)
	if err != nil {
		return err
	}
	buf.WriteString(frag)

	buf.WriteString("</div></div>\n")
	return nil
}

// fragment composes a slide's content: title heading, media image, body.
// Absent fields contribute nothing.
func (r *renderer) fragment(s deck.Slide) (string, error) {
	var buf bytes.Buffer
	if s.HasTitle() {
		title, err := r.markdown.Convert(s.Title)
		if err != nil {
			return "", fmt.Errorf("title: %w", err)
		}
		fmt.Fprintf(&buf, "<h1>%s</h1>", title)
	}
	if s.HasMedia() {
		fmt.Fprintf(&buf, `<img src="%s">`, html.EscapeString(s.Media))
	}
	if s.HasBody() {
		body, err := r.markdown.Convert(s.Body)
		if err != nil {
			return "", fmt.Errorf("body: %w", err)
		}
		buf.WriteString(body)
	}
	return buf.String(), nil
}

// Fragment renders a single slide's content with the default options.
func Fragment(s deck.Slide) (string, error) {
	r := newRenderer()
	return r.fragment(s)
}
