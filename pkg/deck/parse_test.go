package deck

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/slidedeck/pkg/errors"
)

func TestParse(t *testing.T) {
	src := `
- title: "# Hello"
  body: Some **markdown**
  notes: ok
  media: /abs/path/to/pic.png
  layout: simple
- text: body via alias
- {}
- title: Ignored keys
  color: red
  extra: [1, 2]
`
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}

	first := d.Slides[0]
	if first.Title != "# Hello" {
		t.Errorf("Title = %q, want %q", first.Title, "# Hello")
	}
	if first.Body != "Some **markdown**" {
		t.Errorf("Body = %q, want %q", first.Body, "Some **markdown**")
	}
	if first.Notes != "ok" {
		t.Errorf("Notes = %q, want %q", first.Notes, "ok")
	}
	if first.Media != "/abs/path/to/pic.png" {
		t.Errorf("Media = %q, want %q", first.Media, "/abs/path/to/pic.png")
	}
	if first.Layout != LayoutSimple {
		t.Errorf("Layout = %v, want %v", first.Layout, LayoutSimple)
	}

	if got := d.Slides[1].Body; got != "body via alias" {
		t.Errorf("text alias Body = %q, want %q", got, "body via alias")
	}
	if got := d.Slides[2]; got != (Slide{}) {
		t.Errorf("empty mapping = %+v, want zero Slide", got)
	}
	if got := d.Slides[3].Title; got != "Ignored keys" {
		t.Errorf("Title = %q, want %q", got, "Ignored keys")
	}
}

func TestParseBodyWinsOverText(t *testing.T) {
	d, err := Parse([]byte("- body: from body\n  text: from text\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := d.Slides[0].Body; got != "from body" {
		t.Errorf("Body = %q, want %q", got, "from body")
	}
}

func TestParsePreservesOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("- title: slide-")
		b.WriteString(strings.Repeat("x", i))
		b.WriteString("\n")
	}
	d, err := Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, s := range d.Slides {
		want := "slide-" + strings.Repeat("x", i)
		if s.Title != want {
			t.Fatalf("Slides[%d].Title = %q, want %q", i, s.Title, want)
		}
	}
}

func TestParseEmptySequence(t *testing.T) {
	for _, src := range []string{"[]", "[]\n# nothing here\n"} {
		d, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if d.Len() != 0 {
			t.Errorf("Parse(%q) Len() = %d, want 0", src, d.Len())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty document", "", "empty document"},
		{"single object", "title: not a list\n", "a mapping"},
		{"scalar", "hello\n", "a scalar"},
		{"null", "~\n", "null"},
		{"invalid yaml", "- title: [unclosed\n", "invalid YAML"},
		{"slide not a mapping", "- just text\n", "slide 0"},
		{"media is a mapping", "- {}\n- media: {path: x}\n", "slide 1"},
		{"media is a list", "- media: [a, b]\n", "slide 0"},
		{"media is empty", "- media: \"\"\n", "media must be a non-empty path"},
		{"unknown layout", "- layout: sideways\n", "unknown layout"},
		{"alias to a scalar slide", "- &s just text\n- *s\n", "slide 0"},
		{"aliased empty media", "- {title: &e \"\"}\n- media: *e\n", "media must be a non-empty path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseAliases(t *testing.T) {
	src := `
- &intro
  title: Hello
  notes: again
- *intro
- title: Pictures
  media: &pic img/pic.png
- media: *pic
  layout: &l simple
- layout: *l
`
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", d.Len())
	}
	if d.Slides[1] != d.Slides[0] {
		t.Errorf("aliased slide = %+v, want %+v", d.Slides[1], d.Slides[0])
	}
	if got := d.Slides[3].Media; got != "img/pic.png" {
		t.Errorf("aliased Media = %q, want %q", got, "img/pic.png")
	}
	if got := d.Slides[4].Layout; got != LayoutSimple {
		t.Errorf("aliased Layout = %v, want %v", got, LayoutSimple)
	}
}

func TestParseAliasedSequence(t *testing.T) {
	d, err := Parse([]byte("- &only {title: One}\n- *only\n- *only\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, s := range d.Slides {
		if s.Title != "One" {
			t.Errorf("Slides[%d].Title = %q, want One", i, s.Title)
		}
	}
}

func TestParseNullMediaIsAbsent(t *testing.T) {
	d, err := Parse([]byte("- media: ~\n  title: t\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Slides[0].HasMedia() {
		t.Error("null media should be absent")
	}
}

func TestParseSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")

	d, err := ParseSource(path, []byte("- media: img/pic.png\n- media: /abs/pic.png\n"))
	if err != nil {
		t.Fatalf("ParseSource() error = %v", err)
	}
	if d.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", d.BaseDir, dir)
	}
	if got, want := d.MediaSource(d.Slides[0]), filepath.Join(dir, "img", "pic.png"); got != want {
		t.Errorf("MediaSource(relative) = %q, want %q", got, want)
	}
	if got := d.MediaSource(d.Slides[1]); got != "/abs/pic.png" {
		t.Errorf("MediaSource(absolute) = %q, want %q", got, "/abs/pic.png")
	}
}

func TestParseSourceError(t *testing.T) {
	_, err := ParseSource("deck.yaml", []byte("title: x\n"))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("ParseSource() error = %v, want %v", err, errors.ErrCodeParse)
	}
}
