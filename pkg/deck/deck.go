package deck

import "path/filepath"

// NotesPlaceholder is the notes text used for slides without notes.
const NotesPlaceholder = "(no notes)"

// Slide is one unit of presentation content. Empty strings mean the field
// is absent.
type Slide struct {
	Title  string // markdown, rendered as a heading
	Body   string // markdown, the main content
	Notes  string // plain text speaker notes
	Media  string // path to an image; output-relative after consolidation
	Layout Layout // declared layout, LayoutUnset when not given
}

// HasTitle reports whether the slide declares a title.
func (s Slide) HasTitle() bool { return s.Title != "" }

// HasBody reports whether the slide declares body text.
func (s Slide) HasBody() bool { return s.Body != "" }

// HasMedia reports whether the slide references a media file.
func (s Slide) HasMedia() bool { return s.Media != "" }

// NotesText returns the speaker notes, or NotesPlaceholder when absent.
func (s Slide) NotesText() string {
	if s.Notes == "" {
		return NotesPlaceholder
	}
	return s.Notes
}

// Class returns the CSS class of the slide's resolved layout.
func (s Slide) Class() string {
	return ResolveLayout(s).Class()
}

// Deck is an ordered sequence of slides.
type Deck struct {
	Slides []Slide

	// BaseDir is the directory relative media paths are resolved against.
	// Empty means the working directory.
	BaseDir string
}

// Len returns the number of slides.
func (d *Deck) Len() int { return len(d.Slides) }

// MediaCount returns the number of slides that reference a media file.
func (d *Deck) MediaCount() int {
	n := 0
	for _, s := range d.Slides {
		if s.HasMedia() {
			n++
		}
	}
	return n
}

// ResolveLayouts replaces every unset layout with its resolved value.
func (d *Deck) ResolveLayouts() {
	for i := range d.Slides {
		d.Slides[i].Layout = ResolveLayout(d.Slides[i])
	}
}

// MediaSource returns the filesystem path a slide's media refers to.
// Absolute paths are returned unchanged; relative paths are joined to
// BaseDir.
func (d *Deck) MediaSource(s Slide) string {
	if filepath.IsAbs(s.Media) || d.BaseDir == "" {
		return s.Media
	}
	return filepath.Join(d.BaseDir, s.Media)
}

// ParseSource parses data read from path. Relative media paths in the
// returned deck resolve against the directory containing path.
func ParseSource(path string, data []byte) (*Deck, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	d.SetSource(path)
	return d, nil
}

// SetSource records path as the deck's source document so relative media
// paths resolve against its directory.
func (d *Deck) SetSource(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d.BaseDir = filepath.Dir(abs)
}
