package deck

import (
	"strings"

	"github.com/matzehuels/slidedeck/pkg/errors"
)

// Layout is a presentation variant. The set is closed.
type Layout uint8

const (
	// LayoutUnset marks a slide that did not declare a layout.
	LayoutUnset Layout = iota
	// LayoutCentered centers content both ways.
	LayoutCentered
	// LayoutSimple flows content from the top left.
	LayoutSimple
)

// DefaultLayout is used for slides that do not declare one.
const DefaultLayout = LayoutCentered

// Class returns the CSS class name for the layout. LayoutUnset maps to the
// class of DefaultLayout, so Class never fails.
func (l Layout) Class() string {
	switch l {
	case LayoutSimple:
		return "simple"
	default:
		return "centered"
	}
}

// String returns the layout name as written in deck documents.
func (l Layout) String() string {
	if l == LayoutUnset {
		return "unset"
	}
	return l.Class()
}

// ParseLayout parses a layout name. Matching is case-insensitive so both
// "centered" and "Centered" are accepted.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "centered":
		return LayoutCentered, nil
	case "simple":
		return LayoutSimple, nil
	default:
		return LayoutUnset, errors.New(errors.ErrCodeParse, "unknown layout %q (must be one of: centered, simple)", s)
	}
}

// ResolveLayout returns the slide's declared layout, or DefaultLayout when
// none was declared. It depends only on declared fields.
func ResolveLayout(s Slide) Layout {
	if s.Layout != LayoutUnset {
		return s.Layout
	}
	return DefaultLayout
}
