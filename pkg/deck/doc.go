// Package deck provides the in-memory model of a slide deck and the parser
// that builds it from a YAML document.
//
// # Document Format
//
// A deck document is a YAML sequence of slide mappings. Every key is
// optional and unknown keys are ignored:
//
//	- title: "# Welcome"
//	  body: |
//	    Some **markdown** text.
//	  notes: Say hello first.
//	  media: images/logo.png
//	  layout: simple
//	- text: "`text` is accepted as an alias of `body`"
//
// Anchors and aliases may reuse a whole slide or a single value.
//
// The top-level value must be a sequence; anything else, including an empty
// document, is rejected with a [errors.ErrCodeParse] error.
//
// # Layouts
//
// Each slide resolves to exactly one [Layout] through [ResolveLayout]. The
// declared `layout` key wins; slides without one use [DefaultLayout]
// (centered). Every layout maps to a single stable CSS class via
// [Layout.Class].
//
// # Lifecycle
//
// A [Deck] is built once per compile. Only media consolidation mutates it
// (rewriting [Slide.Media] in place); slide order is display order and is
// never changed by any stage.
package deck
