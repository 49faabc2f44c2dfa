// Package render turns a deck into a single self-contained HTML document.
//
// The document inlines a stylesheet and a navigation script (see
// [DefaultStyle] and [DefaultScript]) and contains one container per slide:
//
//	<div class="slide centered" id="0" data-notes="(no notes)"><div>
//	  <h1>title</h1><img src="assets/pic.png">body
//	</div></div>
//
// Slide content is always composed in the order title, media, body. Title
// and body are markdown, converted with goldmark (GitHub flavour). The
// converter's output is trusted and embedded without further escaping, so
// its handling of raw HTML is the trust boundary: by default raw HTML is
// omitted, and [WithUnsafeHTML] passes it through for decks from trusted
// authors.
//
// Rendering is pure and deterministic: the same deck always yields the same
// bytes.
package render
