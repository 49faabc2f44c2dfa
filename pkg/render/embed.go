package render

import _ "embed"

// DefaultStyle is the stylesheet inlined into every document unless
// overridden with WithStyle.
//
//go:embed static/style.css
var DefaultStyle string

// DefaultScript is the navigation script appended to every document unless
// overridden with WithScript.
//
//go:embed static/script.js
var DefaultScript string
