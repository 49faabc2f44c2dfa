// Package pipeline provides the compile pipeline for slidedeck.
//
// This package ties the deck model, asset consolidation and rendering
// together so the CLI, the watcher and the preview server all compile decks
// the same way.
//
// # Architecture
//
// A compile runs these stages in order, stopping at the first failure:
//
//  1. Read: load the source document (and any style/script overrides)
//  2. Parse: build a deck.Deck from the document
//  3. Prepare: refuse an output root holding any input, then recreate it
//  4. Consolidate: copy media into output/assets and rewrite paths
//  5. Render: resolve layouts and produce the HTML document
//  6. Write: store output/index.html
//
// Output preparation must precede consolidation (the assets directory has
// to exist), and consolidation must precede rendering (the document embeds
// the rewritten media paths).
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Compile(ctx, pipeline.Options{Source: "deck.yaml"})
//	if err != nil {
//	    var se *pipeline.StageError
//	    if errors.As(err, &se) {
//	        log.Printf("%s failed", se.Stage)
//	    }
//	}
//
// A failed compile may leave a prepared (empty or partial) output
// directory behind; no stage rolls back earlier ones.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidedeck/pkg/assets"
	"github.com/matzehuels/slidedeck/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultOutputDir is the output directory used when none is configured.
const DefaultOutputDir = "slides"

// Stage names, in execution order.
const (
	StageRead        = "read"
	StageParse       = "parse"
	StagePrepare     = "prepare"
	StageConsolidate = "consolidate"
	StageRender      = "render"
	StageWrite       = "write"
)

// =============================================================================
// Options - Compile Configuration
// =============================================================================

// Options contains all configuration for a single compile.
type Options struct {
	// Source is the deck document path.
	Source string `json:"source"`

	// OutputDir is destructively recreated on every compile.
	OutputDir string `json:"output_dir,omitempty"`

	// Title is the document <title>.
	Title string `json:"title,omitempty"`

	// UnsafeHTML passes raw HTML in markdown through to the document.
	UnsafeHTML bool `json:"unsafe_html,omitempty"`

	// StyleFile and ScriptFile replace the built-in stylesheet and script.
	StyleFile  string `json:"style_file,omitempty"`
	ScriptFile string `json:"script_file,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source document is required")
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	keep := []struct{ path, what string }{
		{o.Source, "source document"},
		{o.StyleFile, "style file"},
		{o.ScriptFile, "script file"},
	}
	for _, k := range keep {
		if k.path == "" {
			continue
		}
		if err := errors.ValidateOutputKeeps(o.OutputDir, k.path, k.what); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result describes a successful compile.
type Result struct {
	// ID identifies this compile in logs.
	ID string

	// Source is the compiled document.
	Source string

	// Output is the prepared output tree.
	Output assets.Output

	// Slides and Assets count the rendered slides and copied media files.
	Slides int
	Assets int

	// Hash is the SHA-256 of index.html.
	Hash string

	// Size is the length of index.html in bytes.
	Size int

	// Stats contains per-stage timings.
	Stats Stats
}

// IndexPath returns the path of the written document.
func (r *Result) IndexPath() string { return r.Output.IndexPath() }

// Stats contains compile timings.
type Stats struct {
	ReadTime        time.Duration
	ParseTime       time.Duration
	PrepareTime     time.Duration
	ConsolidateTime time.Duration
	RenderTime      time.Duration
	WriteTime       time.Duration
	Total           time.Duration
}

// =============================================================================
// StageError
// =============================================================================

// StageError reports which stage of a compile failed.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, errors.UserMessage(e.Err))
}

// Unwrap returns the stage's underlying error.
func (e *StageError) Unwrap() error { return e.Err }
