package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slidedeck/pkg/assets"
	"github.com/matzehuels/slidedeck/pkg/deck"
	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/observability"
	"github.com/matzehuels/slidedeck/pkg/render"
)

// Runner executes compiles. Calls to Compile on the same Runner never
// overlap: a second caller waits for the compile in flight to finish.
type Runner struct {
	Logger *log.Logger

	mu sync.Mutex
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// compilation carries the state threaded through the stages.
type compilation struct {
	opts   Options
	source []byte
	style  string
	script string
	deck   *deck.Deck
	out    assets.Output
	html   []byte
}

// Compile runs read → parse → prepare → consolidate → render → write.
// The first failing stage is returned as a *StageError; Compile never
// terminates the process.
func (r *Runner) Compile(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnCompileStart(ctx, opts.Source)

	result := &Result{ID: uuid.NewString(), Source: opts.Source}
	logger := opts.Logger.With("compile", result.ID[:8])
	c := &compilation{opts: opts}

	stages := []struct {
		name string
		dur  *time.Duration
		fn   func() error
	}{
		{StageRead, &result.Stats.ReadTime, c.read},
		{StageParse, &result.Stats.ParseTime, c.parse},
		{StagePrepare, &result.Stats.PrepareTime, c.prepare},
		{StageConsolidate, &result.Stats.ConsolidateTime, func() error { return c.consolidate(logger) }},
		{StageRender, &result.Stats.RenderTime, c.render},
		{StageWrite, &result.Stats.WriteTime, c.write},
	}

	for _, st := range stages {
		stageStart := time.Now()
		err := st.fn()
		*st.dur = time.Since(stageStart)
		hooks.OnStageComplete(ctx, st.name, *st.dur, err)
		if err != nil {
			result.Stats.Total = time.Since(start)
			se := &StageError{Stage: st.name, Err: err}
			hooks.OnCompileComplete(ctx, opts.Source, slideCount(c.deck), result.Stats.Total, se)
			logger.Debug("compile failed", "stage", st.name, "err", err)
			return nil, se
		}
		logger.Debug("stage done", "stage", st.name, "duration", *st.dur)
	}

	result.Output = c.out
	result.Slides = c.deck.Len()
	result.Assets = c.deck.MediaCount()
	result.Size = len(c.html)
	result.Hash = hashBytes(c.html)
	result.Stats.Total = time.Since(start)

	hooks.OnCompileComplete(ctx, opts.Source, result.Slides, result.Stats.Total, nil)
	logger.Debug("compiled deck",
		"slides", result.Slides,
		"assets", result.Assets,
		"bytes", result.Size,
		"duration", result.Stats.Total)

	return result, nil
}

func (c *compilation) read() error {
	data, err := os.ReadFile(c.opts.Source)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read %s", c.opts.Source)
	}
	c.source = data

	if c.opts.StyleFile != "" {
		css, err := os.ReadFile(c.opts.StyleFile)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "read style %s", c.opts.StyleFile)
		}
		c.style = string(css)
	}
	if c.opts.ScriptFile != "" {
		js, err := os.ReadFile(c.opts.ScriptFile)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "read script %s", c.opts.ScriptFile)
		}
		c.script = string(js)
	}
	return nil
}

func (c *compilation) parse() error {
	d, err := deck.ParseSource(c.opts.Source, c.source)
	if err != nil {
		return err
	}
	c.deck = d
	return nil
}

func (c *compilation) prepare() error {
	for i, s := range c.deck.Slides {
		if !s.HasMedia() {
			continue
		}
		if err := errors.ValidateOutputKeeps(c.opts.OutputDir, c.deck.MediaSource(s), "media file"); err != nil {
			return errors.New(errors.ErrCodeInvalidPath, "slide %d: %s", i, errors.UserMessage(err))
		}
	}

	out, err := assets.Prepare(c.opts.OutputDir)
	if err != nil {
		return err
	}
	c.out = out
	return nil
}

func (c *compilation) consolidate(logger *log.Logger) error {
	return assets.Consolidate(c.deck, c.out.Assets, assets.WithLogger(logger))
}

func (c *compilation) render() error {
	c.deck.ResolveLayouts()

	opts := []render.Option{}
	if c.opts.Title != "" {
		opts = append(opts, render.WithTitle(c.opts.Title))
	}
	if c.opts.UnsafeHTML {
		opts = append(opts, render.WithUnsafeHTML())
	}
	if c.opts.StyleFile != "" {
		opts = append(opts, render.WithStyle(c.style))
	}
	if c.opts.ScriptFile != "" {
		opts = append(opts, render.WithScript(c.script))
	}

	html, err := render.Render(c.deck, opts...)
	if err != nil {
		return err
	}
	c.html = html
	return nil
}

func (c *compilation) write() error {
	path := c.out.IndexPath()
	if err := os.WriteFile(path, c.html, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

func slideCount(d *deck.Deck) int {
	if d == nil {
		return 0
	}
	return d.Len()
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
