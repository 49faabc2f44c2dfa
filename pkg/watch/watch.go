// Package watch re-runs a callback when a single file changes on disk.
//
// The watcher observes the file's parent directory rather than the file
// itself, so editors that save by writing a temporary file and renaming it
// over the original keep triggering. Only events naming the watched path
// count, and pure permission/attribute changes (fsnotify's Chmod, the
// closest analogue of an access event) are ignored.
//
// Bursts of events are debounced: a trigger fires once the file has been
// quiet for the debounce window. Triggers run the callback on the Run
// goroutine, so two callbacks never overlap.
package watch

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/observability"
)

// DefaultDebounce is the quiet window used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for event tracing.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithErrorHandler sets the function called for errors reported by the
// file observation layer. Errors never stop the watcher.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// Watcher watches one file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	onError  func(error)
}

// New creates a watcher for path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	w := &Watcher{
		path:     filepath.Clean(abs),
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard),
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Debounce returns the quiet window.
func (w *Watcher) Debounce() time.Duration { return w.debounce }

// Run watches until ctx is cancelled, calling fn once per debounced burst
// of relevant events. It returns nil on cancellation and an error only if
// the watch cannot be established or the event stream closes.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeWatch, err, "create watcher")
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeWatch, err, "watch %s", dir)
	}
	w.logger.Debug("watching", "dir", dir, "file", filepath.Base(w.path), "debounce", w.debounce)

	return w.loop(ctx, fw.Events, fw.Errors, fn)
}

// loop is the event loop behind Run, split out so it can be driven by
// synthetic events.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, fn func(context.Context)) error {
	hooks := observability.Watch()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending int
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return errors.New(errors.ErrCodeWatch, "event stream closed")
			}
			if !w.Relevant(ev) {
				continue
			}
			w.logger.Debug("event", "op", ev.Op.String(), "name", ev.Name)
			pending++
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return errors.New(errors.ErrCodeWatch, "error stream closed")
			}
			werr := errors.Wrap(errors.ErrCodeWatch, err, "watch %s", w.path)
			hooks.OnError(ctx, w.path, werr)
			w.onError(werr)

		case <-fire:
			fire = nil
			hooks.OnTrigger(ctx, w.path, pending)
			pending = 0
			fn(ctx)
		}
	}
}

// Relevant reports whether ev names the watched file and is more than a
// pure attribute change.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if ev.Op&^fsnotify.Chmod == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == w.path
}
