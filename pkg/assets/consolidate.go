package assets

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidedeck/pkg/deck"
	"github.com/matzehuels/slidedeck/pkg/errors"
)

// Option configures Consolidate.
type Option func(*consolidator)

type consolidator struct {
	logger *log.Logger
}

// WithLogger sets the logger used for copy and collision messages.
func WithLogger(l *log.Logger) Option {
	return func(c *consolidator) { c.logger = l }
}

// Consolidate copies every slide's media file into assetDir and rewrites
// the slide's Media to "assets/<name>". Relative media paths resolve
// against d.BaseDir. It stops at the first failing slide.
func Consolidate(d *deck.Deck, assetDir string, opts ...Option) error {
	c := consolidator{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&c)
	}

	copied := make(map[string]string) // base name -> source path
	for i := range d.Slides {
		s := &d.Slides[i]
		if !s.HasMedia() {
			continue
		}

		src := d.MediaSource(*s)
		name := filepath.Base(src)
		if err := errors.ValidateMediaName(name); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "slide %d: media %q", i, s.Media)
		}

		if prev, ok := copied[name]; ok && !sameFile(prev, src) {
			c.logger.Warn("media file name collision, later file wins", "name", name, "previous", prev, "source", src, "slide", i)
		}

		dst := filepath.Join(assetDir, name)
		if err := copyFile(src, dst); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "slide %d: copy media %q", i, s.Media)
		}
		c.logger.Debug("copied media", "slide", i, "source", src, "dest", dst)

		copied[name] = src
		s.Media = path.Join(DirName, name)
	}
	return nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ai, bi)
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
