package assets

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/slidedeck/pkg/errors"
)

// DirName is the name of the assets subdirectory inside the output root.
const DirName = "assets"

// Output describes a prepared output tree.
type Output struct {
	Root   string // output root, holds index.html
	Assets string // Root/assets
}

// IndexPath returns the path of the rendered document.
func (o Output) IndexPath() string {
	return filepath.Join(o.Root, "index.html")
}

// Prepare removes root if it exists, then creates root and root/assets.
func Prepare(root string) (Output, error) {
	if err := errors.ValidateOutputDir(root); err != nil {
		return Output{}, err
	}

	if _, err := os.Stat(root); err == nil {
		if err := os.RemoveAll(root); err != nil {
			return Output{}, errors.Wrap(errors.ErrCodeIO, err, "clean %s", root)
		}
	} else if !os.IsNotExist(err) {
		return Output{}, errors.Wrap(errors.ErrCodeIO, err, "stat %s", root)
	}

	out := Output{Root: root, Assets: filepath.Join(root, DirName)}
	if err := os.MkdirAll(out.Assets, 0o755); err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeIO, err, "create %s", out.Assets)
	}
	return out, nil
}
