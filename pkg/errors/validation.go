package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputDir rejects output directories that must never be removed
// by the destructive clean: the empty path, the working directory, the
// filesystem root and anything that escapes upward.
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	clean := filepath.Clean(dir)
	switch {
	case clean == ".":
		return New(ErrCodeInvalidPath, "output directory cannot be the working directory")
	case clean == string(filepath.Separator) || filepath.Dir(clean) == clean:
		return New(ErrCodeInvalidPath, "output directory cannot be a filesystem root")
	case clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)):
		return New(ErrCodeInvalidPath, "output directory cannot be a parent of the working directory")
	}
	return nil
}

// ValidateMediaName checks that name is usable as a file name inside the
// assets directory.
func ValidateMediaName(name string) error {
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return New(ErrCodeInvalidPath, "media path has no file name")
	}
	if strings.ContainsRune(name, '\x00') {
		return New(ErrCodeInvalidPath, "media file name contains a null byte")
	}
	return nil
}

// ValidateOutputKeeps rejects an output directory whose destructive clean
// would remove path: dir must neither be path nor one of its ancestors.
// what names path in the error message.
func ValidateOutputKeeps(dir, path, what string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "resolve output directory %s", dir)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "resolve %s", path)
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		// Different volumes.
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return New(ErrCodeInvalidPath, "output directory %s contains the %s %s", dir, what, path)
}
