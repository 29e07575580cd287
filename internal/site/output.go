package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// ErrUnsafePath is returned for output paths that are absolute or escape the output root.
var ErrUnsafePath = errors.New("output path escapes output directory")

// Output is where generated files go. Paths are slash separated and relative
// to the output root.
type Output interface {
	Prepare() error
	WriteFile(rel string, data []byte) error
}

// FSOutput is an Output whose written files can be read back.
type FSOutput interface {
	Output
	FS() fs.FS
}

// DirOutput writes files below a directory on disk.
type DirOutput struct {
	root string
}

// NewDirOutput returns an Output rooted at dir.
func NewDirOutput(dir string) *DirOutput {
	return &DirOutput{root: filepath.Clean(dir)}
}

// Prepare ensures the output directory exists.
func (o *DirOutput) Prepare() error {
	if err := os.MkdirAll(o.root, 0o755); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithCause(err).WithContext("path", o.root).Build()
	}
	return nil
}

// WriteFile writes data to rel, creating parent directories.
func (o *DirOutput) WriteFile(rel string, data []byte) error {
	full, err := o.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithCause(err).WithContext("path", filepath.Dir(full)).Build()
	}
	// #nosec G306 -- generated site files are public
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write output file").
			WithCause(err).WithContext("path", full).Build()
	}
	return nil
}

// FS exposes the output directory for reading.
func (o *DirOutput) FS() fs.FS { return os.DirFS(o.root) }

func (o *DirOutput) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, rel)
	}
	return filepath.Join(o.root, clean), nil
}

// outputPath maps a site URL such as /posts/hello/ to its index file.
func outputPath(url string) string {
	return strings.TrimPrefix(url, "/") + "index.html"
}
