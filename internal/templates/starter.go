package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed starter/*.html
var starterFS embed.FS

// Starter returns the built-in starter templates (main and header).
func Starter() fs.FS {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		panic(err)
	}
	return sub
}

// WriteStarter copies the starter templates into dir. Existing files are kept
// unless force is set. It returns the paths that were written.
func WriteStarter(dir string, force bool) ([]string, error) {
	entries, err := fs.ReadDir(Starter(), ".")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create templates directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if !force {
			if _, err := os.Stat(target); err == nil {
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				return written, err
			}
		}
		data, err := fs.ReadFile(Starter(), entry.Name())
		if err != nil {
			return written, err
		}
		// #nosec G306 -- templates are meant to be world-readable
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
