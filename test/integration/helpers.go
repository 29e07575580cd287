package integration

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// siteFixture copies the fixture site into a temp dir and returns its loaded
// configuration with every path rebased onto that copy.
func siteFixture(t *testing.T, src string) *config.Config {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, copyDir(src, root), "failed to copy fixture site")

	cfg, err := config.Load(filepath.Join(root, config.DefaultConfigFile))
	require.NoError(t, err)
	cfg.Paths.Content = filepath.Join(root, cfg.Paths.Content)
	cfg.Paths.Templates = filepath.Join(root, cfg.Paths.Templates)
	cfg.Paths.Output = filepath.Join(root, cfg.Paths.Output)
	return cfg
}

// treeHashes maps every file below root (slash separated, relative) to the
// SHA-256 of its contents.
func treeHashes(t *testing.T, root string) map[string]string {
	t.Helper()
	hashes := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		hashes[filepath.ToSlash(rel)] = hex.EncodeToString(sum[:])
		return nil
	})
	require.NoError(t, err, "failed to walk output")
	return hashes
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
