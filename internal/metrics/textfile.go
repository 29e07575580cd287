package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes every registered metric in the Prometheus text format to
// path, creating the parent directory. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return errors.New("metrics: recorder has no registry")
	}
	return WriteRegistryTextfile(p.registry, path)
}

// WriteRegistryTextfile exports any gatherer to a textfile-collector file.
func WriteRegistryTextfile(g prom.Gatherer, path string) error {
	if path == "" {
		return errors.New("metrics: textfile path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("metrics: create textfile directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
