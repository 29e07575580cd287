package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file and starter templates"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultConfigFile
	}
	return RunInit(g, path, i.Force)
}

// RunInit writes an example configuration to configPath and starter templates
// next to it, in the directory the default paths.templates points at.
func RunInit(g *Global, configPath string, force bool) error {
	out := g.stdout()
	_, _ = fmt.Fprintln(out, "Initializing sitegen project")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}

	cfg, err := config.Default()
	if err != nil {
		return err
	}
	dir := cfg.Paths.Templates
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(configPath), dir)
	}
	written, err := templates.WriteStarter(dir, force)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	for _, f := range written {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", f)
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
