package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/cmd/sitegen/commands"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the selected command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(stderr, "sitegen: panic: %v\n%s", r, debug.Stack())
			code = 1
		}
	}()

	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("sitegen"),
		kong.Description("Build a static blog and portfolio site from Markdown and HTML templates."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "sitegen: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "sitegen: %v\n", err)
		return 1
	}

	global := &commands.Global{Logger: slog.Default(), Stdout: stdout}
	if err := ctx.Run(global, &cli); err != nil {
		return ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err, stderr)
	}
	return 0
}
