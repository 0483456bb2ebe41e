package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heal-sync/healsync-init/internal/console"
	"github.com/heal-sync/healsync-init/internal/deps"
	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/logging"
	"github.com/heal-sync/healsync-init/internal/scaffold"
)

func (a app) handleDepsSubcommand(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 || args[0] != "deps" {
		return false, nil
	}
	if len(args) == 1 && depsDirExists() {
		return true, errdef.New(
			errdef.CodeUsage,
			"found a directory named \"deps\"; use `healsync-init -dir deps` to scaffold into it, or `healsync-init deps -dir .` to list dependencies",
		)
	}
	return true, a.runDeps(ctx, args[1:], deps.ExecRunner{})
}

func depsDirExists() bool {
	info, err := os.Stat("deps")
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (a app) runDeps(ctx context.Context, args []string, runner deps.Runner) error {
	fs := flag.NewFlagSet("deps", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, "Usage: healsync-init deps [flags]")
		fmt.Fprintln(a.stderr, "")
		fmt.Fprintln(a.stderr, "Flags:")
		fs.SetOutput(a.stderr)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	var (
		dir     string
		install bool
		noColor bool
		verbose bool
	)
	fs.StringVar(&dir, "dir", scaffold.DefaultDir, "Project directory to install into")
	fs.BoolVar(&install, "install", false, "Run npm install for every group")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "verbose", false, "Log diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errdef.Wrap(errdef.CodeUsage, err, "deps: parse flags")
	}
	if extra := fs.Args(); len(extra) > 0 {
		return errdef.New(errdef.CodeUsage, "deps: unexpected args: %s", strings.Join(extra, " "))
	}

	log := logging.New(a.stderr, verbose)
	defer func() { _ = log.Sync() }()

	in := deps.Installer{
		Dir:    dir,
		Runner: runner,
		Out:    console.New(a.stdout, console.Options{NoColor: noColor}),
		Log:    log,
	}
	if !install {
		return in.Print(deps.Default())
	}
	return in.Install(ctx, deps.Default())
}
