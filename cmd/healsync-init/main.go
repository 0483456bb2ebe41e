package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"go.uber.org/zap"

	"github.com/heal-sync/healsync-init/internal/config"
	"github.com/heal-sync/healsync-init/internal/console"
	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/layout"
	"github.com/heal-sync/healsync-init/internal/logging"
	"github.com/heal-sync/healsync-init/internal/scaffold"
	"github.com/heal-sync/healsync-init/internal/telemetry"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var usageText = heredoc.Doc(`
	Usage: healsync-init [flags] [dir]
	       healsync-init deps [-install] [-dir DIR]

	Creates the Heal-Sync project skeleton in dir (default: current directory).
	Existing stub files are overwritten unless -keep-existing is set.

	Flags:
`)

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	a := app{stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	os.Exit(a.main(context.Background(), os.Args[1:]))
}

func (a app) main(ctx context.Context, args []string) int {
	err := a.run(ctx, args)
	if err != nil {
		p := console.New(a.stderr, console.Options{NoColor: a.getenv("NO_COLOR") != ""})
		_ = p.Error(err)
	}
	return errdef.ExitCode(err)
}

func (a app) run(ctx context.Context, args []string) error {
	if handled, err := a.handleDepsSubcommand(ctx, args); handled {
		return err
	}

	layoutsDir := config.LayoutDirFrom(a.getenv)

	fs := flag.NewFlagSet("healsync-init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usageText)
		fs.SetOutput(a.stderr)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
		fmt.Fprintln(a.stderr, "")
		fmt.Fprintln(a.stderr, "Layouts:")
		_ = scaffold.Run(ctx, scaffold.Opt{List: true, LayoutsDir: layoutsDir, Out: a.stderr})
	}

	var (
		dir         string
		layoutName  string
		dry         bool
		keep        bool
		list        bool
		export      string
		noColor     bool
		verbose     bool
		showVersion bool
	)

	fs.StringVar(&dir, "dir", scaffold.DefaultDir, "Target directory")
	fs.StringVar(&layoutName, "layout", layout.DefaultName, "Built-in layout name or path to a .toml/.yaml manifest")
	fs.BoolVar(&dry, "dry-run", false, "Print actions and diffs without writing files")
	fs.BoolVar(&keep, "keep-existing", false, "Skip files that already exist instead of overwriting them")
	fs.BoolVar(&list, "list", false, "List built-in layouts")
	fs.StringVar(&export, "export", "", "Print the selected layout as a manifest (toml or yaml) and exit")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "verbose", false, "Log diagnostics to stderr")
	fs.BoolVar(&showVersion, "version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errdef.Wrap(errdef.CodeUsage, err, "parse flags")
	}

	if showVersion {
		fmt.Fprintf(a.stdout, "healsync-init %s\n", version)
		fmt.Fprintf(a.stdout, "  commit: %s\n", commit)
		fmt.Fprintf(a.stdout, "  built:  %s\n", date)
		return nil
	}

	dirSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dir" {
			dirSet = true
		}
	})

	extra := fs.Args()
	switch {
	case len(extra) == 0:
	case len(extra) > 1:
		return errdef.New(errdef.CodeUsage, "unexpected args: %s", strings.Join(extra, " "))
	case dirSet:
		return errdef.New(errdef.CodeUsage, "target given twice: -dir %s and %s", dir, extra[0])
	default:
		dir = extra[0]
	}

	log := logging.New(a.stderr, verbose)
	defer func() { _ = log.Sync() }()
	log.Debug("config", zap.String("config_dir", config.DirFrom(a.getenv)), zap.String("layouts_dir", layoutsDir))

	tcfg := telemetry.ConfigFromEnv(a.getenv)
	tcfg.Version = version
	tracer, shutdown, err := telemetry.Setup(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	op := scaffold.Opt{
		Dir:          dir,
		Layout:       layoutName,
		DryRun:       dry,
		KeepExisting: keep,
		List:         list,
		Export:       export,
		LayoutsDir:   layoutsDir,
		NoColor:      noColor,
		Out:          a.stdout,
	}
	return scaffold.Run(ctx, op, scaffold.WithLogger(log), scaffold.WithTracer(tracer))
}
