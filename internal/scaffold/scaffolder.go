package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	udiff "github.com/aymanbagabas/go-udiff"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/heal-sync/healsync-init/internal/console"
	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/layout"
)

// Scaffolder creates a layout's folders and stub files under a root
// directory. It is not safe to run two scaffolders against the same root
// concurrently.
type Scaffolder struct {
	deps
	root   string
	layout layout.Layout
	out    *console.Printer
	dry    bool
	keep   bool

	// planned holds directories a dry run would have created.
	planned map[string]struct{}
}

func New(l layout.Layout, o Opt, opts ...Option) *Scaffolder {
	o = withDefaults(o)
	return &Scaffolder{
		deps:    buildDeps(opts),
		root:    o.Dir,
		layout:  l.Clone(),
		out:     console.New(o.Out, console.Options{NoColor: o.NoColor, DryRun: o.DryRun}),
		dry:     o.DryRun,
		keep:    o.KeepExisting,
		planned: make(map[string]struct{}),
	}
}

// Run ensures the root, then every folder, then every file, then prints the
// completion line. Nothing is rolled back on failure; rerunning is safe.
func (s *Scaffolder) Run(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, "scaffold.run", trace.WithAttributes(
		attribute.String("scaffold.root", s.root),
		attribute.String("scaffold.layout", s.layout.Name),
		attribute.Bool("scaffold.dry_run", s.dry),
	))
	defer func() { endSpan(span, err) }()

	s.log.Debug("scaffold start",
		zap.String("root", s.root),
		zap.String("layout", s.layout.Name),
		zap.Int("folders", len(s.layout.Folders)),
		zap.Int("files", len(s.layout.Files)),
		zap.Bool("dry_run", s.dry),
	)

	if err = s.ensureRoot(); err != nil {
		return err
	}
	if err = s.EnsureFolders(ctx, s.layout.Folders); err != nil {
		return err
	}
	if err = s.EnsureFiles(ctx, s.layout.Files); err != nil {
		return err
	}
	return s.out.Done()
}

func (s *Scaffolder) ensureRoot() error {
	d := s.root
	info, err := s.fs.Stat(d)
	if err == nil {
		if !info.IsDir() {
			return errdef.New(errdef.CodeInvalidPath, "%s is not a directory", d)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return errdef.Classify(err, "stat %s", d)
	}
	if s.dry {
		s.markPlanned(d)
		return nil
	}
	if err = s.fs.MkdirAll(d, dirPerm); err != nil {
		return errdef.Classify(err, "create %s", d)
	}
	s.log.Debug("created root", zap.String("dir", d))
	return nil
}

// EnsureFolders creates every path, with missing parents, in order.
// Directories that already exist are not an error. The first failure stops
// the loop.
func (s *Scaffolder) EnsureFolders(ctx context.Context, paths []string) (err error) {
	ctx, span := s.tracer.Start(ctx, "scaffold.folders", trace.WithAttributes(
		attribute.Int("scaffold.count", len(paths)),
	))
	defer func() { endSpan(span, err) }()

	for _, p := range paths {
		if err = ctx.Err(); err != nil {
			return err
		}
		abs, err := layout.Join(s.root, p)
		if err != nil {
			return err
		}

		act, err := s.ensureFolder(abs, p)
		if err != nil {
			return err
		}
		span.AddEvent("folder", trace.WithAttributes(
			attribute.String("path", p),
			attribute.String("action", string(act)),
		))
		if err = s.out.Folder(act, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scaffolder) ensureFolder(abs, rel string) (console.Action, error) {
	info, err := s.fs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		s.log.Debug("folder exists", zap.String("path", abs))
		return console.ActionExists, nil
	case err == nil:
		return "", errdef.New(errdef.CodeInvalidPath, "create folder %s: a file already occupies that path", rel)
	case !errors.Is(err, fs.ErrNotExist):
		return "", errdef.Classify(err, "create folder %s", rel)
	case s.isPlanned(abs):
		return console.ActionExists, nil
	}

	if s.dry {
		s.markPlanned(abs)
		return console.ActionCreate, nil
	}
	if err = s.fs.MkdirAll(abs, dirPerm); err != nil {
		return "", errdef.Classify(err, "create folder %s", rel)
	}
	s.log.Debug("mkdir", zap.String("path", abs))
	return console.ActionCreate, nil
}

// EnsureFiles replaces every file with exactly its layout content, in order.
// The parent directory must already exist. The first failure stops the loop.
func (s *Scaffolder) EnsureFiles(ctx context.Context, files []layout.File) (err error) {
	ctx, span := s.tracer.Start(ctx, "scaffold.files", trace.WithAttributes(
		attribute.Int("scaffold.count", len(files)),
	))
	defer func() { endSpan(span, err) }()

	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return err
		}
		o, err := s.planFile(f)
		if err != nil {
			return err
		}
		if err = s.applyFile(o); err != nil {
			return err
		}
		span.AddEvent("file", trace.WithAttributes(
			attribute.String("path", o.Path),
			attribute.String("action", string(o.Action)),
		))
	}
	return nil
}

func (s *Scaffolder) planFile(f layout.File) (op, error) {
	abs, err := layout.Join(s.root, f.Path)
	if err != nil {
		return op{}, err
	}
	o := op{Path: f.Path, Abs: abs, Data: f.Content, Mode: filePerm}

	parent := filepath.Dir(abs)
	pinfo, err := s.fs.Stat(parent)
	switch {
	case err != nil && errors.Is(err, fs.ErrNotExist) && s.isPlanned(parent):
		o.Action = console.ActionCreate
		return o, nil
	case err != nil && errors.Is(err, fs.ErrNotExist):
		return op{}, errdef.Wrap(errdef.CodePathNotFound, err, "write %s: parent directory does not exist", f.Path)
	case err != nil:
		return op{}, errdef.Classify(err, "write %s", f.Path)
	case !pinfo.IsDir():
		return op{}, errdef.New(errdef.CodeInvalidPath, "write %s: parent %s is not a directory", f.Path, parent)
	}

	info, err := s.fs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return op{}, errdef.New(errdef.CodeInvalidPath, "write %s: a directory occupies that path", f.Path)
	case err == nil:
		o.Exists = true
		o.Mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return op{}, errdef.Classify(err, "write %s", f.Path)
	}

	switch {
	case !o.Exists:
		o.Action = console.ActionCreate
	case s.keep:
		o.Action = console.ActionSkip
	default:
		o.Action = console.ActionOverwrite
	}
	return o, nil
}

func (s *Scaffolder) applyFile(o op) error {
	if o.Action == console.ActionSkip {
		return s.out.File(o.Action, o.Path)
	}
	if s.dry {
		if err := s.out.File(o.Action, o.Path); err != nil {
			return err
		}
		if !o.Exists {
			return nil
		}
		return s.previewOverwrite(o)
	}

	if o.Exists {
		if err := s.checkWritable(o.Abs); err != nil {
			return errdef.Classify(err, "write %s", o.Path)
		}
	}
	if err := s.writeAtomic(o.Abs, o.Mode, o.Data, o.Exists); err != nil {
		return errdef.Classify(err, "write %s", o.Path)
	}
	s.log.Debug("wrote file",
		zap.String("path", o.Abs),
		zap.Int("bytes", len(o.Data)),
		zap.String("action", string(o.Action)),
	)
	return s.out.File(o.Action, o.Path)
}

// previewOverwrite prints what an overwrite would discard.
func (s *Scaffolder) previewOverwrite(o op) error {
	old, err := s.fs.ReadFile(o.Abs)
	if err != nil {
		return errdef.Classify(err, "read %s", o.Path)
	}
	if string(old) == o.Data {
		return nil
	}
	diff := udiff.Unified("a/"+o.Path, "b/"+o.Path, string(old), o.Data)
	return s.out.Diff(diff)
}

// checkWritable opens an existing target for writing without truncating it,
// so a write-protected file fails before anything is replaced.
func (s *Scaffolder) checkWritable(p string) error {
	f, err := s.fs.OpenFile(p, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *Scaffolder) markPlanned(d string) {
	for {
		s.planned[d] = struct{}{}
		up := filepath.Dir(d)
		if up == d {
			return
		}
		d = up
	}
}

func (s *Scaffolder) isPlanned(d string) bool {
	_, ok := s.planned[d]
	return ok
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
