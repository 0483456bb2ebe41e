package scaffold

import (
	"io"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/heal-sync/healsync-init/internal/config"
)

// Opt describes how a scaffold run should behave.
// Fields are plain values so callers can map flags directly.
type Opt struct {
	Dir          string
	Layout       string
	DryRun       bool
	KeepExisting bool
	List         bool
	Export       string
	NoColor      bool
	Out          io.Writer

	// LayoutsDir holds user manifests; empty means config.LayoutDir.
	LayoutsDir string
}

func withDefaults(opt Opt) Opt {
	opt.Dir = strings.TrimSpace(opt.Dir)
	if opt.Dir == "" {
		opt.Dir = DefaultDir
	}
	opt.Layout = strings.TrimSpace(opt.Layout)
	opt.Export = strings.ToLower(strings.TrimSpace(opt.Export))
	if opt.LayoutsDir == "" {
		opt.LayoutsDir = config.LayoutDir()
	}
	return opt
}

type deps struct {
	fs     FS
	log    *zap.Logger
	tracer trace.Tracer
}

// Option injects collaborators; the zero set uses the real filesystem, a
// no-op logger, and a no-op tracer.
type Option func(*deps)

func WithFS(fsys FS) Option {
	return func(d *deps) {
		if fsys != nil {
			d.fs = fsys
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *deps) {
		if l != nil {
			d.log = l
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(d *deps) {
		if t != nil {
			d.tracer = t
		}
	}
}

func buildDeps(opts []Option) deps {
	d := deps{
		fs:     OSFS{},
		log:    zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, o := range opts {
		if o != nil {
			o(&d)
		}
	}
	return d
}
