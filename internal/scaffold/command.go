package scaffold

import (
	"context"
	"io"
	"os"

	"github.com/heal-sync/healsync-init/internal/config"
	"github.com/heal-sync/healsync-init/internal/console"
	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/filesvc"
	"github.com/heal-sync/healsync-init/internal/layout"
)

// Run resolves the requested layout and scaffolds it, or lists/exports
// layouts when asked to.
func Run(ctx context.Context, o Opt, opts ...Option) error {
	o = withDefaults(o)
	if o.Out == nil {
		o.Out = os.Stdout
	}

	if o.List {
		return listLayouts(o)
	}

	l, err := config.ResolveLayoutIn(o.Layout, o.LayoutsDir)
	if err != nil {
		return err
	}

	if o.Export != "" {
		return exportLayout(o.Out, l, o.Export)
	}

	return New(l, o, opts...).Run(ctx)
}

func listLayouts(o Opt) error {
	p := console.New(o.Out, console.Options{NoColor: o.NoColor})
	var rows [][2]string
	for _, l := range layout.List() {
		desc := l.Description
		if l.Name == layout.DefaultName {
			desc += " (default)"
		}
		rows = append(rows, [2]string{l.Name, desc})
	}
	manifests, err := filesvc.ListManifests(o.LayoutsDir)
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "list manifests")
	}
	for _, m := range manifests {
		rows = append(rows, [2]string{m.Name, "manifest " + m.Path})
	}
	return p.Table(rows)
}

func exportLayout(w io.Writer, l layout.Layout, format string) error {
	data, err := config.EncodeManifest(l, config.ManifestFormat(normalizeFormat(format)))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "export layout")
	}
	return nil
}

func normalizeFormat(f string) string {
	if f == "yml" {
		return string(config.ManifestFormatYAML)
	}
	return f
}
