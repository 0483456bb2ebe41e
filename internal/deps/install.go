package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/heal-sync/healsync-init/internal/console"
	"github.com/heal-sync/healsync-init/internal/errdef"
)

type Installer struct {
	Dir    string
	Runner Runner
	Out    *console.Printer
	Log    *zap.Logger
}

// Print writes the install command for each group without running anything.
func (in Installer) Print(groups []Group) error {
	for _, g := range groups {
		if err := in.Out.Command(g.Command()); err != nil {
			return err
		}
	}
	return nil
}

// Install runs one npm install per group, in order. A failing group does not
// stop the others; all failures are returned together.
func (in Installer) Install(ctx context.Context, groups []Group) error {
	r := in.Runner
	if r == nil {
		r = ExecRunner{}
	}
	log := in.Log
	if log == nil {
		log = zap.NewNop()
	}

	if err := in.Out.InstallStart(); err != nil {
		return err
	}
	var errs []error
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.Out.Installing(g.String()); err != nil {
			return err
		}
		log.Debug("npm install", zap.String("dir", in.Dir), zap.Strings("packages", g.Packages))

		res, err := r.Run(ctx, in.Dir, npmBinary, g.Args()...)
		if err == nil && res.ExitCode != 0 {
			err = fmt.Errorf("exit status %d", res.ExitCode)
		}
		if err != nil {
			detail := strings.TrimSpace(res.Stderr)
			if detail == "" {
				detail = err.Error()
			}
			if perr := in.Out.InstallFailed(g.String(), detail); perr != nil {
				return perr
			}
			errs = append(errs, errdef.Wrap(errdef.CodeInstall, err, "install %s", g))
			continue
		}
		if err := in.Out.Installed(g.String()); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}
