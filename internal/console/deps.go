package console

import "fmt"

func (p *Printer) InstallStart() error {
	return p.printf("%s Installing dependencies... This may take a while.\n", glyphStart)
}

func (p *Printer) Installing(group string) error {
	if p.discards() {
		return nil
	}
	return p.printf("%s Installing: %s\n", glyphPackage, p.th.Package.Render(group))
}

func (p *Printer) Installed(group string) error {
	if p.discards() {
		return nil
	}
	return p.printf("%s Installed: %s\n", glyphDone, p.th.Success.Render(group))
}

func (p *Printer) InstallFailed(group, detail string) error {
	if p.discards() {
		return nil
	}
	return p.printf("%s Error installing %s: %s\n", glyphError, p.th.Error.Render(group), detail)
}

func (p *Printer) Command(cmd string) error {
	return p.printf("%s\n", cmd)
}

func (p *Printer) discards() bool {
	return p == nil || p.out == nil
}

func (p *Printer) printf(format string, args ...any) error {
	if p.discards() {
		return nil
	}
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
