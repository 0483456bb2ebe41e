package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/heal-sync/healsync-init/internal/theme"
)

const (
	glyphFolder  = "📂"
	glyphFile    = "📄"
	glyphDone    = "✅"
	glyphError   = "❌"
	glyphPackage = "📦"
	glyphStart   = "🚀"

	doneMessage = "Folder structure setup completed successfully!"
)

type Action string

const (
	ActionCreate    Action = "create"
	ActionExists    Action = "exists"
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
)

var actionLabels = map[Action]string{
	ActionCreate:    "Created",
	ActionExists:    "Exists",
	ActionOverwrite: "Overwrote",
	ActionSkip:      "Skipped",
}

func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

type Options struct {
	NoColor bool
	DryRun  bool
}

// Printer writes human-readable progress lines. A nil Printer or one with a
// nil writer discards everything.
type Printer struct {
	out io.Writer
	th  theme.Theme
	dry bool
}

func New(w io.Writer, o Options) *Printer {
	if w == nil {
		return &Printer{dry: o.DryRun}
	}
	r := lipgloss.NewRenderer(w)
	if o.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: w, th: theme.DefaultTheme(r), dry: o.DryRun}
}

func (p *Printer) Folder(act Action, path string) error {
	return p.line(glyphFolder, p.th.Folder, act, path)
}

func (p *Printer) File(act Action, path string) error {
	return p.line(glyphFile, p.th.File, act, path)
}

func (p *Printer) line(glyph string, st lipgloss.Style, act Action, path string) error {
	if p == nil || p.out == nil || act == "" {
		return nil
	}
	prefix := ""
	if p.dry {
		prefix = p.th.DryRun.Render("dry-run:") + " "
	}
	_, err := fmt.Fprintf(p.out, "%s%s %s %s\n", prefix, glyph, st.Render(act.Label()+":"), p.th.Path.Render(path))
	if err != nil {
		return fmt.Errorf("report %s %s: %w", act, path, err)
	}
	return nil
}

// Diff prints a unified diff, coloring added and removed lines.
func (p *Printer) Diff(diff string) error {
	if p == nil || p.out == nil || diff == "" {
		return nil
	}
	var b strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(p.th.Muted.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(p.th.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(p.th.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(p.th.DiffRemove.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(p.out, b.String()); err != nil {
		return fmt.Errorf("report diff: %w", err)
	}
	return nil
}

func (p *Printer) Done() error {
	if p == nil || p.out == nil {
		return nil
	}
	msg := doneMessage
	if p.dry {
		msg = "Dry run finished; nothing was written."
	}
	if _, err := fmt.Fprintf(p.out, "\n%s %s\n", glyphDone, p.th.Success.Render(msg)); err != nil {
		return fmt.Errorf("report done: %w", err)
	}
	return nil
}

func (p *Printer) Error(err error) error {
	if p == nil || p.out == nil || err == nil {
		return nil
	}
	if _, werr := fmt.Fprintf(p.out, "%s %s\n", glyphError, p.th.Error.Render("error: "+err.Error())); werr != nil {
		return fmt.Errorf("report error: %w", werr)
	}
	return nil
}

// Table prints name/description rows with the name column padded to the
// widest display width.
func (p *Printer) Table(rows [][2]string) error {
	if p == nil || p.out == nil {
		return nil
	}
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		name := runewidth.FillRight(r[0], width)
		if _, err := fmt.Fprintf(p.out, "%s  %s\n", p.th.Path.Render(name), p.th.Muted.Render(r[1])); err != nil {
			return fmt.Errorf("list: %w", err)
		}
	}
	return nil
}
