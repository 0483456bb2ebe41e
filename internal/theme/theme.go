package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used for scaffold progress output.
type Theme struct {
	Folder     lipgloss.Style
	File       lipgloss.Style
	Path       lipgloss.Style
	DryRun     lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style
	DiffHunk   lipgloss.Style
	Package    lipgloss.Style
}

// DefaultTheme builds styles bound to r so the color profile follows the
// writer the renderer was created for.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle()
	return Theme{
		Folder:     base.Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		File:       base.Foreground(lipgloss.Color("#5FB3B3")).Bold(true),
		Path:       base.Foreground(lipgloss.Color("#E5E1FF")),
		DryRun:     base.Foreground(lipgloss.Color("#FBC859")),
		Success:    base.Foreground(lipgloss.Color("#6EF17E")).Bold(true),
		Error:      base.Foreground(lipgloss.Color("#FF6E6E")).Bold(true),
		Muted:      base.Foreground(lipgloss.Color("#A6A1BB")),
		DiffAdd:    base.Foreground(lipgloss.Color("#6EF17E")),
		DiffRemove: base.Foreground(lipgloss.Color("#FF6E6E")),
		DiffHunk:   base.Foreground(lipgloss.Color("#15AABF")),
		Package:    base.Foreground(lipgloss.Color("#FF8B39")),
	}
}
