package layout

import (
	"path/filepath"
	"strings"

	"github.com/heal-sync/healsync-init/internal/errdef"
)

// File is a single stub file: a slash-separated path relative to the target
// root and the exact bytes it must hold afterwards.
type File struct {
	Path    string `toml:"path" yaml:"path"`
	Content string `toml:"content" yaml:"content"`
}

// Layout is a named project skeleton. Folders are created in order, then
// Files are written in order.
type Layout struct {
	Name        string
	Description string
	Folders     []string
	Files       []File
}

// Clone returns a deep copy so callers cannot mutate shared tables.
func (l Layout) Clone() Layout {
	out := l
	if l.Folders != nil {
		out.Folders = append([]string(nil), l.Folders...)
	}
	if l.Files != nil {
		out.Files = append([]File(nil), l.Files...)
	}
	return out
}

// Reversed returns a copy with the folder list in reverse order.
func (l Layout) Reversed() Layout {
	out := l.Clone()
	for i, j := 0, len(out.Folders)-1; i < j; i, j = i+1, j-1 {
		out.Folders[i], out.Folders[j] = out.Folders[j], out.Folders[i]
	}
	return out
}

// Validate checks every folder and file path. Duplicate folders are allowed
// since directory creation is idempotent; duplicate files are not.
func (l Layout) Validate() error {
	for _, d := range l.Folders {
		if _, err := Clean(d); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(l.Files))
	for _, f := range l.Files {
		rel, err := Clean(f.Path)
		if err != nil {
			return err
		}
		if _, ok := seen[rel]; ok {
			return errdef.New(errdef.CodeInvalidPath, "duplicate file %q in layout %q", f.Path, l.Name)
		}
		seen[rel] = struct{}{}
	}
	return nil
}

// Clean normalizes a layout path into an OS-specific relative path and
// rejects anything that would escape the target root.
func Clean(path string) (string, error) {
	raw := strings.TrimSpace(path)
	if raw == "" {
		return "", errdef.New(errdef.CodeInvalidPath, "empty path")
	}
	rel := filepath.Clean(filepath.FromSlash(raw))
	if rel == "." || rel == ".." {
		return "", errdef.New(errdef.CodeInvalidPath, "invalid path %q", path)
	}
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || strings.HasPrefix(raw, "/") {
		return "", errdef.New(errdef.CodeInvalidPath, "absolute path %q", path)
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errdef.New(errdef.CodeInvalidPath, "path %q escapes the target directory", path)
	}
	return rel, nil
}

// Join resolves a layout path under root.
func Join(root, path string) (string, error) {
	rel, err := Clean(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// Paths returns every folder and file path of the layout, slash separated.
func (l Layout) Paths() []string {
	out := make([]string, 0, len(l.Folders)+len(l.Files))
	out = append(out, l.Folders...)
	for _, f := range l.Files {
		out = append(out, f.Path)
	}
	return out
}
