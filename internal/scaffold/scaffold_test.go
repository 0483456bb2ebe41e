package scaffold

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/layout"
)

const dirMarker = "<dir>"

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel] = dirMarker
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func runDefault(t *testing.T, dir string) {
	t.Helper()
	if err := Run(context.Background(), Opt{Dir: dir, Out: io.Discard}); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	runDefault(t, dir)

	l := layout.Default()
	for _, d := range l.Folders {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(d)))
		if err != nil {
			t.Fatalf("expected folder %s: %v", d, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", d)
		}
	}
	for _, f := range l.Files {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatalf("expected file %s: %v", f.Path, err)
		}
		if string(data) != f.Content {
			t.Fatalf("%s: expected %q, got %q", f.Path, f.Content, data)
		}
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	if string(readme) != "# Heal-Sync: Blockchain-Based Organ Donation System" {
		t.Fatalf("unexpected README %q", readme)
	}
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	runDefault(t, dir)
	first := snapshot(t, dir)
	runDefault(t, dir)
	second := snapshot(t, dir)
	if !maps.Equal(first, second) {
		t.Fatalf("second run changed the tree:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestRunOverwritesExistingContent(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("my notes\nkeep me?\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	runDefault(t, dir)

	data, err := os.ReadFile(readme)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# Heal-Sync: Blockchain-Based Organ Donation System" {
		t.Fatalf("expected stub content, got %q", data)
	}
	info, err := os.Stat(readme)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode to be preserved, got %v", info.Mode().Perm())
	}
}

func TestEnsureFilesMissingParent(t *testing.T) {
	dir := t.TempDir()
	s := New(layout.Default(), Opt{Dir: dir, Out: io.Discard})

	err := s.EnsureFiles(context.Background(), layout.Default().Files)
	if !errdef.Is(err, errdef.CodePathNotFound) {
		t.Fatalf("expected path-not-found, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "app", "api", "auth.ts")); !os.IsNotExist(err) {
		t.Fatalf("expected auth.ts not to be written")
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "lib", "firebase.ts")); !os.IsNotExist(err) {
		t.Fatalf("expected later files not to be attempted")
	}
	if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
		t.Fatalf("expected files before the failure to be written: %v", err)
	}
}

func TestFolderOrderDoesNotMatter(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	ctx := context.Background()
	if err := New(layout.Default(), Opt{Dir: a, Out: io.Discard}).EnsureFolders(ctx, layout.Default().Folders); err != nil {
		t.Fatalf("forward: %v", err)
	}
	rev := layout.Default().Reversed()
	if err := New(rev, Opt{Dir: b, Out: io.Discard}).EnsureFolders(ctx, rev.Folders); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if !maps.Equal(snapshot(t, a), snapshot(t, b)) {
		t.Fatalf("folder sets differ")
	}
}

func TestRunTouchesOnlyLayoutPaths(t *testing.T) {
	dir := t.TempDir()
	runDefault(t, dir)

	allowed := make(map[string]struct{})
	for _, p := range layout.Default().Paths() {
		for p != "." && p != "" {
			allowed[p] = struct{}{}
			p = filepath.ToSlash(filepath.Dir(filepath.FromSlash(p)))
		}
	}
	for p := range snapshot(t, dir) {
		if _, ok := allowed[p]; !ok {
			t.Fatalf("unexpected path %s", p)
		}
	}
}

func TestEnsureFoldersFileCollision(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "src"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := New(layout.Default(), Opt{Dir: dir, Out: io.Discard}).
		EnsureFolders(context.Background(), layout.Default().Folders)
	if !errdef.Is(err, errdef.CodeInvalidPath) {
		t.Fatalf("expected invalid-path, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "public")); !os.IsNotExist(err) {
		t.Fatalf("expected remaining folders to be skipped")
	}
}

func TestEnsureFoldersNestedCollision(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "src"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := New(layout.Layout{}, Opt{Dir: dir, Out: io.Discard}).
		EnsureFolders(context.Background(), []string{"src/app"})
	if !errdef.Is(err, errdef.CodeInvalidPath) {
		t.Fatalf("expected invalid-path, got %v", err)
	}
}

type faultFS struct {
	OSFS
	mkdirErr  map[string]error
	openErr   map[string]error
	renameErr error
}

func (f faultFS) MkdirAll(p string, m fs.FileMode) error {
	if err, ok := f.mkdirErr[filepath.Base(p)]; ok {
		return &fs.PathError{Op: "mkdir", Path: p, Err: err}
	}
	return f.OSFS.MkdirAll(p, m)
}

func (f faultFS) OpenFile(p string, flag int, m fs.FileMode) (File, error) {
	if err, ok := f.openErr[filepath.Base(p)]; ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: err}
	}
	return f.OSFS.OpenFile(p, flag, m)
}

func (f faultFS) Rename(a, b string) error {
	if f.renameErr != nil {
		return &os.LinkError{Op: "rename", Old: a, New: b, Err: f.renameErr}
	}
	return f.OSFS.Rename(a, b)
}

func TestEnsureFoldersPermissionStops(t *testing.T) {
	dir := t.TempDir()
	fsys := faultFS{mkdirErr: map[string]error{"pages": fs.ErrPermission}}
	err := New(layout.Default(), Opt{Dir: dir, Out: io.Discard}, WithFS(fsys)).
		EnsureFolders(context.Background(), layout.Default().Folders)
	if !errdef.Is(err, errdef.CodePermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "app", "components")); err != nil {
		t.Fatalf("expected earlier folders to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "lib")); !os.IsNotExist(err) {
		t.Fatalf("expected later folders to be skipped")
	}
}

func TestWriteProtectedTarget(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "README.md")
	if err := os.WriteFile(p, []byte("locked"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fsys := faultFS{openErr: map[string]error{"README.md": fs.ErrPermission}}
	l := layout.Layout{Files: []layout.File{{Path: "README.md", Content: "new"}}}
	err := New(l, Opt{Dir: dir, Out: io.Discard}, WithFS(fsys)).Run(context.Background())
	if !errdef.Is(err, errdef.CodePermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "locked" {
		t.Fatalf("expected content untouched, got %q", data)
	}
}

func TestFailedRenameLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fsys := faultFS{renameErr: errors.New("disk on fire")}
	l := layout.Layout{Files: []layout.File{{Path: "a.txt", Content: "a"}}}
	err := New(l, Opt{Dir: dir, Out: io.Discard}, WithFS(fsys)).Run(context.Background())
	if !errdef.Is(err, errdef.CodeFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
	if got := snapshot(t, dir); len(got) != 0 {
		t.Fatalf("expected empty dir, got %v", got)
	}
}

func TestRunRootIsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "root")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := Run(context.Background(), Opt{Dir: p, Out: io.Discard})
	if !errdef.Is(err, errdef.CodeInvalidPath) {
		t.Fatalf("expected invalid-path, got %v", err)
	}
}

func TestRunCreatesMissingRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "project")
	runDefault(t, dir)
	if _, err := os.Stat(filepath.Join(dir, "src", "hooks")); err != nil {
		t.Fatalf("expected nested root to be created: %v", err)
	}
}

func TestRunDirectoryAtFilePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "README.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	err := Run(context.Background(), Opt{Dir: dir, Out: io.Discard})
	if !errdef.Is(err, errdef.CodeInvalidPath) {
		t.Fatalf("expected invalid-path, got %v", err)
	}
}

func TestRunDryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{Dir: dir, DryRun: true, Out: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := snapshot(t, dir); len(got) != 0 {
		t.Fatalf("expected no files in dry-run, got %v", got)
	}
	out := ansi.Strip(buf.String())
	if !strings.Contains(out, "dry-run: 📄 Created: src/blockchain/scripts/deploy.js") {
		t.Fatalf("expected planned file in output: %s", out)
	}
}

func TestRunDryShowsDiff(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("old readme\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{Dir: dir, DryRun: true, Out: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := ansi.Strip(buf.String())
	if !strings.Contains(out, "-old readme") || !strings.Contains(out, "+# Heal-Sync") {
		t.Fatalf("expected diff in output: %s", out)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "README.md"))
	if string(data) != "old readme\n" {
		t.Fatalf("dry-run modified README: %q", data)
	}
}

func TestRunKeepExisting(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	if err := os.WriteFile(p, []byte(`{"name":"x"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{Dir: dir, KeepExisting: true, Out: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, _ := os.ReadFile(p)
	if string(data) != `{"name":"x"}` {
		t.Fatalf("expected package.json to be kept, got %q", data)
	}
	if !strings.Contains(ansi.Strip(buf.String()), "📄 Skipped: package.json") {
		t.Fatalf("expected skip notice: %s", buf.String())
	}
}

func TestRunReportsEachAction(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{Dir: dir, Out: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
	l := layout.Default()
	want := len(l.Folders) + len(l.Files) + 2
	if len(lines) != want {
		t.Fatalf("expected %d lines, got %d:\n%s", want, len(lines), buf.String())
	}
	if lines[0] != "📂 Created: src" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[len(l.Folders)] != "📄 Created: .gitignore" {
		t.Fatalf("unexpected first file line %q", lines[len(l.Folders)])
	}
	if last := lines[len(lines)-1]; last != "✅ Folder structure setup completed successfully!" {
		t.Fatalf("unexpected last line %q", last)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	if err := Run(ctx, Opt{Dir: dir, Out: io.Discard}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := snapshot(t, dir); len(got) != 0 {
		t.Fatalf("expected nothing written, got %v", got)
	}
}

func TestRunManifestLayout(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "tiny.toml")
	data := "folders = [\"docs\"]\n\n[[files]]\npath = \"docs/x.md\"\ncontent = \"x\"\n"
	if err := os.WriteFile(manifest, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Run(context.Background(), Opt{Dir: dir, Layout: manifest, Out: io.Discard}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := snapshot(t, dir)
	want := map[string]string{"docs": dirMarker, "docs/x.md": "x"}
	if !maps.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListLayouts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEALSYNC_LAYOUTS_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "mine.toml"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{List: true, Out: &buf}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if out := ansi.Strip(buf.String()); !strings.Contains(out, "heal-sync") || !strings.Contains(out, "(default)") || !strings.Contains(out, "mine") {
		t.Fatalf("expected default layout in output: %s", out)
	}
}

func TestExportLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(context.Background(), Opt{Export: "YML", Out: &buf}); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "src/blockchain/contracts/DonorRecipient.sol") {
		t.Fatalf("expected file paths in export: %s", out)
	}
	if err := Run(context.Background(), Opt{Export: "json", Out: io.Discard}); !errdef.Is(err, errdef.CodeConfig) {
		t.Fatalf("expected config error for unknown format, got %v", err)
	}
}
