package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/heal-sync/healsync-init/internal/errdef"
	"github.com/heal-sync/healsync-init/internal/layout"
)

type ManifestFormat string

const (
	ManifestFormatTOML ManifestFormat = "toml"
	ManifestFormatYAML ManifestFormat = "yaml"
)

var manifestExts = []string{".toml", ".yaml", ".yml"}

// manifest is the on-disk shape of a user layout.
type manifest struct {
	Name        string        `toml:"name" yaml:"name"`
	Description string        `toml:"description" yaml:"description"`
	Folders     []string      `toml:"folders" yaml:"folders"`
	Files       []layout.File `toml:"files" yaml:"files"`
}

// FormatFor picks the manifest format from a file extension.
func FormatFor(path string) (ManifestFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ManifestFormatTOML, nil
	case ".yaml", ".yml":
		return ManifestFormatYAML, nil
	default:
		return "", errdef.New(errdef.CodeConfig, "unsupported manifest extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadManifest reads and validates a layout manifest from disk.
func LoadManifest(path string) (layout.Layout, error) {
	format, err := FormatFor(path)
	if err != nil {
		return layout.Layout{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Layout{}, errdef.Wrap(errdef.CodeConfig, err, "read manifest %s", path)
	}
	l, err := ParseManifest(data, format)
	if err != nil {
		return layout.Layout{}, errdef.Wrap(errdef.CodeConfig, err, "parse manifest %s", path)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := l.Validate(); err != nil {
		return layout.Layout{}, errdef.Wrap(errdef.CodeConfig, err, "manifest %s", path)
	}
	return l, nil
}

// ParseManifest decodes manifest bytes. Unknown keys are rejected so typos
// like "folder" do not silently produce an empty layout.
func ParseManifest(data []byte, format ManifestFormat) (layout.Layout, error) {
	var m manifest
	switch format {
	case ManifestFormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return layout.Layout{}, err
		}
	case ManifestFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return layout.Layout{}, err
		}
	default:
		return layout.Layout{}, errdef.New(errdef.CodeConfig, "unknown manifest format %q", format)
	}
	return layout.Layout{
		Name:        layout.NormalizeName(m.Name),
		Description: strings.TrimSpace(m.Description),
		Folders:     m.Folders,
		Files:       m.Files,
	}, nil
}

// EncodeManifest renders a layout in the given manifest format. It backs the
// -export flag so users can start a custom manifest from a built-in layout.
func EncodeManifest(l layout.Layout, format ManifestFormat) ([]byte, error) {
	m := manifest{
		Name:        l.Name,
		Description: l.Description,
		Folders:     l.Folders,
		Files:       l.Files,
	}
	switch format {
	case ManifestFormatTOML:
		return toml.Marshal(m)
	case ManifestFormatYAML:
		return yaml.Marshal(m)
	default:
		return nil, errdef.New(errdef.CodeConfig, "unknown manifest format %q", format)
	}
}

// ResolveLayout turns a -layout value into a layout. Empty selects the
// built-in default; built-in names win over files; values that look like
// paths are loaded directly; bare names are looked up in LayoutDir.
func ResolveLayout(spec string) (layout.Layout, error) {
	return ResolveLayoutIn(spec, LayoutDir())
}

// ResolveLayoutIn is ResolveLayout with bare names looked up in dir.
func ResolveLayoutIn(spec, dir string) (layout.Layout, error) {
	return resolveLayout(spec, dir)
}

func resolveLayout(spec, dir string) (layout.Layout, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return layout.Default(), nil
	}
	if l, ok := layout.Find(spec); ok {
		return l, nil
	}
	if looksLikePath(spec) {
		return LoadManifest(spec)
	}
	for _, ext := range manifestExts {
		p := filepath.Join(dir, spec+ext)
		if _, err := os.Stat(p); err == nil {
			return LoadManifest(p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return layout.Layout{}, errdef.Wrap(errdef.CodeConfig, err, "stat %s", p)
		}
	}
	return layout.Layout{}, errdef.New(
		errdef.CodeConfig,
		"unknown layout %q (available: %s; or a manifest under %s)",
		spec,
		strings.Join(layout.Names(), ", "),
		dir,
	)
}

func looksLikePath(spec string) bool {
	if strings.ContainsAny(spec, `/\`) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(spec))
	for _, e := range manifestExts {
		if ext == e {
			return true
		}
	}
	return false
}
