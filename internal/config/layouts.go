package config

import (
	"os"
	"path/filepath"
)

const (
	layoutDirName = "layouts"
	envLayoutDir  = "HEALSYNC_LAYOUTS_DIR"
)

// LayoutDir returns the folder where user layout manifests are stored.
func LayoutDir() string {
	return LayoutDirFrom(os.Getenv)
}

// LayoutDirFrom is LayoutDir with an injected environment lookup.
func LayoutDirFrom(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if override := getenv(envLayoutDir); override != "" {
		return override
	}
	return filepath.Join(DirFrom(getenv), layoutDirName)
}
