package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const envConfigDir = "HEALSYNC_CONFIG_DIR"

func Dir() string {
	return DirFrom(os.Getenv)
}

func DirFrom(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return dirFor(runtime.GOOS, getenv, os.UserHomeDir)
}

func dirFor(goos string, getenv func(string) string, home func() (string, error)) string {
	if override := getenv(envConfigDir); override != "" {
		return override
	}

	h, err := home()
	if err != nil {
		return ".healsync"
	}

	switch goos {
	case "darwin":
		return filepath.Join(h, "Library", "Application Support", "healsync")
	case "windows":
		return filepath.Join(h, "AppData", "Roaming", "healsync")
	default:
		return filepath.Join(h, ".config", "healsync")
	}
}
