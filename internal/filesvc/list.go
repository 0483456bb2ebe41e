package filesvc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileEntry struct {
	Name string
	Path string
}

var manifestExts = map[string]struct{}{".toml": {}, ".yaml": {}, ".yml": {}}

// ListManifests returns layout manifests directly under root, named by
// their file stem. A missing root yields no entries.
func ListManifests(root string) ([]FileEntry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []FileEntry
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := manifestExts[ext]; !ok {
			continue
		}
		entries = append(entries, FileEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(root, name),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
