package scaffold

import (
	"io"
	"io/fs"
	"os"
)

type File interface {
	io.Writer
	Name() string
	Chmod(fs.FileMode) error
	Sync() error
	Close() error
}

type FS interface {
	Stat(string) (fs.FileInfo, error)
	MkdirAll(string, fs.FileMode) error
	ReadFile(string) ([]byte, error)
	OpenFile(string, int, fs.FileMode) (File, error)
	Rename(string, string) error
	Remove(string) error
}

type OSFS struct{}

func (OSFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (OSFS) MkdirAll(p string, m fs.FileMode) error {
	return os.MkdirAll(p, m)
}
func (OSFS) ReadFile(p string) ([]byte, error) { return os.ReadFile(p) }
func (OSFS) OpenFile(p string, flag int, m fs.FileMode) (File, error) {
	f, err := os.OpenFile(p, flag, m)
	if err != nil {
		return nil, err
	}
	return f, nil
}
func (OSFS) Rename(a, b string) error { return os.Rename(a, b) }
func (OSFS) Remove(p string) error    { return os.Remove(p) }
