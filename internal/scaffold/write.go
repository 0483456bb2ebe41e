package scaffold

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func tempName(dir string) string {
	return filepath.Join(dir, tempPrefix+uuid.NewString()+tempSuffix)
}

// writeAtomic replaces p with data through a temp file in the same
// directory, so a failed write leaves the previous bytes in place. New files
// get m filtered by the umask; with keepMode the exact bits of the file being
// replaced are restored.
func (s *Scaffolder) writeAtomic(p string, m fs.FileMode, data string, keepMode bool) (err error) {
	tmp := tempName(filepath.Dir(p))
	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, m)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
		if err != nil {
			if rmErr := s.fs.Remove(tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				s.log.Warn("remove temp file", zap.String("path", tmp), zap.Error(rmErr))
			}
		}
	}()
	if keepMode {
		if err = f.Chmod(m); err != nil {
			return err
		}
	}
	if _, err = io.WriteString(f, data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = s.fs.Rename(tmp, p); err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return err
	}
	// Some platforms refuse to rename over an existing file.
	if err = s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return s.fs.Rename(tmp, p)
}
