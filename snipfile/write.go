package snipfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile replaces the contents of p with d through a temporary file in the
// same directory, so p is never left half written. When p is a symlink the
// file it resolves to is replaced and the link is kept. An existing file
// keeps its permissions. Missing parent directories are created.
func WriteFile(p string, d []byte) error {
	perm := fs.FileMode(0o644)
	fi, err := os.Stat(p)
	switch {
	case err == nil:
		perm = fi.Mode().Perm()
		if p, err = filepath.EvalSymlinks(p); err != nil {
			return err
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
	default:
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := f.Name()
	if _, err := f.Write(d); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}
	// CreateTemp uses 0600
	if err := os.Chmod(tmpFile, perm); err != nil {
		os.Remove(tmpFile)
		return err
	}
	if err := os.Rename(tmpFile, p); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return nil
}

// RemoveFile removes p. A missing p is not an error.
func RemoveFile(p string) (bool, error) {
	err := os.Remove(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, err
}
