// Package publish replaces output files atomically: readers of a published
// file see either the old or the new contents, never a partial write.
package publish

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// ErrExists is returned when a file would be overwritten and the caller
// asked not to.
var ErrExists = errors.New("file exists")

// lock serialises every publisher in the process. Publishing is rare and
// small, so one coarse lock is enough.
var lock sync.RWMutex

// Options control File.
type Options struct {
	// NoOverwrite refuses to replace an existing file with different
	// contents.
	NoOverwrite bool
	// Perm is the mode of a newly written file; 0 means 0644.
	Perm os.FileMode
}

// File writes contents to path through a temporary file in the same
// directory and a rename. It reports whether the file changed; a file that
// already has exactly these contents is left alone.
func File(path string, contents []byte, opts Options) (bool, error) {
	lock.Lock()
	defer lock.Unlock()
	if old, err := os.ReadFile(path); err == nil {
		if bytes.Equal(old, contents) {
			return false, nil
		}
		if opts.NoOverwrite {
			return false, errors.Wrapf(ErrExists, "%v would be overwritten", path)
		}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return false, errors.Wrapf(err, "could not create output directory %v", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, errors.Wrap(err, "could not create temporary file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return false, errors.Wrapf(err, "could not write %v", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	perm := opts.Perm
	if perm == 0 {
		perm = 0644
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, errors.Wrapf(err, "could not replace %v", path)
	}
	return true, nil
}

// Read returns the contents of a published file, waiting for any publisher
// in progress.
func Read(path string) ([]byte, error) {
	lock.RLock()
	defer lock.RUnlock()
	return os.ReadFile(path)
}
