// Package localstore persists small named entries on disk; the console uses
// it for the impersonation overlay so "view as" survives restarts.
package localstore

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/apexdrive/console/core/identity"
)

type FileStore struct {
	path string
}

var _ identity.StateStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]byte, error) {
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	return data, nil
}

// Save writes the entry atomically (temp file + rename) so a crash mid-write
// cannot leave a truncated entry behind.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := ioutil.TempFile(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing state")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing state file")
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", s.path)
	}
	return nil
}
