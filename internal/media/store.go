// Package media stores uploaded report photos and resolution proofs.
// Objects are kept on local disk under a configurable directory that the
// HTTP layer serves statically, so a stored key maps directly to a public
// URL. Keys are generated identifiers rather than client filenames, which
// keeps two uploads of the same file from colliding.
package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the capability handlers depend on: accept a binary, return a
// public URL for it.
type Store interface {
	Save(filename string, r io.Reader) (url string, err error)
}

// DiskStore writes uploads to a local directory.
type DiskStore struct {
	Dir       string // filesystem directory holding the objects
	URLPrefix string // public path prefix the objects are served under
}

// NewDiskStore creates the upload directory if needed and returns a store
// over it.
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir, URLPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save writes the reader's content under a fresh UUID key, keeping only
// the original file's extension. It returns the public URL of the stored
// object.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.Dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// drop the partial object; the caller only sees the error
		_ = os.Remove(f.Name())
		return "", err
	}
	return s.URLPrefix + "/" + key, nil
}
