package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data/covers"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// Get opens the file for key. Keys come straight from request paths, so they
// are cleaned against a virtual root first; a key cannot escape the base
// directory.
func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	return os.Open(filepath.Join(s.base, clean))
}
