package kv

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileStore is a file-backed implementation of Store. Each key is stored
// as one file inside dir; writes go through a temp file and a rename so a
// crash mid-write never leaves a torn value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements the Store interface.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read key %q: %w", key, err)
	}
	return string(data), nil
}

// Set implements the Store interface.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("set key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	return nil
}

// Delete implements the Store interface.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

// path maps a key to a file name. Keys are escaped so arbitrary key
// strings cannot traverse outside dir.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

// Ensure FileStore implements Store interface.
var _ Store = (*FileStore)(nil)
